package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/qrmenu/app/models"
	"github.com/shashiranjanraj/qrmenu/pkg/database"
)

var (
	// ErrRecordNotFound is returned by every repository lookup that misses.
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write hits a unique index.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository persists business owner accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

type gormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.first(ctx, &models.User{Email: email})
}

func (r *gormUserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	return r.first(ctx, &models.User{ID: id})
}

func (r *gormUserRepository) first(ctx context.Context, cond *models.User) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where(cond).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrRecordNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("users: find: %w", err)
	}
	return user, nil
}

func (r *gormUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("users: create: %w", err)
	}
	return nil
}

func (r *gormUserRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("users: update: %w", err)
	}
	return nil
}
