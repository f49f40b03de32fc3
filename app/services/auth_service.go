package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/qrmenu/app/models"
	"github.com/shashiranjanraj/qrmenu/app/repositories"
	"github.com/shashiranjanraj/qrmenu/pkg/auth"
	"github.com/shashiranjanraj/qrmenu/pkg/logger"
	"github.com/shashiranjanraj/qrmenu/pkg/validate"
)

type RegisterInput struct {
	Email        string `json:"email" validate:"required,email,max=191"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	BusinessName string `json:"businessName" validate:"required,max=255"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfilePatch changes the caller's own account. Nil means unchanged.
type ProfilePatch struct {
	BusinessName *string `json:"businessName" validate:"omitempty,min=1,max=255"`
	Logo         *string `json:"logo"`
}

// AuthService is the identity provider: accounts, tokens and the
// request → Session resolution the menu store relies on.
type AuthService struct {
	users repositories.UserRepository
	now   func() time.Time
	newID func() string

	// serialises the email uniqueness check with the insert; across
	// processes the unique index on email decides
	mu sync.Mutex
}

func NewAuthService(users repositories.UserRepository) *AuthService {
	return &AuthService{users: users, now: time.Now, newID: newID}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and returns it with a signed token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, string, error) {
	in.Email = normalizeEmail(in.Email)
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	if errs := validate.Struct(in); len(errs) > 0 {
		return models.User{}, "", invalid(errs)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return models.User{}, "", ErrEmailTaken
	case !errors.Is(err, repositories.ErrRecordNotFound):
		return models.User{}, "", err
	}

	now := s.now().UTC()
	user := models.User{
		ID:           s.newID(),
		Email:        in.Email,
		BusinessName: in.BusinessName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return models.User{}, "", ErrEmailTaken
		}
		return models.User{}, "", err
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return models.User{}, "", err
	}

	logger.WithCtx(ctx).Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login checks the credentials and returns the account with a fresh token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (models.User, string, error) {
	in.Email = normalizeEmail(in.Email)
	if errs := validate.Struct(in); len(errs) > 0 {
		return models.User{}, "", invalid(errs)
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return models.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, "", err
	}
	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		logger.WithCtx(ctx).Warn("login failed", "user_id", user.ID)
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// UpdateProfile merges patch onto the caller's account.
func (s *AuthService) UpdateProfile(ctx context.Context, sess Session, patch ProfilePatch) (models.User, error) {
	current, ok := sess.CurrentUser()
	if !ok {
		return models.User{}, ErrAuthenticationRequired
	}
	if errs := validate.Struct(patch); len(errs) > 0 {
		return models.User{}, invalid(errs)
	}

	user, err := s.users.FindByID(ctx, current.ID)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}

	if patch.BusinessName != nil {
		user.BusinessName = strings.TrimSpace(*patch.BusinessName)
	}
	if patch.Logo != nil {
		user.Logo = *patch.Logo
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Session resolves the caller from the JWT claims the auth middleware put
// in ctx. No claims, or claims for a deleted account, give Anonymous.
func (s *AuthService) Session(ctx context.Context) (Session, error) {
	claims, err := auth.FromCtx(ctx)
	if err != nil {
		return Anonymous, nil
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return Anonymous, nil
	}
	if err != nil {
		return nil, err
	}
	return NewSession(user), nil
}
