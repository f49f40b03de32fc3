package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one row of the kv_entries table.
type Entry struct {
	Name      string    `gorm:"primaryKey;size:191"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Entry) TableName() string { return "kv_entries" }

// Migrate creates the kv_entries table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Entry{})
}

type sqlStore struct {
	db *gorm.DB
}

// NewSQL stores keys in kv_entries. The table must exist; see Migrate.
func NewSQL(db *gorm.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) Get(ctx context.Context, key string) (string, bool, error) {
	var e Entry
	err := s.db.WithContext(ctx).Where(&Entry{Name: key}).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kvstore: sql get %s: %w", key, err)
	}
	return e.Value, true, nil
}

func (s *sqlStore) Set(ctx context.Context, key, value string) error {
	e := Entry{Name: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&e).Error
	if err != nil {
		return fmt.Errorf("kvstore: sql set %s: %w", key, err)
	}
	return nil
}

func (s *sqlStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where(&Entry{Name: key}).Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("kvstore: sql delete %s: %w", key, err)
	}
	return nil
}

func (s *sqlStore) Driver() string { return "sql" }

// Close is a no-op; the database handle belongs to the caller.
func (s *sqlStore) Close() error { return nil }
