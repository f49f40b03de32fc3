// Package migration runs and tracks schema migrations.
//
// Migrations register themselves from database/migrations:
//
//	func init() {
//	    migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
//	}
//
// and run from the CLI:
//
//	qrmenu migrate             // run all pending
//	qrmenu migrate:rollback    // roll back the last batch
//	qrmenu migrate:status
package migration

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/qrmenu/pkg/logger"
)

type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:191;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "qrmenu_migrations" }

// Named pairs a migration with its timestamp-prefixed name.
type Named struct {
	Name      string
	Migration Migration
}

var registry []Named

// Register adds m to the global set used by NewDefault.
func Register(name string, m Migration) {
	registry = append(registry, Named{Name: name, Migration: m})
}

// Registered returns the global set sorted by name.
func Registered() []Named {
	out := append([]Named(nil), registry...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

var ErrUnknownMigration = errors.New("migration: not registered")

type Runner struct {
	db         *gorm.DB
	migrations []Named
}

// New builds a runner over an explicit list; NewDefault uses Registered().
func New(db *gorm.DB, migrations []Named) *Runner {
	sorted := append([]Named(nil), migrations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &Runner{db: db, migrations: sorted}
}

func NewDefault(db *gorm.DB) *Runner { return New(db, Registered()) }

func (r *Runner) ensureTable() error {
	if err := r.db.AutoMigrate(&record{}); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	return nil
}

func (r *Runner) ran() (map[string]record, error) {
	var rows []record
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("migration: list ran: %w", err)
	}
	out := make(map[string]record, len(rows))
	for _, row := range rows {
		out[row.Name] = row
	}
	return out, nil
}

// Run applies every pending migration as one batch and returns the names
// it applied.
func (r *Runner) Run() ([]string, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}
	done, err := r.ran()
	if err != nil {
		return nil, err
	}

	batch := r.lastBatch() + 1
	var applied []string
	for _, m := range r.migrations {
		if _, ok := done[m.Name]; ok {
			continue
		}

		logger.Info("migrating", "name", m.Name, "batch", batch)
		if err := m.Migration.Up(r.db); err != nil {
			return applied, fmt.Errorf("migration: %s up: %w", m.Name, err)
		}
		if err := r.db.Create(&record{Name: m.Name, Batch: batch}).Error; err != nil {
			return applied, fmt.Errorf("migration: record %s: %w", m.Name, err)
		}
		applied = append(applied, m.Name)
	}

	if len(applied) == 0 {
		logger.Info("nothing to migrate")
	}
	return applied, nil
}

// Rollback reverts the most recent batch, newest first.
func (r *Runner) Rollback() ([]string, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}

	batch := r.lastBatch()
	if batch == 0 {
		logger.Info("nothing to roll back")
		return nil, nil
	}

	var rows []record
	if err := r.db.Where(&record{Batch: batch}).Order("id desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("migration: list batch %d: %w", batch, err)
	}

	byName := make(map[string]Migration, len(r.migrations))
	for _, m := range r.migrations {
		byName[m.Name] = m.Migration
	}

	var reverted []string
	for _, row := range rows {
		m, ok := byName[row.Name]
		if !ok {
			return reverted, fmt.Errorf("%w: %s", ErrUnknownMigration, row.Name)
		}

		logger.Info("rolling back", "name", row.Name, "batch", batch)
		if err := m.Down(r.db); err != nil {
			return reverted, fmt.Errorf("migration: %s down: %w", row.Name, err)
		}
		if err := r.db.Delete(&record{}, row.ID).Error; err != nil {
			return reverted, fmt.Errorf("migration: forget %s: %w", row.Name, err)
		}
		reverted = append(reverted, row.Name)
	}
	return reverted, nil
}

// Status is one line of migrate:status. Batch is 0 for pending migrations.
type Status struct {
	Name  string
	Ran   bool
	Batch int
}

func (r *Runner) Status() ([]Status, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}
	done, err := r.ran()
	if err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(r.migrations))
	for _, m := range r.migrations {
		row, ok := done[m.Name]
		out = append(out, Status{Name: m.Name, Ran: ok, Batch: row.Batch})
	}
	return out, nil
}

func (r *Runner) lastBatch() int {
	var max struct{ Max int }
	r.db.Model(&record{}).Select("COALESCE(MAX(batch), 0) as max").Scan(&max)
	return max.Max
}
