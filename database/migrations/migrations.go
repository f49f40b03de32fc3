// Package migrations registers the schema migrations. cmd/qrmenu imports
// it for the side effect.
package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/qrmenu/app/models"
	"github.com/shashiranjanraj/qrmenu/pkg/kvstore"
	"github.com/shashiranjanraj/qrmenu/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260101000001_create_kv_entries_table", &CreateKVEntriesTable{})
}

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.User{})
}

// CreateKVEntriesTable backs the "sql" menu-store driver.
type CreateKVEntriesTable struct{}

func (m *CreateKVEntriesTable) Up(db *gorm.DB) error {
	return kvstore.Migrate(db)
}

func (m *CreateKVEntriesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&kvstore.Entry{})
}
