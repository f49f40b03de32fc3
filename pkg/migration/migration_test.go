package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/qrmenu/pkg/database"
)

type widget struct {
	ID   uint
	Name string
}

type createWidgets struct{}

func (createWidgets) Up(db *gorm.DB) error   { return db.AutoMigrate(&widget{}) }
func (createWidgets) Down(db *gorm.DB) error { return db.Migrator().DropTable(&widget{}) }

type addIndex struct{}

func (addIndex) Up(db *gorm.DB) error {
	return db.Exec("CREATE INDEX idx_widgets_name ON widgets(name)").Error
}
func (addIndex) Down(db *gorm.DB) error { return db.Exec("DROP INDEX idx_widgets_name").Error }

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return db
}

func TestRunRollbackStatus(t *testing.T) {
	db := openDB(t)
	r := New(db, []Named{
		{Name: "20260102000000_add_index", Migration: addIndex{}},
		{Name: "20260101000000_create_widgets", Migration: createWidgets{}},
	})

	applied, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"20260101000000_create_widgets", "20260102000000_add_index"}, applied)
	assert.True(t, db.Migrator().HasTable(&widget{}))

	again, err := r.Run()
	require.NoError(t, err)
	assert.Empty(t, again)

	status, err := r.Status()
	require.NoError(t, err)
	assert.Equal(t, []Status{
		{Name: "20260101000000_create_widgets", Ran: true, Batch: 1},
		{Name: "20260102000000_add_index", Ran: true, Batch: 1},
	}, status)

	reverted, err := r.Rollback()
	require.NoError(t, err)
	assert.Equal(t, []string{"20260102000000_add_index", "20260101000000_create_widgets"}, reverted)
	assert.False(t, db.Migrator().HasTable(&widget{}))

	nothing, err := r.Rollback()
	require.NoError(t, err)
	assert.Empty(t, nothing)
}

func TestRollbackUnknownMigration(t *testing.T) {
	db := openDB(t)
	_, err := New(db, []Named{{Name: "20260101000000_create_widgets", Migration: createWidgets{}}}).Run()
	require.NoError(t, err)

	_, err = New(db, nil).Rollback()
	assert.ErrorIs(t, err, ErrUnknownMigration)
}
