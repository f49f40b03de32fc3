package database

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpenSQLiteInMemory(t *testing.T) {
	db, err := Open("sqlite", "file::memory:")
	require.NoError(t, err)
	defer Close(db)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}

func TestIsDuplicateKey(t *testing.T) {
	type account struct {
		ID    uint
		Email string `gorm:"uniqueIndex"`
	}

	db, err := Open("sqlite", "file::memory:")
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, db.AutoMigrate(&account{}))

	require.NoError(t, db.Create(&account{Email: "cafe@x.com"}).Error)
	err = db.Create(&account{Email: "cafe@x.com"}).Error
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
	assert.True(t, IsDuplicateKey(fmt.Errorf("users: create: %w", err)))

	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.False(t, IsDuplicateKey(gorm.ErrRecordNotFound))
	assert.False(t, IsDuplicateKey(nil))
}
