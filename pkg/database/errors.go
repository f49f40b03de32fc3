package database

import (
	"errors"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// IsDuplicateKey reports whether err is a unique-index violation. Drivers
// whose errors gorm translates yield gorm.ErrDuplicatedKey; go-sqlite3
// returns its Error by value, which the sqlite dialector does not match.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}
