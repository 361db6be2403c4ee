package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// Common repository errors. GORM implementations translate driver errors into these.
var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry is returned when a write violates a unique constraint.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)

// translateError maps GORM errors onto the repository errors above. The
// database must be opened with gorm.Config{TranslateError: true} for
// duplicate keys to be recognised.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateEntry
	default:
		return err
	}
}
