package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUsername is returned when a create or update would
	// violate the unique username constraint.
	ErrDuplicateUsername = errors.New("username already exists")
)

// IsNotFoundError reports whether err represents a missing row from
// either a repository or the underlying gorm driver.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
