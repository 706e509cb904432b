package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors shared by every repository implementation. Services match on
// these with errors.Is instead of inspecting driver errors.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// translate maps GORM errors onto the repository sentinels. Requires the DB to
// be opened with TranslateError so driver-specific unique violations surface
// as gorm.ErrDuplicatedKey.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	default:
		return err
	}
}
