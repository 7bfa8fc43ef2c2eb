package database

import (
	"errors"
	"fmt"

	"github.com/dmarkova/slacklite/internal/errs"
	"gorm.io/gorm"
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

// translate maps GORM errors onto the service taxonomy so handlers never
// have to import gorm.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", errs.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", errs.ErrConflict, err)
	default:
		return fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}
}
