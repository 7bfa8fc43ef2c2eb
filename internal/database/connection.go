package database

import (
	"errors"

	"github.com/dmarkova/slacklite/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func (d *Database) Connect(dsn string) error {
	if dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}

	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey, which translate() maps to ErrConflict. The
	// reaction toggle relies on this to detect races.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Server{},
		&models.Channel{},
		&models.Message{},
		&models.Reaction{},
		&models.UserStatus{},
	)
	if err != nil {
		return err
	}

	d.db = db

	return nil
}
