package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"eballot/internal/models"
)

// OpenDB connects to Postgres and migrates the schema. The returned handle
// is passed to the storage layer; nothing holds it globally.
//
// AutoMigrate provisions the composite unique index on votes(user_id,
// position_id) that the duplicate-vote guarantee relies on.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&models.Institute{},
		&models.User{},
		&models.Election{},
		&models.Position{},
		&models.Candidate{},
		&models.Vote{},
	)
	if err != nil {
		return nil, fmt.Errorf("auto-migration failed: %w", err)
	}

	return db, nil
}
