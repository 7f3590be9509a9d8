package models

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres. TranslateError turns driver-specific
// constraint violations into gorm.ErrDuplicatedKey and friends, which
// the repositories rely on.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
}

// Migrate creates or updates the schema for both entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Category{}, &Product{})
}
