package db

import (
	"fmt"

	"travel_api/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Conflict handling for seeding
)

// Models lists every table managed by the migration, in dependency order
var Models = []any{&domain.Role{}, &domain.User{}, &domain.Travel{}, &domain.Tour{}}

// Migrate creates or updates the schema and seeds the fixed role set
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := SeedRoles(db); err != nil {
		return err
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}

// SeedRoles inserts the admin and editor roles, leaving existing rows untouched
func SeedRoles(db *gorm.DB) error {
	for _, name := range domain.RoleNames {
		role := domain.Role{Name: name}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&role).Error; err != nil {
			return fmt.Errorf("seed role %q: %w", name, err)
		}
	}
	return nil
}
