package database

import (
	"fmt"
	"log/slog"

	"github.com/storefront-api/models"
	"gorm.io/gorm"
)

// Migrate migrates the database schema
func Migrate(db *gorm.DB, log *slog.Logger) error {
	log.Info("migrating database schema")
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("database schema migrated")
	return nil
}
