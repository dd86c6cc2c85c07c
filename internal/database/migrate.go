package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/pageza/mealfinder/backend/internal/model"
)

// RunMigrations creates or updates the search history schema.
func RunMigrations(db *gorm.DB) error {
	slog.Info("running database migrations", "dialect", db.Dialector.Name())
	if err := db.AutoMigrate(&model.SearchLog{}); err != nil {
		return fmt.Errorf("failed to migrate search logs: %w", err)
	}
	return nil
}

// RollbackMigrations drops the tables created by RunMigrations.
func RollbackMigrations(db *gorm.DB) error {
	slog.Info("rolling back database migrations", "dialect", db.Dialector.Name())
	if err := db.Migrator().DropTable(&model.SearchLog{}); err != nil {
		return fmt.Errorf("failed to drop search logs: %w", err)
	}
	return nil
}
