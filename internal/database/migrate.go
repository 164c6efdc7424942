package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipe-explorer/backend/internal/model"
)

// Migrate creates or updates the recipes table and its indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Recipe{}); err != nil {
		return fmt.Errorf("failed to migrate recipes: %w", err)
	}
	return nil
}
