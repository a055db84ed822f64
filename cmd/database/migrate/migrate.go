package migration

import (
	"Ginraidee/entities"
	"fmt"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		return fmt.Errorf("migrating user table: %w", err)
	}
	if err := db.AutoMigrate(&entities.InventoryItem{}); err != nil {
		return fmt.Errorf("migrating inventory item table: %w", err)
	}
	return nil
}
