package database

import (
	"fmt"

	"github.com/yeremiapane/table-order/models"
	"github.com/yeremiapane/table-order/utils"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every store.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.MenuItem{},
		&models.Table{},
		&models.Order{},
		&models.OrderLine{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
