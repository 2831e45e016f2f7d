package database

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saborconecta/backend/internal/models"
)

// Migrate creates or updates the schema and seeds the static reference data.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.RecipeInstruction{},
		&models.RecipeFavorite{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return SeedCategories(db)
}

// SeedCategories upserts the fixed category rows. Existing rows are left
// untouched so ids referenced by recipes stay stable.
func SeedCategories(db *gorm.DB) error {
	for _, category := range models.DefaultCategories() {
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&category).Error
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", category.Name, err)
		}
	}
	return nil
}
