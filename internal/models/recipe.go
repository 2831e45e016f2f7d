package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is the parent row of the transactional write path. Its ID is a
// human-readable string of the form "rec-<category prefix>-<uuid>"; the
// prefix is a display convenience, uniqueness comes from the uuid suffix.
type Recipe struct {
	ID          string    `gorm:"size:64;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CategoryID  int       `gorm:"not null" json:"category_id"`
	PrepTime    int       `gorm:"not null" json:"prep_time"`
	Servings    int       `gorm:"not null;default:4" json:"servings"`
	Difficulty  string    `gorm:"size:20;not null" json:"difficulty"`
	ImageURL    string    `gorm:"size:512" json:"image_url"`
	Active      bool      `gorm:"not null;default:true" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RecipeIngredient is one free-text ingredient line. Position is a 1-based
// display ordinal; it is a convention, not a database constraint.
type RecipeIngredient struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	RecipeID   string `gorm:"size:64;not null;index" json:"recipe_id"`
	Ingredient string `gorm:"type:text;not null" json:"ingredient"`
	Position   int    `gorm:"not null" json:"position"`
}

// RecipeInstruction is one free-text preparation step, ordered by StepNumber.
type RecipeInstruction struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	RecipeID    string `gorm:"size:64;not null;index" json:"recipe_id"`
	StepNumber  int    `gorm:"not null" json:"step_number"`
	Description string `gorm:"type:text;not null" json:"description"`
}

// RecipeFavorite marks a recipe as a favorite of a user.
type RecipeFavorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_recipe_favorites_user_recipe,unique" json:"user_id"`
	RecipeID  string    `gorm:"size:64;not null;index:idx_recipe_favorites_user_recipe,unique" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (RecipeFavorite) TableName() string {
	return "recipe_favorites"
}
