package api

import (
	"github.com/gin-gonic/gin"

	"github.com/saborconecta/backend/internal/models"
	"github.com/saborconecta/backend/internal/service"
)

// RecipeRequest is the JSON body of recipe create and update calls.
type RecipeRequest struct {
	UserID       string   `json:"userId"`
	RecipeID     string   `json:"recipeId"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	PrepTime     int      `json:"prepTime"`
	Servings     int      `json:"servings"`
	Difficulty   string   `json:"difficulty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Images       []string `json:"images"`
}

// LoginRequest is the JSON body of a login call. Field names follow the
// established wire contract of the Spanish-speaking client.
type LoginRequest struct {
	Email    string `json:"correo_electronico" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the JSON body of a registration call.
type RegisterRequest struct {
	Username        string `json:"nombre_usuario" binding:"required"`
	Email           string `json:"correo_electronico" binding:"required,email"`
	FullName        string `json:"nombre_completo" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword"`
	ProfileImage    string `json:"imagen_perfil"`
}

// ProfileImageRequest is the JSON body of a profile image upload.
type ProfileImageRequest struct {
	UserID string `json:"userId" binding:"required"`
	Image  string `json:"image" binding:"required"`
}

// FavoriteRequest identifies the user favoriting or unfavoriting a recipe.
type FavoriteRequest struct {
	UserID string `json:"userId"`
}

// userPayload is the user record returned to clients, including the
// per-account counters.
func userPayload(user *models.User, stats service.UserStats) gin.H {
	return gin.H{
		"id":                 user.ID,
		"nombre_usuario":     user.Username,
		"correo_electronico": user.Email,
		"nombre_completo":    user.FullName,
		"imagen_perfil":      user.ProfileImageURL,
		"recetas_creadas":    stats.RecipesCreated,
		"recetas_favoritas":  stats.RecipesFavorite,
	}
}
