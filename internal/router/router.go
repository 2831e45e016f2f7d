package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/saborconecta/backend/internal/api"
	"github.com/saborconecta/backend/internal/database"
	"github.com/saborconecta/backend/internal/middleware"
)

// Setup configures the application routes.
func Setup(
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	uploadHandler *api.UploadHandler,
	jwtSecret string,
	resolver middleware.UserResolver,
	db *gorm.DB,
) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	root := router.Group("/api")

	root.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
	})

	auth := root.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
	}

	optionalAuth := middleware.OptionalAuth(jwtSecret, resolver)

	recipes := root.Group("/recipes")
	{
		recipes.GET("", recipeHandler.ListRecipes)
		recipes.GET("/:id", recipeHandler.GetRecipe)
		recipes.POST("", optionalAuth, recipeHandler.CreateRecipe)
		recipes.PUT("", optionalAuth, recipeHandler.UpdateRecipe)
		recipes.POST("/:id/favorite", optionalAuth, recipeHandler.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", optionalAuth, recipeHandler.UnfavoriteRecipe)
	}

	root.POST("/upload/profile-image", uploadHandler.UploadProfileImage)

	return router
}
