package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/saborconecta/backend/config"
	"github.com/saborconecta/backend/internal/api"
	"github.com/saborconecta/backend/internal/models"
	"github.com/saborconecta/backend/internal/router"
	"github.com/saborconecta/backend/internal/service"
)

// Server wires the services and handlers together and owns the HTTP listener.
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New creates a server instance from the configuration, database pool, and
// object-storage uploader.
func New(cfg *config.Config, db *gorm.DB, uploader service.Uploader) *Server {
	categories := models.NewCategorySet(models.DefaultCategories())

	imageService := service.NewImageService(uploader, cfg.DefaultRecipeImageURL)
	authService := service.NewAuthService(db, imageService)
	profileService := service.NewProfileService(db, authService, imageService)
	recipeService := service.NewRecipeService(db, authService, imageService, categories)

	engine := router.Setup(
		api.NewAuthHandler(authService),
		api.NewRecipeHandler(recipeService),
		api.NewUploadHandler(profileService, authService),
		cfg.JWTSecret,
		authService,
		db,
	)

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
		db: db,
	}
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Router exposes the underlying engine, primarily for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
