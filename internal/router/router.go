package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "billex/docs" // swagger spec registration
	"billex/internal/config"
	"billex/internal/handler"
	"billex/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	extractH *handler.ExtractHandler,
	runH *handler.RunHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(&cfg.CORS))
	r.Use(middleware.BodyLimit(1 << 20))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.BearerAuth(&cfg.Auth)

	// Extraction endpoint kept at the root path for compatibility with the
	// original deployment.
	r.POST("/extract-bill-data", auth, extractH.Extract)

	// Run history
	v1 := r.Group("/api/v1")
	v1.Use(auth)
	v1.GET("/runs", runH.List)
	v1.GET("/runs/:id", runH.GetByID)
	v1.GET("/runs/:id/export", runH.Export)

	return r
}
