package api

import (
	"net/http"

	"clubhub/internal/api/middleware"
	"clubhub/internal/api/registry"
	"clubhub/internal/rbac"
	"clubhub/internal/routes"

	_ "clubhub/docs/swagger"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func (s *Server) registerRoutes() {
	s.echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello, World!")
	})
	// Health check
	// @Summary Health check
	// @Description Check if the server is running
	// @Accept json
	// @Produce json
	// @Success 200 {object} map[string]string "OK"
	// @Router /health [get]
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group. Every request below here gets a freshly resolved
	// access context before any handler runs.
	api := s.echo.Group("/api/v1")
	builder := rbac.NewContextBuilder(rbac.NewGormDirectory(s.db), s.config.Auth.SuperAdminEmail)
	auth := middleware.NewAuthMiddleware(s.config.JWT.Secret, builder)
	api.Use(auth.Middleware())

	// Register CRUD routes for all models
	// @Summary Register CRUD routes for all models
	// @Description Register CRUD routes for all models
	registry.RegisterCRUDRoutes(api, s.db, s.gate)

	routes.SetupUploadRoutes(api, s.config, s.gate)
}
