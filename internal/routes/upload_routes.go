package routes

import (
	"clubhub/internal/api/middleware"
	"clubhub/internal/config"
	"clubhub/internal/handlers"
	"clubhub/internal/rbac"
	"clubhub/internal/utils/logger"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/labstack/echo/v4"
)

func SetupUploadRoutes(api *echo.Group, cfg *config.Config, gate *rbac.Gate) {
	log := logger.New("upload_routes")

	// Initialize upload handler
	uploadHandler := handlers.NewUploadHandler(
		types.ObjectCannedACLAuthenticatedRead,
	)

	// Uploads ride on the highlights module permission.
	uploadGroup := api.Group("/highlights")
	uploadGroup.Use(middleware.RequireModule(gate, rbac.ModuleHighlights))
	uploadGroup.Use(middleware.RequireLevel(rbac.LevelFull))

	uploadGroup.POST("/upload", uploadHandler.UploadHighlight)

	log.Success("Upload routes initialized successfully")
}
