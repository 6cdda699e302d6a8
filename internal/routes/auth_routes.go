package routes

import (
	"clubhub/internal/api/middleware"
	"clubhub/internal/config"
	"clubhub/internal/handlers"
	"clubhub/internal/rbac"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func SetupAuthRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, gate *rbac.Gate) {
	authHandler := handlers.NewAuthHandler(db, cfg, gate)

	base := e.Group("/api/v1")

	// Public auth routes group
	auth := base.Group("/auth")
	users := base.Group("/users")

	// Public routes (no auth required)
	auth.POST("/login", authHandler.Login)
	auth.GET("/google/callback", authHandler.GoogleAuthCallback)

	auth.POST("/accept/:code", authHandler.AcceptInvite)
	auth.POST("/password-reset", authHandler.RequestPasswordReset)
	auth.POST("/password-reset/verify", authHandler.VerifyResetCode)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes resolve a fresh access context per request.
	protected := users.Group("")
	builder := rbac.NewContextBuilder(rbac.NewGormDirectory(db), cfg.Auth.SuperAdminEmail)
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, builder)
	protected.Use(authMiddleware.Middleware())

	protected.GET("/me", authHandler.GetMe)
	protected.PUT("/me/active-role", authHandler.SetActiveRole)

	// Inviting needs full member permission in the caller's club.
	invites := protected.Group("")
	invites.Use(middleware.RequireModule(gate, rbac.ModuleMembers))
	invites.Use(middleware.RequireLevel(rbac.LevelFull))
	invites.POST("/invite", authHandler.InviteMember)
	invites.DELETE("/invite/:id", authHandler.DeleteInvite)
}
