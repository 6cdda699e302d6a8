package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"clubhub/internal/api/validator"
	"clubhub/internal/config"
	"clubhub/internal/models"
	"clubhub/internal/rbac"
	"clubhub/internal/routes"

	console "clubhub/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	echo   *echo.Echo
	config *config.Config
	db     *gorm.DB
	gate   *rbac.Gate
}

var log = console.New("API-Server")

// NewServer @title ClubHub API
// @version 1.0
// @description This is the API documentation for the ClubHub project.
// @host localhost:8080
// @BasePath /api/v1
func NewServer(cfg *config.Config, db *gorm.DB) *Server {
	e := echo.New()

	// Create custom validator
	e.Validator = validator.NewValidator()

	// Configure middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentLength},
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	e.Use(middleware.BodyLimit("10M"))

	// Custom error handler
	e.HTTPErrorHandler = customHTTPErrorHandler

	// Permission matrix: compiled defaults plus per-club overrides loaded
	// once at startup. Override changes need a restart to take effect.
	gate := rbac.NewGate(rbac.DefaultMatrix(), models.LoadClubMatrices(db))

	// Create server instance
	s := &Server{
		echo:   e,
		config: cfg,
		db:     db,
		gate:   gate,
	}

	if err := models.SeedDemoClub(db); err != nil {
		log.Warn("Warning: Failed to seed demo club: %v", err)
	}

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(20))))

	routes.SetupAuthRoutes(s.echo, s.db, s.config, gate)

	// Register routes
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Health check endpoint
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// Custom HTTP error handler
func customHTTPErrorHandler(err error, c echo.Context) {
	var (
		code    = http.StatusInternalServerError
		message interface{}
	)

	var denied *rbac.AccessDeniedError
	var missingEmail *rbac.MissingEmailError

	switch {
	case errors.As(err, &denied):
		// The denial carries email and role; none of that leaves the server.
		code = http.StatusForbidden
		message = "Access denied"
	case errors.Is(err, rbac.ErrIdentifierNotFound):
		code = http.StatusUnauthorized
		message = rbac.ErrIdentifierNotFound.Error()
	case errors.As(err, &missingEmail):
		code = http.StatusUnprocessableEntity
		message = missingEmail.Error()
	default:
		switch e := err.(type) {
		case *echo.HTTPError:
			code = e.Code
			message = e.Message
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			message = formatValidationErrors(e)
		default:
			message = http.StatusText(code)
		}
	}

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, map[string]interface{}{
				"error": message,
				"code":  code,
				"time":  time.Now().Format(time.RFC3339),
			})
		}
		if err != nil {
			c.Echo().Logger.Error(err)
		}
	}
}

// formatValidationErrors formats validation errors into a map
func formatValidationErrors(errors validator.ValidationErrors) map[string]string {
	errMap := make(map[string]string)
	for _, err := range errors {
		field := err.Field()
		tag := err.Tag()
		param := err.Param()

		switch tag {
		case "required":
			errMap[field] = fmt.Sprintf("%s is required", field)
		case "email":
			errMap[field] = fmt.Sprintf("%s must be a valid email", field)
		case "min":
			errMap[field] = fmt.Sprintf("%s must be at least %s", field, param)
		case "max":
			errMap[field] = fmt.Sprintf("%s must be at most %s", field, param)
		case "url":
			errMap[field] = fmt.Sprintf("%s must be a valid URL", field)
		case "uuid":
			errMap[field] = fmt.Sprintf("%s must be a valid UUID", field)
		case "oneof":
			errMap[field] = fmt.Sprintf("%s must be one of [%s]", field, param)
		case "hostname":
			errMap[field] = fmt.Sprintf("%s must be a valid hostname", field)
		case "gt":
			errMap[field] = fmt.Sprintf("%s must be greater than %s", field, param)
		case "required_if":
			errMap[field] = fmt.Sprintf("%s is required when %s", field, param)
		case "club_role":
			errMap[field] = fmt.Sprintf("%s must be a known role", field)
		case "club_module":
			errMap[field] = fmt.Sprintf("%s must be a known module", field)
		case "permission_level":
			errMap[field] = fmt.Sprintf("%s must be one of: full, limited, none", field)
		case "provider_type":
			errMap[field] = fmt.Sprintf("%s must be one of: Reise, Camp, Equipment", field)
		default:
			errMap[field] = fmt.Sprintf("%s failed validation: %s", field, tag)
		}
	}
	return errMap
}
