package middleware

import (
	"net/http"

	"clubhub/internal/rbac"

	"github.com/labstack/echo/v4"
)

// RequireModule gates a route group on the caller's permission for one
// module. On success the granted level and the effective tenant scope are
// placed on the echo context for the controllers downstream.
func RequireModule(gate *rbac.Gate, module rbac.Module) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rc := GetRbacContext(c)

			level, err := gate.Assert(rc, module)
			if err != nil {
				return err
			}

			c.Set("permissionLevel", level)
			c.Set("scope", rbac.EffectiveScope(rc, c.QueryParam("clubId")))

			return next(c)
		}
	}
}

// RequireLevel additionally demands at least the given level on routes
// where limited access is not enough, e.g. destructive operations.
func RequireLevel(min rbac.Level) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !GetLevel(c).AtLeast(min) {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}

// GetScope returns the tenant scope computed by RequireModule. Missing
// scope resolves to the empty scope so a miswired route leaks nothing.
func GetScope(c echo.Context) rbac.ScopeDecision {
	if s, ok := c.Get("scope").(rbac.ScopeDecision); ok {
		return s
	}
	return rbac.EmptyScope()
}

func GetLevel(c echo.Context) rbac.Level {
	if l, ok := c.Get("permissionLevel").(rbac.Level); ok {
		return l
	}
	return rbac.LevelNone
}
