package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"clubhub/internal/rbac"
	"clubhub/internal/utils/logger"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

var log = logger.New("auth_middleware")

// HeaderActiveRole lets a multi-role member pin which of their roles this
// request acts under. The header is untrusted input; the context builder
// only honors it while the role is still in the member's stored set.
const HeaderActiveRole = "X-Active-Role"

// AuthMiddleware authenticates the bearer token and resolves a fresh rbac
// context for every request. Nothing about the caller's role or club is
// trusted from the token; both come from the directory on each call, so a
// role change or club removal takes effect on the next request.
type AuthMiddleware struct {
	jwtSecret string
	builder   *rbac.ContextBuilder
}

type Claims struct {
	Email      string `json:"email"`
	ActiveRole string `json:"active_role,omitempty"`
	jwt.RegisteredClaims
}

func NewAuthMiddleware(jwtSecret string, builder *rbac.ContextBuilder) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
		builder:   builder,
	}
}

func (m *AuthMiddleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			return m.validateJWT(c, tokenParts[1], next)
		}
	}
}

func (m *AuthMiddleware) validateJWT(c echo.Context, tokenString string, next echo.HandlerFunc) error {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.jwtSecret), nil
	})

	if err != nil || !token.Valid {
		log.Error("Error parsing JWT token: %v", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	// Pinned active role: header wins over the claim so a role switch does
	// not require a new token.
	activeRole := rbac.Role(claims.ActiveRole)
	if header := c.Request().Header.Get(HeaderActiveRole); header != "" {
		activeRole = rbac.Role(header)
	}

	rc := m.builder.Build(c.Request().Context(), claims.Email, activeRole)

	// Set context values
	c.Set("rbac", rc)
	c.Set("email", rc.Email)
	c.Set("role", string(rc.Role))
	c.Set("clubID", rc.ClubID)

	return next(c)
}

// GetRbacContext returns the resolved context for the request, or nil when
// the auth middleware did not run.
func GetRbacContext(c echo.Context) *rbac.Context {
	if rc, ok := c.Get("rbac").(*rbac.Context); ok {
		return rc
	}
	return nil
}

func GetEmail(c echo.Context) string {
	if email, ok := c.Get("email").(string); ok {
		return email
	}
	return ""
}

func GetClubID(c echo.Context) string {
	if id, ok := c.Get("clubID").(string); ok {
		return id
	}
	return ""
}
