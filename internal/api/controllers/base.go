package controllers

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"clubhub/internal/api/middleware"
	"clubhub/internal/rbac"
	"clubhub/internal/services"

	"github.com/labstack/echo/v4"
)

// BaseController provides generic CRUD operations for any model. Every
// handler reads the tenant scope resolved by the permission middleware and
// hands it to the service layer, so a controller can never query outside
// the caller's club.
type BaseController[T any] struct {
	service services.BaseService[T]
}

// NewBaseController creates a new base controller
func NewBaseController[T any](service services.BaseService[T]) *BaseController[T] {
	return &BaseController[T]{
		service: service,
	}
}

// parseIncludes parses the include query parameter and returns a slice of relationships to preload
func parseIncludes(ctx echo.Context) []string {
	include := ctx.QueryParam("include")
	if include == "" {
		return nil
	}
	return strings.Split(include, ",")
}

// stampClubID pins the entity to the scoped club before insert so a caller
// cannot create records under a foreign tenant by posting a clubId field.
func stampClubID[T any](entity *T, scope rbac.ScopeDecision) {
	if scope.Kind != rbac.ScopeClub {
		return
	}
	field := reflect.ValueOf(entity).Elem().FieldByName("ClubID")
	if field.IsValid() && field.Kind() == reflect.String && field.CanSet() {
		field.SetString(scope.ClubID)
	}
}

// Create handles creation of new entities
func (c *BaseController[T]) Create(ctx echo.Context) error {
	scope := middleware.GetScope(ctx)

	// Writes fail closed like reads: an empty scope must never insert,
	// whatever clubId the caller posted.
	if scope.Kind == rbac.ScopeNone {
		return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
	}

	var entity T
	if err := ctx.Bind(&entity); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body "+err.Error())
	}

	stampClubID(&entity, scope)

	if err := ctx.Validate(&entity); err != nil {
		return err
	}

	includes := parseIncludes(ctx)
	if err := c.service.Create(ctx.Request().Context(), &entity, includes...); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.JSON(http.StatusCreated, entity)
}

// Get handles retrieval of a single entity
func (c *BaseController[T]) Get(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing id parameter")
	}
	includes := parseIncludes(ctx)
	entity, err := c.service.Get(ctx.Request().Context(), middleware.GetScope(ctx), id, includes...)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "entity not found")
	}

	return ctx.JSON(http.StatusOK, entity)
}

// List handles retrieval of multiple entities with pagination and filtering
func (c *BaseController[T]) List(ctx echo.Context) error {
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	// Parse filters from query parameters. clubId is handled by the scope,
	// never as a raw filter.
	filters := make(map[string]interface{})
	for key, values := range ctx.QueryParams() {
		switch key {
		case "page", "limit", "include", "sort", "order", "clubId":
			continue
		}
		if len(values) > 0 {
			filters[key] = values[0]
		}
	}

	includes := parseIncludes(ctx)

	// Only sort by fields the entity actually has.
	order := ctx.QueryParam("order")
	var sortFields []string
	if sort := ctx.QueryParam("sort"); sort != "" {
		var entity T
		entityType := reflect.TypeOf(entity)
		for _, field := range strings.Split(sort, ",") {
			if _, found := entityType.FieldByName(field); found {
				sortFields = append(sortFields, field)
			}
		}
	}

	entities, total, err := c.service.List(ctx.Request().Context(), middleware.GetScope(ctx), page, limit, filters, sortFields, order, includes...)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"data":  entities,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// Update handles updating an existing entity
func (c *BaseController[T]) Update(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing id parameter")
	}

	var entity T
	if err := ctx.Bind(&entity); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := ctx.Validate(&entity); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	includes := parseIncludes(ctx)
	if err := c.service.Update(ctx.Request().Context(), middleware.GetScope(ctx), id, &entity, includes...); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.JSON(http.StatusOK, entity)
}

// Delete handles deletion of an entity
func (c *BaseController[T]) Delete(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing id parameter")
	}

	if err := c.service.Delete(ctx.Request().Context(), middleware.GetScope(ctx), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RegisterRoutes registers CRUD routes for the controller. Write routes
// demand full permission on the gated module; reads work with limited.
func (c *BaseController[T]) RegisterRoutes(g *echo.Group, path string, methods ...string) {
	if len(methods) == 0 {
		methods = []string{"POST", "GET", "PUT", "DELETE"}
	}

	full := middleware.RequireLevel(rbac.LevelFull)

	for _, method := range methods {
		switch method {
		case "POST":
			g.POST(path, c.Create, full)
		case "GET":
			g.GET(path+"/:id", c.Get)
			g.GET(path, c.List)
		case "PUT":
			g.PUT(path+"/:id", c.Update, full)
		case "DELETE":
			g.DELETE(path+"/:id", c.Delete, full)
		}
	}
}
