package registry

import (
	"github.com/labstack/echo/v4"

	"clubhub/internal/api/controllers"
	"clubhub/internal/api/middleware"
	"clubhub/internal/models"
	"clubhub/internal/rbac"
	"clubhub/internal/services"

	"gorm.io/gorm"
)

// RegisterCRUDRoutes registers CRUD routes for all club resources. Each
// resource group sits behind the permission gate for its module, so the
// route tree mirrors the permission matrix one to one.
// @Summary Register CRUD routes for all models
// @Description Register CRUD routes for all models
// @Accept json
// @Produce json
func RegisterCRUDRoutes(g *echo.Group, db *gorm.DB, gate *rbac.Gate) {
	mount(g, db, gate, "/clubs", rbac.ModuleClubs, models.Club{})
	mount(g, db, gate, "/members", rbac.ModuleMembers, models.Member{})
	mount(g, db, gate, "/invites", rbac.ModuleMembers, models.MemberInvite{})
	mount(g, db, gate, "/teams", rbac.ModuleTeams, models.Team{})
	mount(g, db, gate, "/matches", rbac.ModuleMatch, models.MatchFixture{})
	mount(g, db, gate, "/trainings", rbac.ModuleTraining, models.Training{})
	mount(g, db, gate, "/events", rbac.ModuleEvents, models.Event{})
	mount(g, db, gate, "/highlights", rbac.ModuleHighlights, models.Highlight{})
	mount(g, db, gate, "/sponsor-contracts", rbac.ModuleSponsoring, models.SponsorContract{})
	mount(g, db, gate, "/newsletters", rbac.ModuleNewsletter, models.NewsletterIssue{})
	mount(g, db, gate, "/leads", rbac.ModuleLeads, models.Lead{})
	mount(g, db, gate, "/providers", rbac.ModuleClubs, models.Provider{})
	mount(g, db, gate, "/matrix-overrides", rbac.ModuleClubs, models.MatrixOverride{})
}

// mount wires a generic controller for one model under a gated group.
func mount[T any](g *echo.Group, db *gorm.DB, gate *rbac.Gate, path string, module rbac.Module, model T) {
	service := services.NewBaseService(db, model)
	controller := controllers.NewBaseController(service)

	group := g.Group(path)
	group.Use(middleware.RequireModule(gate, module))
	controller.RegisterRoutes(group, "")
}
