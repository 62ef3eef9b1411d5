package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tour-catalog-service/internal/app/service"
)

// DashboardHandler serves the ops dashboard page.
type DashboardHandler struct {
	catalogService *service.CatalogService
	syncService    *service.SyncService
	logger         *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(catalogSvc *service.CatalogService, syncSvc *service.SyncService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		catalogService: catalogSvc,
		syncService:    syncSvc,
		logger:         logger,
	}
}

// Render handles GET /dashboard
// Renders the dashboard HTML page using Fiber's template engine.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	count, _ := h.catalogService.Count(c.Context())
	byKind, _ := h.catalogService.CountByKind(c.Context())

	return c.Render("pages/dashboard", fiber.Map{
		"Title":        "Tour Catalog Dashboard",
		"RecordCount":  count,
		"Tours":        byKind["tour"],
		"Destinations": byKind["destination"],
		"Blogs":        byKind["blog"],
		"Feeds":        h.syncService.GetFeedNames(),
	}, "layouts/base")
}
