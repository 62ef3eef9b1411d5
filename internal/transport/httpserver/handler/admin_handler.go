package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tour-catalog-service/internal/app/service"
	"tour-catalog-service/internal/transport/httpserver/dto"
)

// AdminHandler handles sync and feed administration requests.
type AdminHandler struct {
	syncService *service.SyncService
	logger      *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(syncSvc *service.SyncService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		syncService: syncSvc,
		logger:      logger,
	}
}

// SyncAll handles POST /api/v1/admin/sync
func (h *AdminHandler) SyncAll(c *fiber.Ctx) error {
	h.logger.Info("manual sync triggered")

	results := h.syncService.SyncAll(c.Context())

	return c.JSON(dto.FromSyncResults(results))
}

// SyncFeed handles POST /api/v1/admin/sync/:feed
func (h *AdminHandler) SyncFeed(c *fiber.Ctx) error {
	feedName := c.Params("feed")
	if feedName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "feed name is required",
			Code:  "MISSING_FEED",
		})
	}

	h.logger.Info("manual feed sync triggered", zap.String("feed", feedName))

	result, err := h.syncService.SyncFeed(c.Context(), feedName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "SYNC_FAILED",
		})
	}

	if result == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "feed not found",
			Code:  "FEED_NOT_FOUND",
		})
	}

	return c.JSON(dto.SyncResultResponse{
		Feed:     result.Feed,
		Count:    result.Count,
		Duration: result.Duration.String(),
	})
}

// GetFeeds handles GET /api/v1/admin/feeds
func (h *AdminHandler) GetFeeds(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"feeds": h.syncService.GetFeedNames(),
	})
}
