// Package handler provides HTTP handlers for the API.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tour-catalog-service/internal/app/service"
	"tour-catalog-service/internal/transport/httpserver/dto"
	"tour-catalog-service/internal/validator"
)

// CatalogHandler handles catalog listing, detail and related requests.
type CatalogHandler struct {
	service   *service.CatalogService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc *service.CatalogService, v *validator.Validator, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Search handles GET /api/v1/records
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	result, err := h.service.Search(c.Context(), req.ToSearchParams())
	if err != nil {
		h.logger.Error("search failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "search failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromSearchResult(result))
}

// Sections handles GET /api/v1/sections
func (h *CatalogHandler) Sections(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	sections, err := h.service.Sections(c.Context(), req.ToSearchParams())
	if err != nil {
		h.logger.Error("sections failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "sections failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromSections(sections))
}

// GetByID handles GET /api/v1/records/:id
func (h *CatalogHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	record, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		h.logger.Error("get by id failed", zap.String("id", id), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to get record",
			Code:  "INTERNAL_ERROR",
		})
	}

	if record == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "record not found",
			Code:  "NOT_FOUND",
		})
	}

	return c.JSON(dto.FromDomainRecord(record))
}

// Related handles GET /api/v1/records/:id/related
func (h *CatalogHandler) Related(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	var req dto.RelatedRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}
	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	related, err := h.service.Related(c.Context(), id, req.Count)
	if err != nil {
		h.logger.Error("related lookup failed", zap.String("id", id), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to get related records",
			Code:  "INTERNAL_ERROR",
		})
	}

	if related == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "record not found",
			Code:  "NOT_FOUND",
		})
	}

	return c.JSON(dto.RelatedResponse{
		Records: dto.FromDomainRecords(related),
	})
}
