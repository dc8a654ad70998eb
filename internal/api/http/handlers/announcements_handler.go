package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AnnouncementsHandler exposes portal broadcast notices.
type AnnouncementsHandler struct {
	announcements *service.AnnouncementService
}

// NewAnnouncementsHandler constructs handler.
func NewAnnouncementsHandler(announcements *service.AnnouncementService) *AnnouncementsHandler {
	return &AnnouncementsHandler{announcements: announcements}
}

// List handles GET /api/announcements. Public: the employee portal shows the
// active banners without authentication.
func (h *AnnouncementsHandler) List(c *fiber.Ctx) error {
	announcements, err := h.announcements.ListActive(c.Context())
	if err != nil {
		return err
	}
	responses := dto.NewAnnouncementResponses(announcements)
	return dto.JSON(c, http.StatusOK, dto.List(responses, len(responses)))
}

// Create handles POST /api/announcements.
func (h *AnnouncementsHandler) Create(c *fiber.Ctx) error {
	admin, ok := auth.AdminFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}

	var req dto.AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}

	announcement, err := h.announcements.Create(c.Context(), admin, service.AnnouncementInput{
		Title:    req.Title,
		Message:  req.Message,
		Priority: req.Priority,
	})
	if err != nil {
		return err
	}
	return dto.JSON(c, http.StatusCreated, dto.OKMessage("Announcement created successfully", dto.NewAnnouncementResponse(announcement)))
}

// Update handles PUT /api/announcements/:id.
func (h *AnnouncementsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}

	announcement, err := h.announcements.Update(c.Context(), c.Params("id"), service.AnnouncementUpdateInput{
		Title:    req.Title,
		Message:  req.Message,
		Priority: req.Priority,
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}
	return dto.JSON(c, http.StatusOK, dto.OKMessage("Announcement updated successfully", dto.NewAnnouncementResponse(announcement)))
}

// Deactivate handles DELETE /api/announcements/:id.
func (h *AnnouncementsHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.announcements.Deactivate(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return dto.JSON(c, http.StatusOK, dto.OKMessage("Announcement deleted successfully", nil))
}
