package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// ProjectsHandler exposes the project catalog.
type ProjectsHandler struct {
	projects *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projects *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

// ListActive handles GET /api/projects/public. The employee portal uses this
// to fill the project dropdown, so it is public.
func (h *ProjectsHandler) ListActive(c *fiber.Ctx) error {
	projects, err := h.projects.ListActive(c.Context())
	if err != nil {
		return err
	}
	responses := dto.NewProjectResponses(projects)
	return dto.JSON(c, http.StatusOK, dto.List(responses, len(responses)))
}

// ListAll handles GET /api/projects.
func (h *ProjectsHandler) ListAll(c *fiber.Ctx) error {
	projects, err := h.projects.ListAll(c.Context())
	if err != nil {
		return err
	}
	responses := dto.NewProjectResponses(projects)
	return dto.JSON(c, http.StatusOK, dto.List(responses, len(responses)))
}

// Create handles POST /api/projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}

	project, err := h.projects.Create(c.Context(), service.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return dto.JSON(c, http.StatusCreated, dto.OKMessage("Project created successfully", dto.NewProjectResponse(project)))
}

// Update handles PUT /api/projects/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}

	project, err := h.projects.Update(c.Context(), c.Params("id"), service.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return dto.JSON(c, http.StatusOK, dto.OKMessage("Project updated successfully", dto.NewProjectResponse(project)))
}

// Deactivate handles DELETE /api/projects/:id.
func (h *ProjectsHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.projects.Deactivate(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return dto.JSON(c, http.StatusOK, dto.OKMessage("Project deactivated successfully", nil))
}
