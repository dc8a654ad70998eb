package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/internal/upload"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketsHandler exposes the employee-portal ticket endpoints. Creation
// accepts a multipart form so attachments ride along with the fields.
type TicketsHandler struct {
	tickets *service.TicketService
	storage *upload.Storage
	uploads config.UploadConfig
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, storage *upload.Storage, uploads config.UploadConfig) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, storage: storage, uploads: uploads}
}

// Create handles POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	attachments, err := h.storage.SaveAll(formFiles(c, "attachments"), h.uploads.MaxCreateFiles)
	if err != nil {
		return err
	}

	input := service.TicketCreateInput{
		EmployeeID:  c.FormValue("employeeId"),
		Name:        c.FormValue("name"),
		Email:       c.FormValue("email"),
		Mobile:      c.FormValue("mobile"),
		ProjectID:   c.FormValue("projectId"),
		IssueType:   c.FormValue("issueType"),
		Category:    c.FormValue("category"),
		Subject:     c.FormValue("subject"),
		Priority:    c.FormValue("priority"),
		Description: c.FormValue("description"),
		Attachments: attachments,
	}

	ticket, timeline, err := h.tickets.CreateTicket(c.Context(), input)
	if err != nil {
		return err
	}

	return dto.JSON(c, http.StatusCreated, dto.OKMessage("Ticket created successfully", fiber.Map{
		"ticket":   dto.NewTicketResponse(ticket),
		"timeline": dto.NewTimelineResponses(timeline),
	}))
}

// ListByEmployee handles GET /api/tickets/employee/:employeeId.
func (h *TicketsHandler) ListByEmployee(c *fiber.Ctx) error {
	employeeID := strings.TrimSpace(c.Params("employeeId"))
	if employeeID == "" {
		return apperrors.NewValidationError("Employee ID is required")
	}

	tickets, err := h.tickets.ListTicketsByEmployee(c.Context(), employeeID)
	if err != nil {
		return err
	}

	responses := dto.NewTicketResponses(tickets)
	return dto.JSON(c, http.StatusOK, dto.List(responses, len(responses)))
}

// GetByTicketID handles GET /api/tickets/by-ticket-id/:ticketId.
func (h *TicketsHandler) GetByTicketID(c *fiber.Ctx) error {
	detail, err := h.tickets.GetTicketDetail(c.Context(), c.Params("ticketId"))
	if err != nil {
		return err
	}
	return dto.JSON(c, http.StatusOK, dto.OK(dto.NewTicketDetailResponse(detail)))
}

// UpdateByEmployee handles PUT /api/tickets/employee-update/:ticketId.
func (h *TicketsHandler) UpdateByEmployee(c *fiber.Ctx) error {
	var req dto.EmployeeUpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}
	if strings.TrimSpace(req.EmployeeID) == "" {
		return apperrors.NewValidationError("Employee ID is required")
	}

	ticket, err := h.tickets.UpdateTicketByEmployee(c.Context(), c.Params("ticketId"), service.EmployeeUpdateInput{
		EmployeeID:  strings.TrimSpace(req.EmployeeID),
		Subject:     req.Subject,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}

	return dto.JSON(c, http.StatusOK, dto.OKMessage("Ticket updated successfully", dto.NewTicketResponse(ticket)))
}

// formFiles extracts uploaded files for a field, tolerating non-multipart
// requests.
func formFiles(c *fiber.Ctx, field string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[field]
}
