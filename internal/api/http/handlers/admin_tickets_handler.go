package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/internal/upload"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AdminTicketsHandler exposes the admin-side ticket endpoints. Every entry
// point resolves the authenticated admin so department scoping applies.
type AdminTicketsHandler struct {
	tickets *service.TicketService
	storage *upload.Storage
	uploads config.UploadConfig
}

// NewAdminTicketsHandler constructs handler.
func NewAdminTicketsHandler(tickets *service.TicketService, storage *upload.Storage, uploads config.UploadConfig) *AdminTicketsHandler {
	return &AdminTicketsHandler{tickets: tickets, storage: storage, uploads: uploads}
}

// List handles GET /api/tickets.
func (h *AdminTicketsHandler) List(c *fiber.Ctx) error {
	admin, ok := auth.AdminFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}

	// The admin portal sends ?project=<id>; projectId is kept as an alias.
	projectID := c.Query("project")
	if projectID == "" {
		projectID = c.Query("projectId")
	}

	query := service.TicketListQuery{
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		ProjectID: projectID,
		Search:    c.Query("search"),
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 50),
	}
	if from, err := parseDateParam(c.Query("startDate"), false); err != nil {
		return err
	} else if from != nil {
		query.StartDate = from
	}
	if to, err := parseDateParam(c.Query("endDate"), true); err != nil {
		return err
	} else if to != nil {
		query.EndDate = to
	}

	page, err := h.tickets.ListTickets(c.Context(), admin, query)
	if err != nil {
		return err
	}

	responses := dto.NewTicketResponses(page.Tickets)
	return dto.JSON(c, http.StatusOK, dto.Paged(responses, len(responses), page.Total, page.Page, page.Pages))
}

// Update handles PUT /api/tickets/:id. Accepts multipart (fields plus up to
// the configured number of attachments) or plain JSON.
func (h *AdminTicketsHandler) Update(c *fiber.Ctx) error {
	admin, ok := auth.AdminFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}

	attachments, err := h.storage.SaveAll(formFiles(c, "attachments"), h.uploads.MaxUpdateFiles)
	if err != nil {
		return err
	}

	input := service.TicketUpdateInput{Attachments: attachments}
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if v := c.FormValue("status"); v != "" {
			status := domain.TicketStatus(v)
			input.Status = &status
		}
		if v := c.FormValue("priority"); v != "" {
			priority := domain.TicketPriority(v)
			input.Priority = &priority
		}
		if v := c.FormValue("assignedTo"); v != "" {
			assignedTo := v
			input.AssignedTo = &assignedTo
		}
		if v := c.FormValue("comment"); v != "" {
			comment := v
			input.Comment = &comment
		}
	} else {
		var req dto.UpdateTicketRequest
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid request body")
		}
		// Empty strings mean "leave unchanged", same as absent multipart
		// fields. An empty assignedTo in particular must not reach the
		// repository, which expects a UUID.
		if req.Status != nil && *req.Status != "" {
			status := domain.TicketStatus(*req.Status)
			input.Status = &status
		}
		if req.Priority != nil && *req.Priority != "" {
			priority := domain.TicketPriority(*req.Priority)
			input.Priority = &priority
		}
		if req.AssignedTo != nil && *req.AssignedTo != "" {
			input.AssignedTo = req.AssignedTo
		}
		if req.Comment != nil && *req.Comment != "" {
			input.Comment = req.Comment
		}
	}

	ticket, err := h.tickets.UpdateTicket(c.Context(), admin, c.Params("id"), input)
	if err != nil {
		return err
	}

	return dto.JSON(c, http.StatusOK, dto.OKMessage("Ticket updated successfully", dto.NewTicketResponse(ticket)))
}

// Stats handles GET /api/tickets/stats.
func (h *AdminTicketsHandler) Stats(c *fiber.Ctx) error {
	admin, ok := auth.AdminFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}

	stats, err := h.tickets.Statistics(c.Context(), admin)
	if err != nil {
		return err
	}
	return dto.JSON(c, http.StatusOK, dto.OK(stats))
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}

// parseDateParam accepts date-only or RFC3339 values. Date-only end bounds
// cover the whole day.
func parseDateParam(raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		if endOfDay {
			parsed = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		return &parsed, nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return &parsed, nil
	}
	return nil, apperrors.NewValidationError("invalid date value: " + raw)
}
