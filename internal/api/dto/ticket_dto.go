package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// UpdateTicketRequest carries the admin update fields. It arrives as multipart
// form fields alongside optional attachments, or as plain JSON.
type UpdateTicketRequest struct {
	Status     *string `json:"status" form:"status"`
	Priority   *string `json:"priority" form:"priority"`
	AssignedTo *string `json:"assignedTo" form:"assignedTo"`
	Comment    *string `json:"comment" form:"comment"`
}

// EmployeeUpdateTicketRequest carries the employee self-service edit fields.
type EmployeeUpdateTicketRequest struct {
	EmployeeID  string `json:"employeeId"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// TicketResponse is the wire shape for a ticket.
type TicketResponse struct {
	ID             string              `json:"id"`
	TicketID       string              `json:"ticketId"`
	EmployeeID     string              `json:"employeeId"`
	EmployeeName   string              `json:"employeeName"`
	EmployeeEmail  string              `json:"employeeEmail,omitempty"`
	EmployeeMobile string              `json:"employeeMobile,omitempty"`
	ProjectID      *string             `json:"projectId,omitempty"`
	IssueType      string              `json:"issueType"`
	Subject        string              `json:"subject"`
	Description    string              `json:"description"`
	Priority       string              `json:"priority"`
	Status         string              `json:"status"`
	AdminResponse  string              `json:"adminResponse,omitempty"`
	Attachments    []domain.Attachment `json:"attachments"`
	AssignedTo     *string             `json:"assignedTo,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
	ResolvedAt     *time.Time          `json:"resolvedAt,omitempty"`
	ClosedAt       *time.Time          `json:"closedAt,omitempty"`
}

// TimelineEntryResponse is one audit record on a ticket.
type TimelineEntryResponse struct {
	Status        string              `json:"status"`
	Comment       string              `json:"comment,omitempty"`
	UpdatedBy     *string             `json:"updatedBy,omitempty"`
	UpdatedByName string              `json:"updatedByName,omitempty"`
	Attachments   []domain.Attachment `json:"attachments,omitempty"`
	Timestamp     time.Time           `json:"timestamp"`
}

// TicketDetailResponse expands related records.
type TicketDetailResponse struct {
	TicketResponse
	Timeline []TimelineEntryResponse `json:"timeline"`
	Project  *ProjectResponse        `json:"project,omitempty"`
	Assignee *AdminSummary           `json:"assignee,omitempty"`
	Employee *EmployeeResponse       `json:"employee,omitempty"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(t *domain.Ticket) TicketResponse {
	attachments := t.Attachments
	if attachments == nil {
		attachments = []domain.Attachment{}
	}
	return TicketResponse{
		ID:             t.ID,
		TicketID:       t.TicketID,
		EmployeeID:     t.EmployeeID,
		EmployeeName:   t.EmployeeName,
		EmployeeEmail:  t.EmployeeEmail,
		EmployeeMobile: t.EmployeeMobile,
		ProjectID:      t.ProjectID,
		IssueType:      t.IssueType,
		Subject:        t.Subject,
		Description:    t.Description,
		Priority:       string(t.Priority),
		Status:         string(t.Status),
		AdminResponse:  t.AdminResponse,
		Attachments:    attachments,
		AssignedTo:     t.AssignedTo,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		ResolvedAt:     t.ResolvedAt,
		ClosedAt:       t.ClosedAt,
	}
}

// NewTicketResponses maps a ticket slice.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i]))
	}
	return out
}

// NewTimelineResponses maps timeline entries.
func NewTimelineResponses(entries []domain.TimelineEntry) []TimelineEntryResponse {
	out := make([]TimelineEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, TimelineEntryResponse{
			Status:        string(e.Status),
			Comment:       e.Comment,
			UpdatedBy:     e.UpdatedBy,
			UpdatedByName: e.UpdatedByName,
			Attachments:   e.Attachments,
			Timestamp:     e.Timestamp,
		})
	}
	return out
}

// NewTicketDetailResponse maps a ticket with expansions.
func NewTicketDetailResponse(detail *service.TicketDetail) TicketDetailResponse {
	resp := TicketDetailResponse{
		TicketResponse: NewTicketResponse(detail.Ticket),
		Timeline:       NewTimelineResponses(detail.Timeline),
	}
	if detail.Project != nil {
		p := NewProjectResponse(detail.Project)
		resp.Project = &p
	}
	if detail.Assignee != nil {
		resp.Assignee = &AdminSummary{
			ID:    detail.Assignee.ID,
			Name:  detail.Assignee.Name,
			Email: detail.Assignee.Email,
		}
	}
	if detail.Employee != nil {
		e := NewEmployeeResponse(detail.Employee)
		resp.Employee = &e
	}
	return resp
}
