package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload carries the snapshot the creation alert needs.
type TicketCreatedPayload struct {
	TicketID     string                `json:"ticket_id"`
	EmployeeID   string                `json:"employee_id"`
	EmployeeName string                `json:"employee_name"`
	IssueType    string                `json:"issue_type"`
	Subject      string                `json:"subject"`
	Priority     domain.TicketPriority `json:"priority"`
	Description  string                `json:"description"`
}

// TicketStatusChangedPayload carries what the employee update mail needs.
type TicketStatusChangedPayload struct {
	TicketID      string              `json:"ticket_id"`
	EmployeeName  string              `json:"employee_name"`
	EmployeeEmail string              `json:"employee_email"`
	OldStatus     domain.TicketStatus `json:"old_status"`
	NewStatus     domain.TicketStatus `json:"new_status"`
	Comment       string              `json:"comment,omitempty"`
}
