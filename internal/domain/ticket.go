package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen        TicketStatus = "Open"
	TicketStatusUnderReview TicketStatus = "Under Review"
	TicketStatusAssigned    TicketStatus = "Assigned"
	TicketStatusInProgress  TicketStatus = "In Progress"
	TicketStatusPending     TicketStatus = "Pending"
	TicketStatusResolved    TicketStatus = "Resolved"
	TicketStatusClosed      TicketStatus = "Closed"
)

// TicketStatuses lists every status in display order.
var TicketStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusUnderReview,
	TicketStatusAssigned,
	TicketStatusInProgress,
	TicketStatusPending,
	TicketStatusResolved,
	TicketStatusClosed,
}

// Valid reports whether the status is a known enumeration value.
func (s TicketStatus) Valid() bool {
	for _, candidate := range TicketStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// OpenLike reports whether the status counts as "open" in project breakdowns.
func (s TicketStatus) OpenLike() bool {
	switch s {
	case TicketStatusOpen, TicketStatusUnderReview, TicketStatusAssigned, TicketStatusInProgress, TicketStatusPending:
		return true
	}
	return false
}

// CanTransition reports whether a status change is allowed. The lifecycle is
// deliberately unconstrained: any status may follow any other. Tightening the
// policy later only means editing this function.
func CanTransition(current, next TicketStatus) bool {
	return next.Valid()
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
	TicketPriorityUrgent TicketPriority = "Urgent"
)

// TicketPriorities lists every priority in ascending urgency.
var TicketPriorities = []TicketPriority{
	TicketPriorityLow,
	TicketPriorityMedium,
	TicketPriorityHigh,
	TicketPriorityUrgent,
}

// Valid reports whether the priority is a known enumeration value.
func (p TicketPriority) Valid() bool {
	for _, candidate := range TicketPriorities {
		if candidate == p {
			return true
		}
	}
	return false
}

// Attachment stores metadata for an uploaded file kept on disk.
type Attachment struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName,omitempty"`
	StoragePath  string    `json:"path"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// Ticket is the aggregate for support requests. The employee* fields are a
// snapshot captured at creation time and are never re-synchronized with later
// edits to the Employee record.
type Ticket struct {
	ID             string
	TicketID       string
	EmployeeRef    string
	EmployeeID     string
	EmployeeName   string
	EmployeeEmail  string
	EmployeeMobile string
	ProjectID      *string
	IssueType      string
	Subject        string
	Description    string
	Priority       TicketPriority
	Status         TicketStatus
	AdminResponse  string
	Attachments    []Attachment
	AssignedTo     *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ResolvedAt     *time.Time
	ClosedAt       *time.Time
}

// StampStatusTimes sets resolvedAt/closedAt the first time the ticket reaches
// the matching status. The stamps are never cleared, even if the ticket is
// later reopened.
func (t *Ticket) StampStatusTimes(now time.Time) {
	if t.Status == TicketStatusResolved && t.ResolvedAt == nil {
		at := now
		t.ResolvedAt = &at
	}
	if t.Status == TicketStatusClosed && t.ClosedAt == nil {
		at := now
		t.ClosedAt = &at
	}
}
