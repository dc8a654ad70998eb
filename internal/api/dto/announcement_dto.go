package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// AnnouncementRequest payload for create.
type AnnouncementRequest struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// UpdateAnnouncementRequest payload for partial update. Absent fields stay
// unchanged.
type UpdateAnnouncementRequest struct {
	Title    *string `json:"title"`
	Message  *string `json:"message"`
	Priority *string `json:"priority"`
	IsActive *bool   `json:"isActive"`
}

// AnnouncementResponse wire shape.
type AnnouncementResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	Priority      string    `json:"priority"`
	IsActive      bool      `json:"isActive"`
	CreatedBy     string    `json:"createdBy,omitempty"`
	CreatedByName string    `json:"createdByName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewAnnouncementResponse maps a domain announcement.
func NewAnnouncementResponse(a *domain.Announcement) AnnouncementResponse {
	resp := AnnouncementResponse{
		ID:            a.ID,
		Title:         a.Title,
		Message:       a.Message,
		Priority:      string(a.Priority),
		IsActive:      a.IsActive,
		CreatedByName: a.CreatedByName,
		CreatedAt:     a.CreatedAt,
	}
	if a.CreatedBy != nil {
		resp.CreatedBy = *a.CreatedBy
	}
	return resp
}

// NewAnnouncementResponses maps an announcement slice.
func NewAnnouncementResponses(announcements []domain.Announcement) []AnnouncementResponse {
	out := make([]AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		out = append(out, NewAnnouncementResponse(&announcements[i]))
	}
	return out
}
