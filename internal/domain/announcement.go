package domain

import "time"

// AnnouncementPriority enumerates banner urgency levels.
type AnnouncementPriority string

const (
	AnnouncementPriorityLow    AnnouncementPriority = "Low"
	AnnouncementPriorityMedium AnnouncementPriority = "Medium"
	AnnouncementPriorityHigh   AnnouncementPriority = "High"
)

// Valid reports whether the priority is a known enumeration value.
func (p AnnouncementPriority) Valid() bool {
	switch p {
	case AnnouncementPriorityLow, AnnouncementPriorityMedium, AnnouncementPriorityHigh:
		return true
	}
	return false
}

// Announcement is a broadcast notice shown on the employee portal. Deleting
// one only deactivates it; the record stays for the admin audit view.
type Announcement struct {
	ID            string
	Title         string
	Message       string
	Priority      AnnouncementPriority
	IsActive      bool
	CreatedBy     *string
	CreatedByName string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
