package domain

import "time"

// TimelineEntry is one immutable audit record on a ticket. Entries are only
// ever appended; the first entry is always the creation event.
type TimelineEntry struct {
	ID            string
	TicketRef     string
	Status        TicketStatus
	Comment       string
	UpdatedBy     *string
	UpdatedByName string
	Attachments   []Attachment
	Timestamp     time.Time
}
