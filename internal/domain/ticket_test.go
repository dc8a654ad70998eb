package domain

import (
	"testing"
	"time"
)

func TestTicketStatusValid(t *testing.T) {
	for _, status := range TicketStatuses {
		if !status.Valid() {
			t.Errorf("%q should be valid", status)
		}
	}
	if TicketStatus("Archived").Valid() {
		t.Error("unknown status accepted")
	}
	if TicketStatus("open").Valid() {
		t.Error("status comparison should be case-sensitive")
	}
}

func TestCanTransitionIsUnconstrained(t *testing.T) {
	for _, from := range TicketStatuses {
		for _, to := range TicketStatuses {
			if !CanTransition(from, to) {
				t.Errorf("transition %q -> %q should be allowed", from, to)
			}
		}
	}
	if CanTransition(TicketStatusOpen, TicketStatus("Archived")) {
		t.Error("transition to unknown status accepted")
	}
}

func TestOpenLike(t *testing.T) {
	openLike := map[TicketStatus]bool{
		TicketStatusOpen:        true,
		TicketStatusUnderReview: true,
		TicketStatusAssigned:    true,
		TicketStatusInProgress:  true,
		TicketStatusPending:     true,
		TicketStatusResolved:    false,
		TicketStatusClosed:      false,
	}
	for status, want := range openLike {
		if got := status.OpenLike(); got != want {
			t.Errorf("%q OpenLike = %v, want %v", status, got, want)
		}
	}
}

func TestStampStatusTimes(t *testing.T) {
	first := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	later := first.Add(24 * time.Hour)

	ticket := &Ticket{Status: TicketStatusResolved}
	ticket.StampStatusTimes(first)
	if ticket.ResolvedAt == nil || !ticket.ResolvedAt.Equal(first) {
		t.Fatalf("resolvedAt = %v, want %v", ticket.ResolvedAt, first)
	}
	if ticket.ClosedAt != nil {
		t.Errorf("closedAt = %v, want nil", ticket.ClosedAt)
	}

	// A later pass through Resolved must not move the stamp.
	ticket.StampStatusTimes(later)
	if !ticket.ResolvedAt.Equal(first) {
		t.Errorf("resolvedAt moved to %v", ticket.ResolvedAt)
	}

	ticket.Status = TicketStatusClosed
	ticket.StampStatusTimes(later)
	if ticket.ClosedAt == nil || !ticket.ClosedAt.Equal(later) {
		t.Errorf("closedAt = %v, want %v", ticket.ClosedAt, later)
	}
}

func TestSeesAllDepartments(t *testing.T) {
	tests := []struct {
		department string
		want       bool
	}{
		{DepartmentAdmin, true},
		{"", true},
		{"Facilities", true},
		{DepartmentITSupport, false},
		{DepartmentERPSupport, false},
	}
	for _, tc := range tests {
		admin := &Admin{Department: tc.department}
		if got := admin.SeesAllDepartments(); got != tc.want {
			t.Errorf("department %q: SeesAllDepartments = %v, want %v", tc.department, got, tc.want)
		}
	}
}
