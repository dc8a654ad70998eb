package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/notify"
)

type fakeMailer struct {
	messages []notify.Message
	fail     bool
}

func (m *fakeMailer) Send(_ context.Context, msg notify.Message) error {
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.messages = append(m.messages, msg)
	return nil
}

func newNotificationFixture(mailer *fakeMailer) *NotificationService {
	cfg := config.SMTPConfig{
		Host:              "smtp.corp.example",
		ITSupportAlias:    "it-desk@corp.example",
		ERPSupportAlias:   "erp-desk@corp.example",
		DefaultAdminEmail: "admin@corp.example",
	}
	return NewNotificationService(nil, mailer, zap.NewNop(), cfg, "http://portal.corp.example")
}

func TestAdminAlertAddress(t *testing.T) {
	svc := newNotificationFixture(&fakeMailer{})

	tests := []struct {
		issueType string
		want      string
	}{
		{domain.DepartmentITSupport, "it-desk@corp.example"},
		{domain.DepartmentERPSupport, "erp-desk@corp.example"},
		{"General", "admin@corp.example"},
		{"", "admin@corp.example"},
	}
	for _, tc := range tests {
		if got := svc.AdminAlertAddress(tc.issueType); got != tc.want {
			t.Errorf("AdminAlertAddress(%q) = %q, want %q", tc.issueType, got, tc.want)
		}
	}
}

func TestHandleTicketCreatedRoutesByIssueType(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newNotificationFixture(mailer)

	err := svc.handleTicketCreated(context.Background(), events.Event{
		Type: events.EventTicketCreated,
		Payload: events.TicketCreatedPayload{
			TicketID:     "123456",
			EmployeeName: "Dana Field",
			IssueType:    domain.DepartmentERPSupport,
			Priority:     domain.TicketPriorityHigh,
		},
	})
	if err != nil {
		t.Fatalf("handleTicketCreated: %v", err)
	}
	if len(mailer.messages) != 1 {
		t.Fatalf("sent %d mails, want 1", len(mailer.messages))
	}
	if mailer.messages[0].To != "erp-desk@corp.example" {
		t.Errorf("alert to %q, want ERP alias", mailer.messages[0].To)
	}
}

func TestHandleTicketCreatedSurfacesDeliveryError(t *testing.T) {
	svc := newNotificationFixture(&fakeMailer{fail: true})

	err := svc.handleTicketCreated(context.Background(), events.Event{
		Type:    events.EventTicketCreated,
		Payload: events.TicketCreatedPayload{TicketID: "123456"},
	})
	if err == nil {
		t.Error("delivery failure swallowed on the async creation path")
	}
}

func TestHandleTicketStatusChangedSwallowsDeliveryError(t *testing.T) {
	svc := newNotificationFixture(&fakeMailer{fail: true})

	err := svc.handleTicketStatusChanged(context.Background(), events.Event{
		Type: events.EventTicketStatusChanged,
		Payload: events.TicketStatusChangedPayload{
			TicketID:      "123456",
			EmployeeEmail: "dana@corp.example",
			NewStatus:     domain.TicketStatusResolved,
		},
	})
	if err != nil {
		t.Errorf("status-changed handler returned %v; the blocking update path must never fail on mail", err)
	}
}

func TestHandleTicketStatusChangedSendsToSnapshotAddress(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newNotificationFixture(mailer)

	err := svc.handleTicketStatusChanged(context.Background(), events.Event{
		Type: events.EventTicketStatusChanged,
		Payload: events.TicketStatusChangedPayload{
			TicketID:      "123456",
			EmployeeName:  "Dana Field",
			EmployeeEmail: "dana@corp.example",
			OldStatus:     domain.TicketStatusOpen,
			NewStatus:     domain.TicketStatusResolved,
			Comment:       "Replaced the power supply",
		},
	})
	if err != nil {
		t.Fatalf("handleTicketStatusChanged: %v", err)
	}
	if len(mailer.messages) != 1 {
		t.Fatalf("sent %d mails, want 1", len(mailer.messages))
	}
	if mailer.messages[0].To != "dana@corp.example" {
		t.Errorf("mail to %q, want the snapshotted employee address", mailer.messages[0].To)
	}
}
