package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/internal/upload"
)

type stubAdminRepo struct {
	admin *domain.Admin
}

func (r *stubAdminRepo) Create(context.Context, *domain.Admin) error { return nil }
func (r *stubAdminRepo) Update(context.Context, *domain.Admin) error { return nil }

func (r *stubAdminRepo) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	if r.admin != nil && r.admin.ID == id {
		copied := *r.admin
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubAdminRepo) GetByEmail(context.Context, string) (*domain.Admin, error) {
	return nil, pgx.ErrNoRows
}

// stubTicketRepo records what reaches the repository layer. Methods the
// admin endpoints never touch stay on the embedded nil interface.
type stubTicketRepo struct {
	repository.TicketRepository
	ticket     *domain.Ticket
	lastFilter *repository.TicketFilter
	updated    *domain.Ticket
}

func (r *stubTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.lastFilter = &filter
	return nil, nil
}

func (r *stubTicketRepo) CountWithFilter(context.Context, repository.TicketFilter) (int, error) {
	return 0, nil
}

func (r *stubTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	if r.ticket != nil && r.ticket.ID == id {
		copied := *r.ticket
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	copied := *ticket
	r.updated = &copied
	return nil
}

type stubTimelineRepo struct {
	entries []domain.TimelineEntry
}

func (r *stubTimelineRepo) Append(_ context.Context, entry *domain.TimelineEntry) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubTimelineRepo) ListByTicket(context.Context, string) ([]domain.TimelineEntry, error) {
	return nil, nil
}

type adminTicketsFixture struct {
	app     *fiber.App
	tickets *stubTicketRepo
	token   string
}

func newAdminTicketsFixture(t *testing.T) *adminTicketsFixture {
	t.Helper()

	tickets := &stubTicketRepo{}
	svc := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   tickets,
		TimelineRepo: &stubTimelineRepo{},
		Dispatcher:   events.NewInMemoryDispatcher(zap.NewNop()),
	})

	uploads := config.UploadConfig{Dir: t.TempDir(), MaxFileBytes: 1 << 20, MaxCreateFiles: 5, MaxUpdateFiles: 3}
	storage, err := upload.NewStorage(uploads)
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	handler := NewAdminTicketsHandler(svc, storage, uploads)

	admin := &domain.Admin{ID: "a-1", Name: "Ops Admin", Department: domain.DepartmentAdmin, IsActive: true}
	tokens := auth.NewTokenManager("test-secret", 60)
	token, _, err := tokens.GenerateToken(admin.ID, admin.Department)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	middleware := auth.NewAuthMiddleware(tokens, &stubAdminRepo{admin: admin})

	app := fiber.New()
	app.Get("/api/tickets", middleware.Handle, handler.List)
	app.Put("/api/tickets/:id", middleware.Handle, handler.Update)

	return &adminTicketsFixture{app: app, tickets: tickets, token: token}
}

func TestAdminListProjectFilterParam(t *testing.T) {
	// The admin portal sends ?project=; projectId stays accepted as an alias.
	for _, param := range []string{"project", "projectId"} {
		t.Run(param, func(t *testing.T) {
			fixture := newAdminTicketsFixture(t)

			req := httptest.NewRequest(http.MethodGet, "/api/tickets?"+param+"=p-77", nil)
			req.Header.Set("Authorization", "Bearer "+fixture.token)
			resp, err := fixture.app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}

			filter := fixture.tickets.lastFilter
			if filter == nil {
				t.Fatal("repository was never queried")
			}
			if filter.ProjectID == nil || *filter.ProjectID != "p-77" {
				t.Errorf("filter.ProjectID = %v, want p-77", filter.ProjectID)
			}
		})
	}
}

func TestAdminUpdateJSONTreatsEmptyStringsAsAbsent(t *testing.T) {
	fixture := newAdminTicketsFixture(t)

	assignee := "b3f2a9d4-0000-0000-0000-000000000001"
	fixture.tickets.ticket = &domain.Ticket{
		ID:            "t-1",
		TicketID:      "100001",
		Status:        domain.TicketStatusInProgress,
		Priority:      domain.TicketPriorityHigh,
		AssignedTo:    &assignee,
		EmployeeID:    "E1",
		EmployeeName:  "Dana Field",
		EmployeeEmail: "dana@corp.example",
	}

	body := `{"status":"Resolved","priority":"","assignedTo":"","comment":""}`
	req := httptest.NewRequest(http.MethodPut, "/api/tickets/t-1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+fixture.token)
	resp, err := fixture.app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	updated := fixture.tickets.updated
	if updated == nil {
		t.Fatal("ticket was never written")
	}
	if updated.Status != domain.TicketStatusResolved {
		t.Errorf("status = %q, want Resolved", updated.Status)
	}
	if updated.Priority != domain.TicketPriorityHigh {
		t.Errorf("priority = %q, want untouched High", updated.Priority)
	}
	if updated.AssignedTo == nil || *updated.AssignedTo != assignee {
		t.Errorf("assignedTo = %v, want untouched %q", updated.AssignedTo, assignee)
	}
	if updated.AdminResponse != "" {
		t.Errorf("adminResponse = %q, want untouched", updated.AdminResponse)
	}
}
