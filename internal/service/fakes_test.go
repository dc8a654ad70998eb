package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

type fakeTicketRepo struct {
	tickets    []*domain.Ticket
	nextID     int
	now        time.Time
	lastFilter repository.TicketFilter
}

func newFakeTicketRepo(now time.Time) *fakeTicketRepo {
	return &fakeTicketRepo{now: now}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.nextID++
	ticket.ID = fmt.Sprintf("t-%d", r.nextID)
	ticket.CreatedAt = r.now
	ticket.UpdatedAt = r.now
	stored := *ticket
	r.tickets = append(r.tickets, &stored)
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	for i, stored := range r.tickets {
		if stored.ID == ticket.ID {
			ticket.UpdatedAt = r.now
			copied := *ticket
			r.tickets[i] = &copied
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	for _, stored := range r.tickets {
		if stored.ID == id {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) GetByTicketID(_ context.Context, ticketID string) (*domain.Ticket, error) {
	for _, stored := range r.tickets {
		if stored.TicketID == ticketID {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) ListByEmployee(_ context.Context, employeeID string) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, stored := range r.tickets {
		if stored.EmployeeID == employeeID {
			result = append(result, *stored)
		}
	}
	return result, nil
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.lastFilter = filter
	matched := r.match(filter)
	offset := filter.Offset
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (r *fakeTicketRepo) CountWithFilter(_ context.Context, filter repository.TicketFilter) (int, error) {
	r.lastFilter = filter
	return len(r.match(filter)), nil
}

func (r *fakeTicketRepo) ListByIssueType(_ context.Context, issueType *string) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, stored := range r.tickets {
		if issueType == nil || stored.IssueType == *issueType {
			result = append(result, *stored)
		}
	}
	return result, nil
}

func (r *fakeTicketRepo) match(filter repository.TicketFilter) []domain.Ticket {
	var result []domain.Ticket
	for _, stored := range r.tickets {
		if filter.Status != nil && stored.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && stored.Priority != *filter.Priority {
			continue
		}
		if filter.IssueType != nil && stored.IssueType != *filter.IssueType {
			continue
		}
		if filter.Search != nil {
			needle := strings.ToLower(*filter.Search)
			haystack := strings.ToLower(stored.TicketID + " " + stored.EmployeeName + " " + stored.EmployeeID + " " + stored.Description)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		result = append(result, *stored)
	}
	return result
}

type fakeTimelineRepo struct {
	entries []domain.TimelineEntry
	nextID  int
}

func (r *fakeTimelineRepo) Append(_ context.Context, entry *domain.TimelineEntry) error {
	r.nextID++
	entry.ID = fmt.Sprintf("tl-%d", r.nextID)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeTimelineRepo) ListByTicket(_ context.Context, ticketRef string) ([]domain.TimelineEntry, error) {
	var result []domain.TimelineEntry
	for _, entry := range r.entries {
		if entry.TicketRef == ticketRef {
			result = append(result, entry)
		}
	}
	return result, nil
}

type fakeEmployeeRepo struct {
	employees []*domain.Employee
	nextID    int
}

func (r *fakeEmployeeRepo) Create(_ context.Context, employee *domain.Employee) error {
	r.nextID++
	employee.ID = fmt.Sprintf("e-%d", r.nextID)
	stored := *employee
	r.employees = append(r.employees, &stored)
	return nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, employee *domain.Employee) error {
	for i, stored := range r.employees {
		if stored.ID == employee.ID {
			copied := *employee
			r.employees[i] = &copied
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	for _, stored := range r.employees {
		if stored.ID == id {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeEmployeeRepo) GetByEmployeeID(_ context.Context, employeeID string) (*domain.Employee, error) {
	for _, stored := range r.employees {
		if stored.EmployeeID == employeeID {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	for _, stored := range r.employees {
		if stored.Email == email {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeEmployeeRepo) List(_ context.Context) ([]domain.Employee, error) {
	result := make([]domain.Employee, 0, len(r.employees))
	for _, stored := range r.employees {
		result = append(result, *stored)
	}
	return result, nil
}

type fakeProjectRepo struct {
	projects []*domain.Project
	nextID   int
}

func (r *fakeProjectRepo) Create(_ context.Context, project *domain.Project) error {
	r.nextID++
	project.ID = fmt.Sprintf("p-%d", r.nextID)
	stored := *project
	r.projects = append(r.projects, &stored)
	return nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *domain.Project) error {
	for i, stored := range r.projects {
		if stored.ID == project.ID {
			copied := *project
			r.projects[i] = &copied
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id string) (*domain.Project, error) {
	for _, stored := range r.projects {
		if stored.ID == id {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeProjectRepo) GetByName(_ context.Context, name string) (*domain.Project, error) {
	for _, stored := range r.projects {
		if stored.Name == name {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeProjectRepo) ListActive(_ context.Context) ([]domain.Project, error) {
	var result []domain.Project
	for _, stored := range r.projects {
		if stored.IsActive {
			result = append(result, *stored)
		}
	}
	return result, nil
}

func (r *fakeProjectRepo) ListAll(_ context.Context) ([]domain.Project, error) {
	result := make([]domain.Project, 0, len(r.projects))
	for _, stored := range r.projects {
		result = append(result, *stored)
	}
	return result, nil
}

type fakeAdminRepo struct {
	admins []*domain.Admin
	nextID int
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	r.nextID++
	admin.ID = fmt.Sprintf("a-%d", r.nextID)
	stored := *admin
	r.admins = append(r.admins, &stored)
	return nil
}

func (r *fakeAdminRepo) Update(_ context.Context, admin *domain.Admin) error {
	for i, stored := range r.admins {
		if stored.ID == admin.ID {
			copied := *admin
			r.admins[i] = &copied
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	for _, stored := range r.admins {
		if stored.ID == id {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	for _, stored := range r.admins {
		if stored.Email == email {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeDispatcher struct {
	published []events.Event
	async     []events.Event
}

func (d *fakeDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *fakeDispatcher) PublishAsync(event events.Event) {
	d.async = append(d.async, event)
}

func (d *fakeDispatcher) Subscribe(events.EventType, events.EventHandler) {}

type ticketServiceFixture struct {
	service    *TicketService
	tickets    *fakeTicketRepo
	timeline   *fakeTimelineRepo
	employees  *fakeEmployeeRepo
	projects   *fakeProjectRepo
	admins     *fakeAdminRepo
	dispatcher *fakeDispatcher
	now        time.Time
}

func newTicketServiceFixture() *ticketServiceFixture {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	fixture := &ticketServiceFixture{
		tickets:    newFakeTicketRepo(now),
		timeline:   &fakeTimelineRepo{},
		employees:  &fakeEmployeeRepo{},
		projects:   &fakeProjectRepo{},
		admins:     &fakeAdminRepo{},
		dispatcher: &fakeDispatcher{},
		now:        now,
	}

	svc := NewTicketService(TicketDependencies{
		TicketRepo:   fixture.tickets,
		TimelineRepo: fixture.timeline,
		EmployeeRepo: fixture.employees,
		ProjectRepo:  fixture.projects,
		AdminRepo:    fixture.admins,
		Dispatcher:   fixture.dispatcher,
	})
	svc.now = func() time.Time { return fixture.now }

	seq := 0
	svc.newTicketID = func() string {
		seq++
		return fmt.Sprintf("%06d", 100000+seq)
	}

	fixture.service = svc
	return fixture
}
