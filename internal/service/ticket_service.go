package service

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

const (
	defaultIssueType      = "General"
	defaultSubject        = "Support Request"
	defaultEmployeeName   = "Guest User"
	creationComment       = "Ticket created"
	employeeUpdateComment = "Ticket details updated by employee"

	ticketIDAttempts = 5
)

// TicketService owns the ticket lifecycle: creation, status transitions,
// timeline audit trail, department-scoped visibility and statistics.
type TicketService struct {
	tickets    repository.TicketRepository
	timeline   repository.TimelineRepository
	employees  repository.EmployeeRepository
	projects   repository.ProjectRepository
	admins     repository.AdminRepository
	dispatcher events.Dispatcher

	now         func() time.Time
	newTicketID func() string
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	TimelineRepo repository.TimelineRepository
	EmployeeRepo repository.EmployeeRepository
	ProjectRepo  repository.ProjectRepository
	AdminRepo    repository.AdminRepository
	Dispatcher   events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketRepo,
		timeline:    deps.TimelineRepo,
		employees:   deps.EmployeeRepo,
		projects:    deps.ProjectRepo,
		admins:      deps.AdminRepo,
		dispatcher:  deps.Dispatcher,
		now:         time.Now,
		newTicketID: randomTicketID,
	}
}

// TicketCreateInput describes the employee-portal creation payload.
type TicketCreateInput struct {
	EmployeeID  string
	Name        string
	Email       string
	Mobile      string
	ProjectID   string
	IssueType   string
	Category    string
	Subject     string
	Priority    string
	Description string
	Attachments []domain.Attachment
}

// TicketUpdateInput describes the admin-side update payload. Nil fields are
// left untouched.
type TicketUpdateInput struct {
	Status      *domain.TicketStatus
	Priority    *domain.TicketPriority
	AssignedTo  *string
	Comment     *string
	Attachments []domain.Attachment
}

// EmployeeUpdateInput describes the employee self-service edit payload.
type EmployeeUpdateInput struct {
	EmployeeID  string
	Subject     string
	Description string
	Priority    string
}

// TicketListQuery carries admin listing filters.
type TicketListQuery struct {
	Status    string
	Priority  string
	ProjectID string
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// TicketPage is one page of admin listing results.
type TicketPage struct {
	Tickets []domain.Ticket
	Total   int
	Page    int
	Pages   int
}

// TicketDetail is a ticket with its related records expanded.
type TicketDetail struct {
	Ticket   *domain.Ticket
	Timeline []domain.TimelineEntry
	Project  *domain.Project
	Assignee *domain.Admin
	Employee *domain.Employee
}

// CreateTicket resolves (or creates) the submitting employee, validates the
// optional project link and persists a new ticket with its creation timeline
// entry. The department admin alert is dispatched fire-and-forget after the
// ticket is stored.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, []domain.TimelineEntry, error) {
	employeeID := strings.TrimSpace(input.EmployeeID)

	var fieldErrors []string
	if employeeID == "" {
		fieldErrors = append(fieldErrors, "Employee ID is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		fieldErrors = append(fieldErrors, "Description is required")
	}
	if len(fieldErrors) > 0 {
		return nil, nil, apperrors.NewValidationError(fieldErrors...)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = defaultEmployeeName
	}
	email := strings.TrimSpace(input.Email)
	mobile := strings.TrimSpace(input.Mobile)

	employee, err := s.resolveEmployee(ctx, employeeID, name, email, mobile)
	if err != nil {
		return nil, nil, err
	}

	// Submitted values win only when non-default; otherwise backfill from the
	// stored employee record.
	if name == defaultEmployeeName && employee.Name != "" {
		name = employee.Name
	}
	if email == "" {
		email = employee.Email
	}
	if mobile == "" {
		mobile = employee.Mobile
	}

	var projectID *string
	if input.ProjectID != "" && input.ProjectID != domain.ProjectNoneSentinel {
		project, err := s.projects.GetByID(ctx, input.ProjectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil, apperrors.NewNotFound("Project")
			}
			return nil, nil, err
		}
		projectID = &project.ID
	}

	issueType := firstNonEmpty(input.IssueType, input.Category, defaultIssueType)
	subject := firstNonEmpty(input.Subject, issueType, defaultSubject)

	priority := domain.TicketPriority(input.Priority)
	if !priority.Valid() {
		priority = domain.TicketPriorityMedium
	}

	ticketID, err := s.uniqueTicketID(ctx)
	if err != nil {
		return nil, nil, err
	}

	ticket := &domain.Ticket{
		TicketID:       ticketID,
		EmployeeRef:    employee.ID,
		EmployeeID:     employeeID,
		EmployeeName:   name,
		EmployeeEmail:  email,
		EmployeeMobile: mobile,
		ProjectID:      projectID,
		IssueType:      issueType,
		Subject:        subject,
		Description:    input.Description,
		Priority:       priority,
		Status:         domain.TicketStatusOpen,
		Attachments:    input.Attachments,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, nil, err
	}

	entry := domain.TimelineEntry{
		TicketRef:     ticket.ID,
		Status:        domain.TicketStatusOpen,
		Comment:       creationComment,
		UpdatedByName: name,
		Timestamp:     s.now(),
	}
	if err := s.timeline.Append(ctx, &entry); err != nil {
		return nil, nil, err
	}

	s.publishAsync(events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.TicketID,
		Payload: events.TicketCreatedPayload{
			TicketID:     ticket.TicketID,
			EmployeeID:   ticket.EmployeeID,
			EmployeeName: ticket.EmployeeName,
			IssueType:    ticket.IssueType,
			Subject:      ticket.Subject,
			Priority:     ticket.Priority,
			Description:  ticket.Description,
		},
	})

	return ticket, []domain.TimelineEntry{entry}, nil
}

// UpdateTicket applies an admin update: fields change directly, the timeline
// gains an entry when status or comment is present, and the employee is
// notified synchronously on status changes.
func (s *TicketService) UpdateTicket(ctx context.Context, admin *domain.Admin, id string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Ticket")
		}
		return nil, err
	}

	oldStatus := ticket.Status

	if input.Status != nil {
		if !domain.CanTransition(ticket.Status, *input.Status) {
			return nil, apperrors.NewValidationError("invalid status value")
		}
		ticket.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, apperrors.NewValidationError("invalid priority value")
		}
		ticket.Priority = *input.Priority
	}
	if input.AssignedTo != nil {
		ticket.AssignedTo = input.AssignedTo
	}

	now := s.now()

	comment := ""
	if input.Comment != nil {
		comment = *input.Comment
		ticket.AdminResponse = comment
	}

	var entry *domain.TimelineEntry
	if input.Status != nil || input.Comment != nil {
		adminID := admin.ID
		entry = &domain.TimelineEntry{
			TicketRef:     ticket.ID,
			Status:        ticket.Status,
			Comment:       comment,
			UpdatedBy:     &adminID,
			UpdatedByName: admin.Name,
			Attachments:   input.Attachments,
			Timestamp:     now,
		}
	}

	ticket.StampStatusTimes(now)

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	if entry != nil {
		if err := s.timeline.Append(ctx, entry); err != nil {
			return nil, err
		}
	}

	if input.Status != nil {
		// Awaited on purpose: the employee notification blocks the update
		// response. Delivery failures are handled inside the subscriber.
		_ = s.dispatcher.Publish(ctx, s.newEvent(events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.TicketID,
			Payload: events.TicketStatusChangedPayload{
				TicketID:      ticket.TicketID,
				EmployeeName:  ticket.EmployeeName,
				EmployeeEmail: ticket.EmployeeEmail,
				OldStatus:     oldStatus,
				NewStatus:     ticket.Status,
				Comment:       comment,
			},
		}))
	}

	return ticket, nil
}

// UpdateTicketByEmployee lets the submitting employee edit subject,
// description and priority while the ticket is still Open.
func (s *TicketService) UpdateTicketByEmployee(ctx context.Context, ticketID string, input EmployeeUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByTicketID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Ticket")
		}
		return nil, err
	}

	if ticket.EmployeeID != input.EmployeeID {
		return nil, apperrors.NewForbidden("Unauthorized to edit this ticket")
	}
	if ticket.Status != domain.TicketStatusOpen {
		return nil, apperrors.NewBusinessError("Cannot edit ticket that is already being processed")
	}

	if input.Description != "" {
		ticket.Description = input.Description
	}
	if input.Subject != "" {
		ticket.Subject = input.Subject
	}
	if input.Priority != "" {
		priority := domain.TicketPriority(input.Priority)
		if !priority.Valid() {
			return nil, apperrors.NewValidationError("invalid priority value")
		}
		ticket.Priority = priority
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	entry := domain.TimelineEntry{
		TicketRef:     ticket.ID,
		Status:        ticket.Status,
		Comment:       employeeUpdateComment,
		UpdatedByName: ticket.EmployeeName,
		Timestamp:     s.now(),
	}
	if err := s.timeline.Append(ctx, &entry); err != nil {
		return nil, err
	}

	return ticket, nil
}

// ListTickets returns a department-scoped, filtered, paginated ticket page.
func (s *TicketService) ListTickets(ctx context.Context, admin *domain.Admin, query TicketListQuery) (*TicketPage, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 50
	}

	filter := repository.TicketFilter{
		CreatedFrom: query.StartDate,
		CreatedTo:   query.EndDate,
		Limit:       limit,
		Offset:      (page - 1) * limit,
	}
	if query.Status != "" {
		status := domain.TicketStatus(query.Status)
		filter.Status = &status
	}
	if query.Priority != "" {
		priority := domain.TicketPriority(query.Priority)
		filter.Priority = &priority
	}
	if query.ProjectID != "" {
		projectID := query.ProjectID
		filter.ProjectID = &projectID
	}
	if query.Search != "" {
		search := query.Search
		filter.Search = &search
	}
	filter.IssueType = scopeForAdmin(admin)

	total, err := s.tickets.CountWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	pages := total / limit
	if total%limit != 0 {
		pages++
	}

	return &TicketPage{
		Tickets: tickets,
		Total:   total,
		Page:    page,
		Pages:   pages,
	}, nil
}

// ListTicketsByEmployee returns every ticket the employee has submitted,
// newest first.
func (s *TicketService) ListTicketsByEmployee(ctx context.Context, employeeID string) ([]domain.Ticket, error) {
	return s.tickets.ListByEmployee(ctx, employeeID)
}

// GetTicketDetail fetches one ticket by its public id with project, assignee,
// employee and timeline expanded.
func (s *TicketService) GetTicketDetail(ctx context.Context, ticketID string) (*TicketDetail, error) {
	ticket, err := s.tickets.GetByTicketID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Ticket")
		}
		return nil, err
	}

	detail := &TicketDetail{Ticket: ticket}

	if detail.Timeline, err = s.timeline.ListByTicket(ctx, ticket.ID); err != nil {
		return nil, err
	}
	if ticket.ProjectID != nil {
		if project, err := s.projects.GetByID(ctx, *ticket.ProjectID); err == nil {
			detail.Project = project
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	if ticket.AssignedTo != nil {
		if assignee, err := s.admins.GetByID(ctx, *ticket.AssignedTo); err == nil {
			detail.Assignee = assignee
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	if employee, err := s.employees.GetByID(ctx, ticket.EmployeeRef); err == nil {
		detail.Employee = employee
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	return detail, nil
}

// resolveEmployee loads the employee by external id, creating the record on
// first ticket submission. Email is a required identity field, so a
// placeholder is synthesized when the portal sends none.
func (s *TicketService) resolveEmployee(ctx context.Context, employeeID, name, email, mobile string) (*domain.Employee, error) {
	employee, err := s.employees.GetByEmployeeID(ctx, employeeID)
	if err == nil {
		return employee, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if email == "" {
		email = employeeID + "@guest.temp"
	}
	employee = &domain.Employee{
		EmployeeID: employeeID,
		Name:       name,
		Email:      strings.ToLower(email),
		Mobile:     mobile,
		IsActive:   true,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// uniqueTicketID generates a 6-digit id, retrying on the (unlikely) collision.
func (s *TicketService) uniqueTicketID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < ticketIDAttempts; attempt++ {
		candidate := s.newTicketID()
		_, err := s.tickets.GetByTicketID(ctx, candidate)
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", apperrors.NewInternalError(errors.New("could not allocate unique ticket id"))
}

// scopeForAdmin returns the issueType partition enforced for the admin, nil
// when the admin sees all departments. Every admin-facing listing and
// aggregation entry point applies this one function.
func scopeForAdmin(admin *domain.Admin) *string {
	if admin == nil || admin.SeesAllDepartments() {
		return nil
	}
	department := admin.Department
	return &department
}

func (s *TicketService) publishAsync(event events.Event) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.PublishAsync(s.newEvent(event))
}

func (s *TicketService) newEvent(event events.Event) events.Event {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	return event
}

func randomTicketID() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
