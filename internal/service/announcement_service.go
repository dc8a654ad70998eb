package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// activeAnnouncementLimit caps the public banner feed to the newest entries.
const activeAnnouncementLimit = 10

// AnnouncementService manages portal-wide broadcast notices.
type AnnouncementService struct {
	announcements repository.AnnouncementRepository
}

// NewAnnouncementService creates the service.
func NewAnnouncementService(announcements repository.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{announcements: announcements}
}

// AnnouncementInput carries creation fields.
type AnnouncementInput struct {
	Title    string
	Message  string
	Priority string
}

// AnnouncementUpdateInput carries partial-update fields. Nil means leave
// unchanged.
type AnnouncementUpdateInput struct {
	Title    *string
	Message  *string
	Priority *string
	IsActive *bool
}

// Create publishes an announcement authored by the given admin. Priority
// defaults to Medium.
func (s *AnnouncementService) Create(ctx context.Context, admin *domain.Admin, input AnnouncementInput) (*domain.Announcement, error) {
	title := strings.TrimSpace(input.Title)
	message := strings.TrimSpace(input.Message)

	var problems []string
	if title == "" {
		problems = append(problems, "title is required")
	}
	if message == "" {
		problems = append(problems, "message is required")
	}
	if len(problems) > 0 {
		return nil, apperrors.NewValidationError(problems...)
	}

	priority := domain.AnnouncementPriorityMedium
	if input.Priority != "" {
		priority = domain.AnnouncementPriority(input.Priority)
		if !priority.Valid() {
			return nil, apperrors.NewValidationError("invalid priority value")
		}
	}

	adminID := admin.ID
	announcement := &domain.Announcement{
		Title:         title,
		Message:       message,
		Priority:      priority,
		IsActive:      true,
		CreatedBy:     &adminID,
		CreatedByName: admin.Name,
	}
	if err := s.announcements.Create(ctx, announcement); err != nil {
		return nil, apperrors.MapError(err)
	}
	return announcement, nil
}

// ListActive returns the newest active announcements for the employee portal.
func (s *AnnouncementService) ListActive(ctx context.Context) ([]domain.Announcement, error) {
	announcements, err := s.announcements.ListActive(ctx, activeAnnouncementLimit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return announcements, nil
}

// Update edits an announcement. IsActive can flip both ways so a retracted
// notice can be re-published.
func (s *AnnouncementService) Update(ctx context.Context, id string, input AnnouncementUpdateInput) (*domain.Announcement, error) {
	announcement, err := s.announcements.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Announcement")
		}
		return nil, apperrors.MapError(err)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title is required")
		}
		announcement.Title = title
	}
	if input.Message != nil {
		message := strings.TrimSpace(*input.Message)
		if message == "" {
			return nil, apperrors.NewValidationError("message is required")
		}
		announcement.Message = message
	}
	if input.Priority != nil {
		priority := domain.AnnouncementPriority(*input.Priority)
		if !priority.Valid() {
			return nil, apperrors.NewValidationError("invalid priority value")
		}
		announcement.Priority = priority
	}
	if input.IsActive != nil {
		announcement.IsActive = *input.IsActive
	}

	if err := s.announcements.Update(ctx, announcement); err != nil {
		return nil, apperrors.MapError(err)
	}
	return announcement, nil
}

// Deactivate retracts an announcement without deleting the record.
func (s *AnnouncementService) Deactivate(ctx context.Context, id string) error {
	announcement, err := s.announcements.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Announcement")
		}
		return apperrors.MapError(err)
	}
	announcement.IsActive = false
	if err := s.announcements.Update(ctx, announcement); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
