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

// ProjectService manages the project catalog tickets can be filed against.
type ProjectService struct {
	projects repository.ProjectRepository
}

// NewProjectService creates the service.
func NewProjectService(projects repository.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

// ProjectInput carries project fields.
type ProjectInput struct {
	Name        string
	Description string
}

// Create adds a project. Names are unique.
func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*domain.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}

	if _, err := s.projects.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewDuplicateKey("name")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	project := &domain.Project{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		IsActive:    true,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, apperrors.MapError(err)
	}
	return project, nil
}

// ListActive returns projects selectable on the ticket form.
func (s *ProjectService) ListActive(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.projects.ListActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return projects, nil
}

// ListAll returns every project, active or not.
func (s *ProjectService) ListAll(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return projects, nil
}

// Update edits a project.
func (s *ProjectService) Update(ctx context.Context, id string, input ProjectInput) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Project")
		}
		return nil, apperrors.MapError(err)
	}

	if name := strings.TrimSpace(input.Name); name != "" && name != project.Name {
		if _, err := s.projects.GetByName(ctx, name); err == nil {
			return nil, apperrors.NewDuplicateKey("name")
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
		project.Name = name
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		project.Description = desc
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, apperrors.MapError(err)
	}
	return project, nil
}

// Deactivate soft-deletes a project so new tickets cannot select it. Existing
// tickets keep their reference.
func (s *ProjectService) Deactivate(ctx context.Context, id string) error {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Project")
		}
		return apperrors.MapError(err)
	}
	project.IsActive = false
	if err := s.projects.Update(ctx, project); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
