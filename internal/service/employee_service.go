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

// EmployeeService covers self-service signup/login and the admin-side
// employee directory.
type EmployeeService struct {
	employees repository.EmployeeRepository
}

// NewEmployeeService creates the service.
func NewEmployeeService(employees repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employees: employees}
}

// EmployeeInput carries employee fields for signup and admin create/update.
type EmployeeInput struct {
	EmployeeID  string
	Name        string
	Email       string
	Mobile      string
	Department  string
	Designation string
}

// Signup registers an employee for the portal.
func (s *EmployeeService) Signup(ctx context.Context, input EmployeeInput) (*domain.Employee, error) {
	var missing []string
	if strings.TrimSpace(input.EmployeeID) == "" {
		missing = append(missing, "employeeId is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name is required")
	}
	if strings.TrimSpace(input.Mobile) == "" {
		missing = append(missing, "mobile is required")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError(missing...)
	}

	employeeID := strings.TrimSpace(input.EmployeeID)
	if _, err := s.employees.GetByEmployeeID(ctx, employeeID); err == nil {
		return nil, apperrors.NewDuplicateKey("employeeId")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email != "" {
		if _, err := s.employees.GetByEmail(ctx, email); err == nil {
			return nil, apperrors.NewDuplicateKey("email")
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
	}

	employee := &domain.Employee{
		EmployeeID:  employeeID,
		Name:        strings.TrimSpace(input.Name),
		Email:       email,
		Mobile:      strings.TrimSpace(input.Mobile),
		Department:  strings.TrimSpace(input.Department),
		Designation: strings.TrimSpace(input.Designation),
		IsActive:    true,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, apperrors.MapError(err)
	}
	return employee, nil
}

// Login authenticates an employee by employee ID and registered mobile.
func (s *EmployeeService) Login(ctx context.Context, employeeID, mobile string) (*domain.Employee, error) {
	employee, err := s.employees.GetByEmployeeID(ctx, strings.TrimSpace(employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Employee")
		}
		return nil, apperrors.MapError(err)
	}
	if !employee.IsActive {
		return nil, apperrors.NewNotFound("Employee")
	}
	if employee.Mobile != strings.TrimSpace(mobile) {
		return nil, apperrors.NewUnauthorized("Invalid mobile number")
	}
	return employee, nil
}

// Get returns an employee by its business ID.
func (s *EmployeeService) Get(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employees.GetByEmployeeID(ctx, strings.TrimSpace(employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Employee")
		}
		return nil, apperrors.MapError(err)
	}
	return employee, nil
}

// List returns the employee directory.
func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return employees, nil
}

// Update edits an employee record by its row ID.
func (s *EmployeeService) Update(ctx context.Context, id string, input EmployeeInput) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Employee")
		}
		return nil, apperrors.MapError(err)
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		employee.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(input.Email)); email != "" {
		employee.Email = email
	}
	if mobile := strings.TrimSpace(input.Mobile); mobile != "" {
		employee.Mobile = mobile
	}
	if dept := strings.TrimSpace(input.Department); dept != "" {
		employee.Department = dept
	}
	if desig := strings.TrimSpace(input.Designation); desig != "" {
		employee.Designation = desig
	}

	if err := s.employees.Update(ctx, employee); err != nil {
		return nil, apperrors.MapError(err)
	}
	return employee, nil
}

// Deactivate soft-deletes an employee.
func (s *EmployeeService) Deactivate(ctx context.Context, id string) error {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Employee")
		}
		return apperrors.MapError(err)
	}
	employee.IsActive = false
	if err := s.employees.Update(ctx, employee); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
