package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EmployeeSignupRequest payload.
type EmployeeSignupRequest struct {
	EmployeeID  string `json:"employeeId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
}

// EmployeeLoginRequest payload.
type EmployeeLoginRequest struct {
	EmployeeID string `json:"employeeId"`
	Mobile     string `json:"mobile"`
}

// EmployeeUpdateRequest payload for admin edits.
type EmployeeUpdateRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
}

// EmployeeResponse wire shape.
type EmployeeResponse struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Mobile      string    `json:"mobile,omitempty"`
	Department  string    `json:"department,omitempty"`
	Designation string    `json:"designation,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewEmployeeResponse maps a domain employee.
func NewEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		EmployeeID:  e.EmployeeID,
		Name:        e.Name,
		Email:       e.Email,
		Mobile:      e.Mobile,
		Department:  e.Department,
		Designation: e.Designation,
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
	}
}

// NewEmployeeResponses maps an employee slice.
func NewEmployeeResponses(employees []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, NewEmployeeResponse(&employees[i]))
	}
	return out
}
