package domain

import "time"

// Employee is the identity of a ticket submitter. Records are created on first
// ticket submission if absent, or via self-signup/admin creation. Employees
// are never hard-deleted, only deactivated.
type Employee struct {
	ID          string
	EmployeeID  string
	Name        string
	Email       string
	Mobile      string
	Department  string
	Designation string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
