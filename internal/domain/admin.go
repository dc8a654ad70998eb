package domain

import "time"

// Well-known department tags. Admins tagged with one of the support
// departments only ever see tickets whose issueType matches; any other value
// (including the generic DepartmentAdmin) sees everything.
const (
	DepartmentAdmin      = "Admin"
	DepartmentITSupport  = "IT Support"
	DepartmentERPSupport = "ERP Support"
)

// Admin models a helpdesk administrator.
type Admin struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    string
	Mobile          string
	Department      string
	IsActive        bool
	IsEmailVerified bool
	LastLogin       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SeesAllDepartments reports whether the admin is exempt from department
// partitioning.
func (a *Admin) SeesAllDepartments() bool {
	return a.Department != DepartmentITSupport && a.Department != DepartmentERPSupport
}
