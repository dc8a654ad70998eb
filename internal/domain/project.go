package domain

import "time"

// ProjectNoneSentinel is the well-known "no project" value the employee portal
// submits when the project dropdown is left empty.
const ProjectNoneSentinel = "000000000000000000000000"

// Project is an optional categorization bucket tickets may reference.
type Project struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
