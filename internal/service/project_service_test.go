package service

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func TestProjectCreate(t *testing.T) {
	repo := &fakeProjectRepo{}
	svc := NewProjectService(repo)

	project, err := svc.Create(context.Background(), ProjectInput{Name: "Payroll", Description: "HR payroll system"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !project.IsActive {
		t.Error("new project should be active")
	}

	t.Run("duplicate name rejected", func(t *testing.T) {
		_, err := svc.Create(context.Background(), ProjectInput{Name: "Payroll"})
		var domainErr *apperrors.DomainError
		if !errors.As(err, &domainErr) || domainErr.Code != "DUPLICATE_KEY" {
			t.Errorf("error = %v, want DUPLICATE_KEY", err)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := svc.Create(context.Background(), ProjectInput{Name: "   "})
		var domainErr *apperrors.DomainError
		if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 400 {
			t.Errorf("error = %v, want 400", err)
		}
	})
}

func TestProjectDeactivateHidesFromActiveList(t *testing.T) {
	repo := &fakeProjectRepo{}
	svc := NewProjectService(repo)

	project, err := svc.Create(context.Background(), ProjectInput{Name: "Payroll"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), ProjectInput{Name: "CRM"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Deactivate(context.Background(), project.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	active, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 1 || active[0].Name != "CRM" {
		t.Errorf("active = %+v, want only CRM", active)
	}

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all = %d projects, want 2", len(all))
	}
}

func TestProjectUpdateRenameChecksUniqueness(t *testing.T) {
	repo := &fakeProjectRepo{}
	svc := NewProjectService(repo)

	project, _ := svc.Create(context.Background(), ProjectInput{Name: "Payroll"})
	_, _ = svc.Create(context.Background(), ProjectInput{Name: "CRM"})

	_, err := svc.Update(context.Background(), project.ID, ProjectInput{Name: "CRM"})
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "DUPLICATE_KEY" {
		t.Errorf("error = %v, want DUPLICATE_KEY", err)
	}

	updated, err := svc.Update(context.Background(), project.ID, ProjectInput{Name: "Payroll v2"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Payroll v2" {
		t.Errorf("name = %q", updated.Name)
	}
}
