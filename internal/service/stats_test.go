package service

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestStatisticsOverall(t *testing.T) {
	fixture := newTicketServiceFixture()
	admin := &domain.Admin{Name: "Ops"}
	_ = fixture.admins.Create(context.Background(), admin)

	for i := 0; i < 3; i++ {
		if _, _, err := fixture.service.CreateTicket(context.Background(), TicketCreateInput{
			EmployeeID: "E1", Description: "d", Priority: "High",
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	created, _, _ := fixture.service.CreateTicket(context.Background(), TicketCreateInput{
		EmployeeID: "E1", Description: "d",
	})
	status := domain.TicketStatusClosed
	if _, err := fixture.service.UpdateTicket(context.Background(), admin, created.ID, TicketUpdateInput{Status: &status}); err != nil {
		t.Fatalf("close: %v", err)
	}

	stats, err := fixture.service.Statistics(context.Background(), admin)
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}

	if stats.Overall.Total != 4 {
		t.Errorf("total = %d, want 4", stats.Overall.Total)
	}
	if stats.Overall.Open != 3 || stats.Overall.Closed != 1 {
		t.Errorf("open/closed = %d/%d, want 3/1", stats.Overall.Open, stats.Overall.Closed)
	}
	if stats.Overall.ByPriority[domain.TicketPriorityHigh] != 3 {
		t.Errorf("high priority = %d, want 3", stats.Overall.ByPriority[domain.TicketPriorityHigh])
	}
	if stats.Overall.ByPriority[domain.TicketPriorityMedium] != 1 {
		t.Errorf("medium priority = %d, want 1", stats.Overall.ByPriority[domain.TicketPriorityMedium])
	}
	// Every priority bucket is present even when zero.
	if _, ok := stats.Overall.ByPriority[domain.TicketPriorityUrgent]; !ok {
		t.Error("urgent bucket missing from byPriority")
	}
}

func TestStatisticsByProject(t *testing.T) {
	fixture := newTicketServiceFixture()
	admin := &domain.Admin{Name: "Ops"}
	_ = fixture.admins.Create(context.Background(), admin)

	project := &domain.Project{Name: "Payroll", IsActive: true}
	_ = fixture.projects.Create(context.Background(), project)

	for i := 0; i < 2; i++ {
		if _, _, err := fixture.service.CreateTicket(context.Background(), TicketCreateInput{
			EmployeeID: "E1", Description: "d", ProjectID: project.ID,
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	created, _, _ := fixture.service.CreateTicket(context.Background(), TicketCreateInput{
		EmployeeID: "E1", Description: "d", ProjectID: project.ID,
	})
	status := domain.TicketStatusResolved
	if _, err := fixture.service.UpdateTicket(context.Background(), admin, created.ID, TicketUpdateInput{Status: &status}); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	// One ticket with no project at all.
	if _, _, err := fixture.service.CreateTicket(context.Background(), TicketCreateInput{
		EmployeeID: "E1", Description: "d",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	stats, err := fixture.service.Statistics(context.Background(), admin)
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if len(stats.ByProject) != 2 {
		t.Fatalf("got %d project rows, want 2", len(stats.ByProject))
	}

	var payroll *ProjectStat
	for i := range stats.ByProject {
		if stats.ByProject[i].ProjectName == "Payroll" {
			payroll = &stats.ByProject[i]
		}
	}
	if payroll == nil {
		t.Fatal("Payroll row missing")
	}
	if payroll.Count != 3 || payroll.Open != 2 || payroll.Closed != 1 {
		t.Errorf("payroll = %+v, want count 3 open 2 closed 1", payroll)
	}
}

func TestStatisticsDaily(t *testing.T) {
	fixture := newTicketServiceFixture()
	admin := &domain.Admin{Name: "Ops"}
	_ = fixture.admins.Create(context.Background(), admin)

	// Two tickets today, one two days ago, one outside the window.
	base := fixture.now
	for i := 0; i < 2; i++ {
		if _, _, err := fixture.service.CreateTicket(context.Background(), TicketCreateInput{
			EmployeeID: "E1", Description: "d",
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	fixture.tickets.now = base.AddDate(0, 0, -2)
	if _, _, err := fixture.service.CreateTicket(context.Background(), TicketCreateInput{
		EmployeeID: "E1", Description: "d",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	fixture.tickets.now = base.AddDate(0, 0, -10)
	if _, _, err := fixture.service.CreateTicket(context.Background(), TicketCreateInput{
		EmployeeID: "E1", Description: "d",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	fixture.tickets.now = base

	stats, err := fixture.service.Statistics(context.Background(), admin)
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}

	if len(stats.Daily) != 7 {
		t.Fatalf("got %d daily buckets, want 7", len(stats.Daily))
	}
	if stats.Daily[6].Date != base.Format("Jan 2") {
		t.Errorf("last bucket = %q, want today %q", stats.Daily[6].Date, base.Format("Jan 2"))
	}
	if stats.Daily[6].Count != 2 {
		t.Errorf("today count = %d, want 2", stats.Daily[6].Count)
	}
	if stats.Daily[4].Count != 1 {
		t.Errorf("two-days-ago count = %d, want 1", stats.Daily[4].Count)
	}

	sum := 0
	for _, day := range stats.Daily {
		sum += day.Count
	}
	if sum != 3 {
		t.Errorf("window total = %d, want 3 (old ticket excluded)", sum)
	}
}

func TestStatisticsScopedByDepartment(t *testing.T) {
	fixture := newTicketServiceFixture()
	for _, issueType := range []string{"IT Support", "IT Support", "ERP Support"} {
		if _, _, err := fixture.service.CreateTicket(context.Background(), TicketCreateInput{
			EmployeeID: "E1", Description: "d", IssueType: issueType,
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	itAdmin := &domain.Admin{Department: domain.DepartmentITSupport}
	stats, err := fixture.service.Statistics(context.Background(), itAdmin)
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.Overall.Total != 2 {
		t.Errorf("IT admin total = %d, want 2", stats.Overall.Total)
	}
}

func TestDailyStatsBucketBoundaries(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 15, 23, 50, 0, 0, loc)

	// Midnight today, just before midnight, the oldest bucket's first instant,
	// and one ticket just outside the 7-day window.
	tickets := []domain.Ticket{
		{CreatedAt: time.Date(2024, 3, 15, 0, 0, 0, 0, loc)},
		{CreatedAt: time.Date(2024, 3, 14, 23, 59, 59, 0, loc)},
		{CreatedAt: time.Date(2024, 3, 9, 0, 0, 0, 0, loc)},
		{CreatedAt: time.Date(2024, 3, 8, 23, 59, 59, 0, loc)},
	}

	daily := dailyStats(tickets, now)
	if daily[6].Count != 1 {
		t.Errorf("today = %d, want 1", daily[6].Count)
	}
	if daily[5].Count != 1 {
		t.Errorf("yesterday = %d, want 1", daily[5].Count)
	}
	if daily[0].Count != 1 {
		t.Errorf("oldest bucket = %d, want 1", daily[0].Count)
	}
	if daily[0].Date != "Mar 9" {
		t.Errorf("oldest label = %q, want Mar 9", daily[0].Date)
	}
}
