package service

import (
	"context"
	"sort"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// OverallStats counts tickets by status and priority.
type OverallStats struct {
	Total       int                           `json:"total"`
	Open        int                           `json:"open"`
	UnderReview int                           `json:"underReview"`
	Assigned    int                           `json:"assigned"`
	InProgress  int                           `json:"inProgress"`
	Pending     int                           `json:"pending"`
	Resolved    int                           `json:"resolved"`
	Closed      int                           `json:"closed"`
	ByPriority  map[domain.TicketPriority]int `json:"byPriority"`
}

// ProjectStat is one row of the per-project breakdown. Open counts the
// open-like statuses, Closed the closed-like ones.
type ProjectStat struct {
	ProjectID   *string `json:"projectId"`
	ProjectName string  `json:"projectName,omitempty"`
	Count       int     `json:"count"`
	Open        int     `json:"open"`
	Closed      int     `json:"closed"`
}

// DailyStat is the ticket creation count for one calendar day.
type DailyStat struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TicketStatistics is the full stats payload.
type TicketStatistics struct {
	Overall   OverallStats  `json:"overall"`
	ByProject []ProjectStat `json:"byProject"`
	Daily     []DailyStat   `json:"daily"`
}

// Statistics aggregates the department-scoped ticket set: overall status and
// priority counts, per-project open/closed breakdown and daily creation
// counts for the trailing 7 calendar days ending today.
func (s *TicketService) Statistics(ctx context.Context, admin *domain.Admin) (*TicketStatistics, error) {
	tickets, err := s.tickets.ListByIssueType(ctx, scopeForAdmin(admin))
	if err != nil {
		return nil, err
	}

	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	projectNames := make(map[string]string, len(projects))
	for _, project := range projects {
		projectNames[project.ID] = project.Name
	}

	return &TicketStatistics{
		Overall:   overallStats(tickets),
		ByProject: projectBreakdown(tickets, projectNames),
		Daily:     dailyStats(tickets, s.now()),
	}, nil
}

func overallStats(tickets []domain.Ticket) OverallStats {
	stats := OverallStats{
		Total: len(tickets),
		ByPriority: map[domain.TicketPriority]int{
			domain.TicketPriorityLow:    0,
			domain.TicketPriorityMedium: 0,
			domain.TicketPriorityHigh:   0,
			domain.TicketPriorityUrgent: 0,
		},
	}

	for _, ticket := range tickets {
		switch ticket.Status {
		case domain.TicketStatusOpen:
			stats.Open++
		case domain.TicketStatusUnderReview:
			stats.UnderReview++
		case domain.TicketStatusAssigned:
			stats.Assigned++
		case domain.TicketStatusInProgress:
			stats.InProgress++
		case domain.TicketStatusPending:
			stats.Pending++
		case domain.TicketStatusResolved:
			stats.Resolved++
		case domain.TicketStatusClosed:
			stats.Closed++
		}
		if _, known := stats.ByPriority[ticket.Priority]; known {
			stats.ByPriority[ticket.Priority]++
		}
	}
	return stats
}

func projectBreakdown(tickets []domain.Ticket, projectNames map[string]string) []ProjectStat {
	grouped := map[string]*ProjectStat{}
	for i := range tickets {
		ticket := &tickets[i]
		key := ""
		if ticket.ProjectID != nil {
			key = *ticket.ProjectID
		}
		stat, ok := grouped[key]
		if !ok {
			stat = &ProjectStat{ProjectID: ticket.ProjectID}
			if key != "" {
				stat.ProjectName = projectNames[key]
			}
			grouped[key] = stat
		}
		stat.Count++
		if ticket.Status.OpenLike() {
			stat.Open++
		} else {
			stat.Closed++
		}
	}

	result := make([]ProjectStat, 0, len(grouped))
	for _, stat := range grouped {
		result = append(result, *stat)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ProjectName < result[j].ProjectName
	})
	return result
}

// dailyStats buckets creation times into the trailing 7 local-midnight
// windows, oldest first, ending with today.
func dailyStats(tickets []domain.Ticket, now time.Time) []DailyStat {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	result := make([]DailyStat, 0, 7)
	for i := 6; i >= 0; i-- {
		dayStart := today.AddDate(0, 0, -i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		count := 0
		for _, ticket := range tickets {
			created := ticket.CreatedAt.In(now.Location())
			if !created.Before(dayStart) && created.Before(dayEnd) {
				count++
			}
		}
		result = append(result, DailyStat{
			Date:  dayStart.Format("Jan 2"),
			Count: count,
		})
	}
	return result
}
