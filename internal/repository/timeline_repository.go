package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// TimelineRepository stores the append-only audit trail. There is no update or
// delete on purpose.
type TimelineRepository interface {
	Append(ctx context.Context, entry *domain.TimelineEntry) error
	ListByTicket(ctx context.Context, ticketRef string) ([]domain.TimelineEntry, error)
}

type timelineRepository struct {
	pool *pgxpool.Pool
}

// NewTimelineRepository builds repository.
func NewTimelineRepository(pool *pgxpool.Pool) TimelineRepository {
	return &timelineRepository{pool: pool}
}

func (r *timelineRepository) Append(ctx context.Context, entry *domain.TimelineEntry) error {
	const query = `
        INSERT INTO ticket_timeline (ticket_ref, status, comment, updated_by, updated_by_name, attachments, timestamp)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		entry.TicketRef,
		entry.Status,
		entry.Comment,
		entry.UpdatedBy,
		entry.UpdatedByName,
		entry.Attachments,
		entry.Timestamp,
	).Scan(&entry.ID)
}

func (r *timelineRepository) ListByTicket(ctx context.Context, ticketRef string) ([]domain.TimelineEntry, error) {
	const query = `
        SELECT id, ticket_ref, status, comment, updated_by, updated_by_name, attachments, timestamp
        FROM ticket_timeline WHERE ticket_ref=$1 ORDER BY timestamp ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, ticketRef)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TimelineEntry
	for rows.Next() {
		var entry domain.TimelineEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketRef,
			&entry.Status,
			&entry.Comment,
			&entry.UpdatedBy,
			&entry.UpdatedByName,
			&entry.Attachments,
			&entry.Timestamp,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
