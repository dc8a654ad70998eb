package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// AnnouncementRepository defines persistence access for announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *domain.Announcement) error
	Update(ctx context.Context, announcement *domain.Announcement) error
	GetByID(ctx context.Context, id string) (*domain.Announcement, error)
	ListActive(ctx context.Context, limit int) ([]domain.Announcement, error)
}

type announcementRepository struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository returns a Postgres-backed implementation.
func NewAnnouncementRepository(pool *pgxpool.Pool) AnnouncementRepository {
	return &announcementRepository{pool: pool}
}

const announcementColumns = `id, title, message, priority, is_active, created_by, created_by_name, created_at, updated_at`

func (r *announcementRepository) Create(ctx context.Context, announcement *domain.Announcement) error {
	const query = `
        INSERT INTO announcements (title, message, priority, is_active, created_by, created_by_name)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		announcement.Title,
		announcement.Message,
		announcement.Priority,
		announcement.IsActive,
		announcement.CreatedBy,
		announcement.CreatedByName,
	).Scan(&announcement.ID, &announcement.CreatedAt, &announcement.UpdatedAt)
}

func (r *announcementRepository) Update(ctx context.Context, announcement *domain.Announcement) error {
	const query = `
        UPDATE announcements SET title=$1, message=$2, priority=$3, is_active=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		announcement.Title,
		announcement.Message,
		announcement.Priority,
		announcement.IsActive,
		announcement.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *announcementRepository) GetByID(ctx context.Context, id string) (*domain.Announcement, error) {
	var announcement domain.Announcement
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id=$1`
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&announcement.ID,
		&announcement.Title,
		&announcement.Message,
		&announcement.Priority,
		&announcement.IsActive,
		&announcement.CreatedBy,
		&announcement.CreatedByName,
		&announcement.CreatedAt,
		&announcement.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *announcementRepository) ListActive(ctx context.Context, limit int) ([]domain.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements
        WHERE is_active=TRUE ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Announcement
	for rows.Next() {
		var announcement domain.Announcement
		if err := rows.Scan(
			&announcement.ID,
			&announcement.Title,
			&announcement.Message,
			&announcement.Priority,
			&announcement.IsActive,
			&announcement.CreatedBy,
			&announcement.CreatedByName,
			&announcement.CreatedAt,
			&announcement.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, announcement)
	}
	return result, rows.Err()
}
