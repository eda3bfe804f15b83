package repository

import (
	"context"
	"time"

	"dinetime-api/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateJob enqueues a delivery job in the same transaction as the write it
// announces, so a committed booking always has its notification row.
func (r *NotificationRepository) CreateJob(ctx context.Context, tx pgx.Tx, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO notification_jobs (id, kind, topic, payload, run_at, created_at)
		VALUES ($1, $2, $3, $4, $5, now())`,
		uuid.New(), kind, topic, payload, runAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}
