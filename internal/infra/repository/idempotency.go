package repository

import (
	"context"
	"errors"
	"time"

	"dinetime-api/internal/infra"
	"dinetime-api/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IdempotencyRepository struct {
	db *pgxpool.Pool
}

func NewIdempotencyRepository(db *pgxpool.Pool) *IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

// TryInsert claims the key for this subject. A concurrent or repeated claim
// is not an error here; the caller reads the row back and decides from its
// status.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key uuid.UUID, subject, endpoint, requestHash string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO idempotency_keys (key, subject, endpoint, request_hash, status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, 'processing', $5, now())
		ON CONFLICT (key, subject) DO NOTHING`,
		key, subject, endpoint, requestHash, expiresAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key uuid.UUID, subject string) (*commands.IdempotencyRecord, error) {
	var rec commands.IdempotencyRecord
	err := r.db.QueryRow(ctx, `
		SELECT key, subject, status, request_hash, result_booking_id, expires_at
		FROM idempotency_keys
		WHERE key = $1 AND subject = $2`,
		key, subject,
	).Scan(&rec.Key, &rec.Subject, &rec.Status, &rec.RequestHash, &rec.ResultBookingID, &rec.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	return &rec, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx pgx.Tx, key uuid.UUID, subject, responseBodyHash string, resultBookingID uuid.UUID) error {
	_, err := tx.Exec(ctx, `
		UPDATE idempotency_keys
		SET status = 'completed', response_body_hash = $3, result_booking_id = $4
		WHERE key = $1 AND subject = $2`,
		key, subject, responseBodyHash, resultBookingID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}
	return nil
}

// DeleteExpired is meant for a periodic sweep; expired keys only waste space,
// they are never replayed.
func (r *IdempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM idempotency_keys WHERE expires_at < now()`)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
