package commands

import (
	"context"
	"time"

	"dinetime-api/internal/domain/booking"
	"dinetime-api/internal/domain/guest"
	"dinetime-api/internal/domain/user"
	"dinetime-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Write-side snapshots prevent dependency on read-side query types.
type RestaurantSnapshot struct {
	ID    uuid.UUID
	Name  string
	Slots []string
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	Subject         string
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, tx pgx.Tx, b *booking.Booking) (uuid.UUID, error)
}

type RestaurantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RestaurantSnapshot, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	// FindByEmailWithHash returns the read model plus the stored bcrypt hash.
	FindByEmailWithHash(ctx context.Context, email string) (*queries.UserView, string, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

// IdempotencyRepository dedupes user-initiated retries of the booking
// submit. Subject is the caller identity: account email, or guest session ID.
type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key uuid.UUID, subject, endpoint, requestHash string, expiresAt time.Time) error
	Get(ctx context.Context, key uuid.UUID, subject string) (*IdempotencyRecord, error)
	UpdateStatusCompleted(ctx context.Context, tx pgx.Tx, key uuid.UUID, subject, responseBodyHash string, resultBookingID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx pgx.Tx, kind, topic string, payload []byte, runAt time.Time) error
}

// TransactionManager scopes a set of writes to one commit.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// VerificationCache is the single-slot, 24h phone verification memory keyed
// by guest session. Lookup errors read as "not verified" so a flaky store
// can only force re-verification, never skip it.
type VerificationCache interface {
	IsVerified(ctx context.Context, sessionID, phone string) bool
	Save(ctx context.Context, sessionID, phone string) error
	Clear(ctx context.Context, sessionID string) error
}

// ChallengeStore persists the in-flight OTP round between HTTP requests.
// Get returns (nil, nil) when the session has no active challenge.
type ChallengeStore interface {
	Get(ctx context.Context, sessionID string) (*guest.Challenge, error)
	Put(ctx context.Context, sessionID string, ch *guest.Challenge) error
	Delete(ctx context.Context, sessionID string) error
}

// CodeSender delivers an issued code to the guest's phone.
type CodeSender interface {
	Send(ctx context.Context, phone, code string) error
}
