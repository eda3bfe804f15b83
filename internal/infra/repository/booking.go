package repository

import (
	"context"
	"errors"

	"dinetime-api/internal/domain/booking"
	"dinetime-api/internal/infra"
	"dinetime-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create runs inside the submit transaction so the booking row and its
// idempotency completion commit together.
func (r *BookingRepository) Create(ctx context.Context, tx pgx.Tx, b *booking.Booking) (uuid.UUID, error) {
	var email, guestName, phone *string
	if b.IsGuest() {
		gn, ph := b.GuestName(), b.Phone()
		guestName, phone = &gn, &ph
	} else {
		em := b.Email()
		email = &em
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO bookings (id, restaurant_id, date, slot, guests, email, guest_name, phone, is_guest, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`,
		b.ID(), b.RestaurantID(), b.Date(), b.Slot(), b.Guests(), email, guestName, phone, b.IsGuest(),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return b.ID(), nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var view queries.BookingView
	err := r.db.QueryRow(ctx, `
		SELECT b.id, b.restaurant_id, r.name, b.date, b.slot, b.guests,
		       b.email, b.guest_name, b.phone, b.is_guest, b.created_at
		FROM bookings b
		JOIN restaurants r ON r.id = b.restaurant_id
		WHERE b.id = $1`,
		id,
	).Scan(
		&view.ID, &view.RestaurantID, &view.RestaurantName, &view.Date, &view.Slot, &view.Guests,
		&view.Email, &view.GuestName, &view.Phone, &view.IsGuest, &view.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return &view, nil
}

func (r *BookingRepository) ListByEmail(ctx context.Context, email string) ([]*queries.BookingListItem, error) {
	return r.list(ctx, `b.email = $1`, email)
}

func (r *BookingRepository) ListByPhone(ctx context.Context, phone string) ([]*queries.BookingListItem, error) {
	return r.list(ctx, `b.phone = $1`, phone)
}

func (r *BookingRepository) list(ctx context.Context, where string, arg any) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, r.name, b.date, b.slot, b.guests, b.created_at
		FROM bookings b
		JOIN restaurants r ON r.id = b.restaurant_id
		WHERE `+where+`
		ORDER BY b.created_at DESC`,
		arg,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	items := make([]*queries.BookingListItem, 0)
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(&item.ID, &item.RestaurantName, &item.Date, &item.Slot, &item.Guests, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return items, nil
}
