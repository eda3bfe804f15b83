package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type BookingView struct {
	ID             uuid.UUID `json:"id"`
	RestaurantID   uuid.UUID `json:"restaurant_id"`
	RestaurantName string    `json:"restaurant_name"`
	Date           time.Time `json:"date"`
	Slot           string    `json:"slot"`
	Guests         int32     `json:"guests"`
	Email          *string   `json:"email,omitempty"`
	GuestName      *string   `json:"guest_name,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	IsGuest        bool      `json:"is_guest"`
	CreatedAt      time.Time `json:"created_at"`
}

type BookingListItem struct {
	ID             uuid.UUID `json:"id"`
	RestaurantName string    `json:"restaurant_name"`
	Date           time.Time `json:"date"`
	Slot           string    `json:"slot"`
	Guests         int32     `json:"guests"`
	CreatedAt      time.Time `json:"created_at"`
}

type BookingQueries interface {
	// GetByID serves idempotent replays and the post-create read.
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// ListByEmail is the booking history of an authenticated diner.
	ListByEmail(ctx context.Context, email string) ([]*BookingListItem, error)
	// ListByPhone is the history of a guest's verified phone.
	ListByPhone(ctx context.Context, phone string) ([]*BookingListItem, error)
}
