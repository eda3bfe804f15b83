package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateBookingRequest carries a finished slot selection. The guest fields
// are set only for unauthenticated bookings; authenticated callers are
// identified by their token.
type CreateBookingRequest struct {
	RestaurantID uuid.UUID `json:"restaurant_id" binding:"required"`
	Date         time.Time `json:"date" binding:"required"`
	Slot         string    `json:"slot" binding:"required"`
	Guests       int       `json:"guests" binding:"required"`

	GuestName    *string `json:"guest_name,omitempty"`
	MobileNumber *string `json:"mobile_number,omitempty"`
}

func (r CreateBookingRequest) GetGuestName() string {
	if r.GuestName == nil {
		return ""
	}
	return strings.TrimSpace(*r.GuestName)
}

func (r CreateBookingRequest) GetMobileNumber() string {
	if r.MobileNumber == nil {
		return ""
	}
	return strings.TrimSpace(*r.MobileNumber)
}
