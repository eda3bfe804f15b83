package response

import (
	"time"

	"dinetime-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
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

type BookingListResponse struct {
	ID             uuid.UUID `json:"id"`
	RestaurantName string    `json:"restaurant_name"`
	Date           time.Time `json:"date"`
	Slot           string    `json:"slot"`
	Guests         int32     `json:"guests"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	var resp BookingListResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}
