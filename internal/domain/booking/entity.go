package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking is one confirmed table reservation. Records are append-only; there
// is deliberately no uniqueness over (restaurant, date, slot) — the catalog
// carries no seat inventory to enforce a capacity against.
type Booking struct {
	id             uuid.UUID
	restaurantID   uuid.UUID
	restaurantName string
	date           time.Time
	slot           string
	guests         int

	// identity tag: either email is set, or the guest fields are.
	email     string
	guestName string
	phone     string
	isGuest   bool

	createdAt time.Time
}

// NewBooking confirms a selection for an identity. The selection must be
// confirmable (a slot chosen), which is the single precondition the UI gate
// is also built on.
func NewBooking(sel *Selection, identity Identity, restaurantID uuid.UUID, restaurantName string) (*Booking, error) {
	if sel == nil || !sel.CanConfirm() {
		return nil, ErrNoSlotSelected
	}

	b := &Booking{
		id:             uuid.New(),
		restaurantID:   restaurantID,
		restaurantName: restaurantName,
		date:           sel.Date(),
		slot:           sel.Slot(),
		guests:         sel.PartySize(),
	}

	switch id := identity.(type) {
	case Authenticated:
		b.email = id.Email
	case Guest:
		b.guestName = id.FullName
		b.phone = id.Phone
		b.isGuest = true
	default:
		return nil, ErrMissingIdentity
	}

	return b, nil
}

func ReconstructBooking(
	id, restaurantID uuid.UUID,
	restaurantName string,
	date time.Time,
	slot string,
	guests int,
	email, guestName, phone string,
	isGuest bool,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:             id,
		restaurantID:   restaurantID,
		restaurantName: restaurantName,
		date:           date,
		slot:           slot,
		guests:         guests,
		email:          email,
		guestName:      guestName,
		phone:          phone,
		isGuest:        isGuest,
		createdAt:      createdAt,
	}
}

func (b *Booking) ID() uuid.UUID           { return b.id }
func (b *Booking) RestaurantID() uuid.UUID { return b.restaurantID }
func (b *Booking) RestaurantName() string  { return b.restaurantName }
func (b *Booking) Date() time.Time         { return b.date }
func (b *Booking) Slot() string            { return b.slot }
func (b *Booking) Guests() int             { return b.guests }
func (b *Booking) Email() string           { return b.email }
func (b *Booking) GuestName() string       { return b.guestName }
func (b *Booking) Phone() string           { return b.phone }
func (b *Booking) IsGuest() bool           { return b.isGuest }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }
