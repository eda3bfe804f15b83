package booking

import (
	"errors"
	"strings"
)

var (
	ErrInvalidGuestName = errors.New("guest name must be at least 2 characters")
	ErrMissingIdentity  = errors.New("booking identity is required")
)

// Identity is the tagged variant behind a booking: either an authenticated
// account (email from the session token) or a guest (name + verified phone).
type Identity interface {
	isIdentity()
}

type Authenticated struct {
	Email string
}

func (Authenticated) isIdentity() {}

type Guest struct {
	FullName string
	// Phone is already normalized to E.164 by the caller.
	Phone string
}

func (Guest) isIdentity() {}

// NewGuest validates the display name; phone validation happens during
// normalization before this point.
func NewGuest(fullName, phone string) (Guest, error) {
	fullName = strings.TrimSpace(fullName)
	if len(fullName) < 2 {
		return Guest{}, ErrInvalidGuestName
	}
	return Guest{FullName: fullName, Phone: phone}, nil
}
