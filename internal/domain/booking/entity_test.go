//go:build unit

package booking_test

import (
	"testing"

	"dinetime-api/internal/domain/booking"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmableSelection(t *testing.T) *booking.Selection {
	t.Helper()
	sel := booking.NewSelection(now)
	require.NoError(t, sel.ChooseSlot("7:00 PM"))
	sel.SetGuests(4)
	return sel
}

func TestNewBooking(t *testing.T) {
	restaurantID := uuid.New()

	t.Run("authenticated identity tags the record with the email", func(t *testing.T) {
		b, err := booking.NewBooking(confirmableSelection(t), booking.Authenticated{Email: "a@b.com"}, restaurantID, "Spice Route")
		require.NoError(t, err)

		assert.Equal(t, "a@b.com", b.Email())
		assert.False(t, b.IsGuest())
		assert.Empty(t, b.Phone())
		assert.Equal(t, "Spice Route", b.RestaurantName())
		assert.Equal(t, "7:00 PM", b.Slot())
		assert.Equal(t, 4, b.Guests())
	})

	t.Run("guest identity tags the record as guest", func(t *testing.T) {
		g, err := booking.NewGuest("Priya Sharma", "+919876543210")
		require.NoError(t, err)

		b, err := booking.NewBooking(confirmableSelection(t), g, restaurantID, "Spice Route")
		require.NoError(t, err)

		assert.True(t, b.IsGuest())
		assert.Equal(t, "Priya Sharma", b.GuestName())
		assert.Equal(t, "+919876543210", b.Phone())
		assert.Empty(t, b.Email())
	})

	t.Run("unconfirmable selection is rejected", func(t *testing.T) {
		sel := booking.NewSelection(now)
		_, err := booking.NewBooking(sel, booking.Authenticated{Email: "a@b.com"}, restaurantID, "Spice Route")
		assert.ErrorIs(t, err, booking.ErrNoSlotSelected)
	})

	t.Run("nil selection is rejected", func(t *testing.T) {
		_, err := booking.NewBooking(nil, booking.Authenticated{Email: "a@b.com"}, restaurantID, "Spice Route")
		assert.ErrorIs(t, err, booking.ErrNoSlotSelected)
	})
}

func TestReconstructBooking(t *testing.T) {
	restaurantID := uuid.New()

	b, err := booking.NewBooking(confirmableSelection(t), booking.Authenticated{Email: "a@b.com"}, restaurantID, "Spice Route")
	require.NoError(t, err)

	rebuilt := booking.ReconstructBooking(
		b.ID(), b.RestaurantID(), b.RestaurantName(),
		b.Date(), b.Slot(), b.Guests(),
		b.Email(), b.GuestName(), b.Phone(), b.IsGuest(),
		b.CreatedAt(),
	)

	if diff := cmp.Diff(b, rebuilt, cmp.AllowUnexported(booking.Booking{})); diff != "" {
		t.Errorf("reconstructed booking mismatch (-want +got):\n%s", diff)
	}
}

func TestNewGuest(t *testing.T) {
	t.Run("name is trimmed", func(t *testing.T) {
		g, err := booking.NewGuest("  Priya  ", "+919876543210")
		require.NoError(t, err)
		assert.Equal(t, "Priya", g.FullName)
	})

	t.Run("short name fails", func(t *testing.T) {
		_, err := booking.NewGuest("P", "+919876543210")
		assert.ErrorIs(t, err, booking.ErrInvalidGuestName)
	})
}
