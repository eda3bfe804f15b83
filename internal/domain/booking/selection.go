package booking

import (
	"errors"
	"time"
)

var (
	ErrPastDate       = errors.New("booking date cannot be in the past")
	ErrNoSlotSelected = errors.New("no time slot selected")
	ErrEmptySlotLabel = errors.New("slot label cannot be empty")
)

const (
	MinPartySize     = 1
	MaxPartySize     = 12
	DefaultPartySize = 2
)

// Selection tracks the diner's in-progress choice of date, time slot and
// party size for one restaurant-detail view. Confirming is gated on a slot
// being chosen; date and party size always hold a usable value.
type Selection struct {
	date      time.Time // midnight, date component only
	slot      string    // published slot label, "" when none chosen
	partySize int
}

// NewSelection starts a fresh selection: today, no slot, party of two.
func NewSelection(now time.Time) *Selection {
	return &Selection{
		date:      truncateToDate(now),
		slot:      "",
		partySize: DefaultPartySize,
	}
}

// ChooseDate replaces the chosen date. Dates before today are rejected;
// restaurant operating hours are not checked here, they live in catalog data.
func (s *Selection) ChooseDate(date, now time.Time) error {
	// "today" is judged on the caller's offset, otherwise a client a few
	// hours ahead of server time gets its own today rejected as past.
	d := truncateToDate(date)
	if d.Before(truncateToDate(now.In(date.Location()))) {
		return ErrPastDate
	}
	s.date = d
	return nil
}

// ChooseSlot toggles: picking the already-selected label deselects it,
// picking a different label replaces it.
func (s *Selection) ChooseSlot(label string) error {
	if label == "" {
		return ErrEmptySlotLabel
	}
	if s.slot == label {
		s.slot = ""
		return nil
	}
	s.slot = label
	return nil
}

// SetGuests clamps silently to [MinPartySize, MaxPartySize]; there is no
// error path, mirroring the +/- stepper it backs.
func (s *Selection) SetGuests(n int) {
	if n < MinPartySize {
		n = MinPartySize
	}
	if n > MaxPartySize {
		n = MaxPartySize
	}
	s.partySize = n
}

func (s *Selection) CanConfirm() bool {
	return s.slot != ""
}

// Reset returns the selection to its initial state, used after a successful
// booking write.
func (s *Selection) Reset(now time.Time) {
	*s = *NewSelection(now)
}

func (s *Selection) Date() time.Time { return s.date }
func (s *Selection) Slot() string    { return s.slot }
func (s *Selection) PartySize() int  { return s.partySize }

// ReconstructSelection rebuilds a selection from request data so the confirm
// gate and clamping are enforced server-side, not only in the client UI.
func ReconstructSelection(date time.Time, slot string, partySize int, now time.Time) (*Selection, error) {
	s := NewSelection(now)
	if err := s.ChooseDate(date, now); err != nil {
		return nil, err
	}
	if slot != "" {
		if err := s.ChooseSlot(slot); err != nil {
			return nil, err
		}
	}
	s.SetGuests(partySize)
	return s, nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
