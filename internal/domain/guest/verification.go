package guest

import "time"

// VerificationRecord remembers that a phone passed the OTP round. One record
// exists per guest session (single slot): a later verification overwrites it
// regardless of phone, so switching numbers always re-verifies.
type VerificationRecord struct {
	Phone      string    `json:"phone"`
	VerifiedAt time.Time `json:"verified_at"`
}

func NewVerificationRecord(phone string, now time.Time) VerificationRecord {
	return VerificationRecord{Phone: phone, VerifiedAt: now}
}

// Covers reports whether the record still vouches for the given phone: same
// normalized number and verified within the ttl window.
func (r VerificationRecord) Covers(phone string, now time.Time, ttl time.Duration) bool {
	if r.Phone == "" || r.Phone != phone {
		return false
	}
	return now.Sub(r.VerifiedAt) < ttl
}
