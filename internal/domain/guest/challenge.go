package guest

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

var (
	ErrNoActiveChallenge = errors.New("no active challenge")
	ErrChallengeExpired  = errors.New("challenge expired")
	ErrCodeMismatch      = errors.New("verification code does not match")
	ErrTooManyAttempts   = errors.New("too many failed attempts")
	ErrCooldownActive    = errors.New("resend cooldown still active")
)

type ChallengeState string

const (
	// StateAwaitingCode: a code has been issued and not yet verified.
	StateAwaitingCode ChallengeState = "awaiting_code"
	// StateIdle: the challenge is consumed, either verified or locked out.
	StateIdle ChallengeState = "idle"
)

// Policy is the tunable part of the OTP round, loaded from config and
// persisted with the challenge so a running round keeps its original rules.
type Policy struct {
	CodeTTL        time.Duration `json:"code_ttl"`
	ResendCooldown time.Duration `json:"resend_cooldown"`
	MaxAttempts    int           `json:"max_attempts"`
}

// Challenge is the OTP round for one guest session: a single issued code,
// the phone it targets, attempts used and the resend timer. It is a pure
// state machine; every transition takes the current time so tests never
// sleep. Persistence between requests is the store's concern.
type Challenge struct {
	State             ChallengeState `json:"state"`
	Phone             string         `json:"phone"`
	Code              string         `json:"code"`
	Attempts          int            `json:"attempts"`
	IssuedAt          time.Time      `json:"issued_at"`
	ExpiresAt         time.Time      `json:"expires_at"`
	ResendAvailableAt time.Time      `json:"resend_available_at"`
	Policy            Policy         `json:"policy"`
}

// NewChallenge issues a code for the normalized phone and starts the resend
// cooldown.
func NewChallenge(phone string, policy Policy, now time.Time) (*Challenge, error) {
	code, err := generateCode()
	if err != nil {
		return nil, err
	}

	return &Challenge{
		State:             StateAwaitingCode,
		Phone:             phone,
		Code:              code,
		Attempts:          0,
		IssuedAt:          now,
		ExpiresAt:         now.Add(policy.CodeTTL),
		ResendAvailableAt: now.Add(policy.ResendCooldown),
		Policy:            policy,
	}, nil
}

// Verify checks a candidate code. Success consumes the challenge; the caller
// must then save the verification record. A wrong code burns one attempt,
// and the challenge locks after Policy.MaxAttempts wrong codes — the
// original product allowed unlimited retries of a 6-digit code, which is a
// brute-force hole, so the cap is intentional.
func (c *Challenge) Verify(candidate string, now time.Time) error {
	if c.State != StateAwaitingCode {
		return ErrNoActiveChallenge
	}
	if now.After(c.ExpiresAt) {
		c.State = StateIdle
		return ErrChallengeExpired
	}

	if candidate != c.Code {
		c.Attempts++
		if c.Attempts >= c.Policy.MaxAttempts {
			c.State = StateIdle
			return ErrTooManyAttempts
		}
		return ErrCodeMismatch
	}

	c.State = StateIdle
	return nil
}

func (c *Challenge) CanResend(now time.Time) bool {
	return !now.Before(c.ResendAvailableAt)
}

// Resend issues a fresh code for the same phone, invalidating the old one,
// and restarts the cooldown. Attempts reset with the new code.
func (c *Challenge) Resend(now time.Time) error {
	if !c.CanResend(now) {
		return ErrCooldownActive
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	c.State = StateAwaitingCode
	c.Code = code
	c.Attempts = 0
	c.IssuedAt = now
	c.ExpiresAt = now.Add(c.Policy.CodeTTL)
	c.ResendAvailableAt = now.Add(c.Policy.ResendCooldown)
	return nil
}

// RetryAfter reports how long until resend is allowed, floored at zero.
func (c *Challenge) RetryAfter(now time.Time) time.Duration {
	d := c.ResendAvailableAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

var codeSpace = big.NewInt(1000000)

// generateCode draws a uniform 6-digit decimal code. rand.Int rejects draws
// outside the range, so no residue class is favored the way a plain modulo
// would. Leading zeros are legal; the result is always exactly 6 characters.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
