package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dinetime-api/internal/domain/guest"
	reqdto "dinetime-api/internal/handler/dto/request"
	"dinetime-api/internal/pkg/clock"
	"dinetime-api/internal/pkg/config"
	"dinetime-api/internal/pkg/errs"
	"dinetime-api/internal/pkg/phone"
)

var (
	ErrInvalidPhone      = errs.New("invalid phone number")
	ErrNoActiveChallenge = errs.New("no active verification challenge")
	ErrCodeDelivery      = errs.New("failed to deliver verification code")
)

// ChallengeInfo is what the client needs to drive the OTP screen.
type ChallengeInfo struct {
	Phone             string
	AlreadyVerified   bool
	ResendAvailableAt time.Time
	// DisclosedCode is set only when GUEST_OTP_DISCLOSE is on: a development
	// stand-in for SMS delivery, never enabled in production.
	DisclosedCode string
}

type GuestCommands interface {
	RequestCode(ctx context.Context, sessionID string, req reqdto.RequestCodeRequest) (*ChallengeInfo, error)
	VerifyCode(ctx context.Context, sessionID, code string) error
	ResendCode(ctx context.Context, sessionID string) (*ChallengeInfo, error)
}

type guestCommandsImpl struct {
	challenges ChallengeStore
	cache      VerificationCache
	sender     CodeSender
	cfg        config.GuestConfig
	clock      clock.Clock
}

func NewGuestCommands(
	challenges ChallengeStore,
	cache VerificationCache,
	sender CodeSender,
	cfg config.GuestConfig,
	clock clock.Clock,
) GuestCommands {
	return &guestCommandsImpl{
		challenges: challenges,
		cache:      cache,
		sender:     sender,
		cfg:        cfg,
		clock:      clock,
	}
}

func (g *guestCommandsImpl) policy() guest.Policy {
	return guest.Policy{
		CodeTTL:        g.cfg.CodeTTL,
		ResendCooldown: g.cfg.ResendCooldown,
		MaxAttempts:    g.cfg.MaxAttempts,
	}
}

// RequestCode starts (or short-circuits) the OTP round for a guest booking.
// A phone still covered by the 24h verification cache skips the round
// entirely; otherwise a fresh challenge replaces any previous one for the
// session, subject to the resend cooldown.
func (g *guestCommandsImpl) RequestCode(ctx context.Context, sessionID string, req reqdto.RequestCodeRequest) (*ChallengeInfo, error) {
	normalized, err := phone.Normalize(req.MobileNumber, g.cfg.DefaultRegion)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidPhone)
	}

	now := g.clock.Now()

	if g.cache.IsVerified(ctx, sessionID, normalized) {
		return &ChallengeInfo{Phone: normalized, AlreadyVerified: true}, nil
	}

	// Re-requesting while a challenge is live counts as a resend for
	// cooldown purposes, even when the phone changed.
	if existing, getErr := g.challenges.Get(ctx, sessionID); getErr == nil && existing != nil {
		if existing.State == guest.StateAwaitingCode && !existing.CanResend(now) {
			return nil, errCooldown(existing, now)
		}
	}

	ch, err := guest.NewChallenge(normalized, g.policy(), now)
	if err != nil {
		return nil, errs.Wrap(err, "issue challenge")
	}

	if err := g.deliver(ctx, ch); err != nil {
		return nil, err
	}

	if err := g.challenges.Put(ctx, sessionID, ch); err != nil {
		return nil, errs.Wrap(err, "store challenge")
	}

	return g.challengeInfo(ch), nil
}

// VerifyCode settles the round. Success writes the verification record; a
// consumed challenge (lockout, expiry) is deleted so the next request starts
// clean.
func (g *guestCommandsImpl) VerifyCode(ctx context.Context, sessionID, code string) error {
	ch, err := g.challenges.Get(ctx, sessionID)
	if err != nil {
		return errs.Wrap(err, "load challenge")
	}
	if ch == nil {
		return ErrNoActiveChallenge
	}

	now := g.clock.Now()
	verifyErr := ch.Verify(code, now)

	switch {
	case verifyErr == nil:
		if err := g.cache.Save(ctx, sessionID, ch.Phone); err != nil {
			return errs.Wrap(err, "save verification")
		}
		if err := g.challenges.Delete(ctx, sessionID); err != nil {
			slog.Warn("failed to delete settled challenge", "error", err)
		}
		return nil

	case errors.Is(verifyErr, guest.ErrCodeMismatch):
		// persist the burned attempt
		if err := g.challenges.Put(ctx, sessionID, ch); err != nil {
			slog.Warn("failed to persist challenge attempts", "error", err)
		}
		return verifyErr

	default:
		// lockout, expiry, or no active round: the challenge is dead
		if err := g.challenges.Delete(ctx, sessionID); err != nil {
			slog.Warn("failed to delete consumed challenge", "error", err)
		}
		return verifyErr
	}
}

func (g *guestCommandsImpl) ResendCode(ctx context.Context, sessionID string) (*ChallengeInfo, error) {
	ch, err := g.challenges.Get(ctx, sessionID)
	if err != nil {
		return nil, errs.Wrap(err, "load challenge")
	}
	if ch == nil || ch.State != guest.StateAwaitingCode {
		return nil, ErrNoActiveChallenge
	}

	if err := ch.Resend(g.clock.Now()); err != nil {
		return nil, err
	}

	if err := g.deliver(ctx, ch); err != nil {
		return nil, err
	}

	if err := g.challenges.Put(ctx, sessionID, ch); err != nil {
		return nil, errs.Wrap(err, "store challenge")
	}

	return g.challengeInfo(ch), nil
}

func (g *guestCommandsImpl) deliver(ctx context.Context, ch *guest.Challenge) error {
	if g.cfg.DiscloseCode {
		// Development mode: the code is surfaced through the response
		// instead of an SMS. Do not silently drop it.
		slog.Info("guest OTP issued (disclosure mode)", "phone", ch.Phone)
		return nil
	}
	if err := g.sender.Send(ctx, ch.Phone, ch.Code); err != nil {
		return errs.Mark(err, ErrCodeDelivery)
	}
	return nil
}

func (g *guestCommandsImpl) challengeInfo(ch *guest.Challenge) *ChallengeInfo {
	info := &ChallengeInfo{
		Phone:             ch.Phone,
		ResendAvailableAt: ch.ResendAvailableAt,
	}
	if g.cfg.DiscloseCode {
		info.DisclosedCode = ch.Code
	}
	return info
}

func errCooldown(ch *guest.Challenge, now time.Time) error {
	return errs.Wrap(guest.ErrCooldownActive, "retry after "+ch.RetryAfter(now).String())
}
