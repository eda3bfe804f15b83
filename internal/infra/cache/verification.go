package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"dinetime-api/internal/domain/guest"
	"dinetime-api/internal/infra"
	"dinetime-api/internal/pkg/clock"
	"dinetime-api/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

const verificationKeyPrefix = "guest:verified:"

// VerificationStore holds the single per-session verification record with the
// 24h window enforced twice: a Redis TTL and the record's own timestamp.
type VerificationStore struct {
	client *redis.Client
	cfg    config.GuestConfig
	clock  clock.Clock
}

func NewVerificationStore(client *redis.Client, cfg config.GuestConfig, clock clock.Clock) *VerificationStore {
	return &VerificationStore{client: client, cfg: cfg, clock: clock}
}

func verificationKey(sessionID string) string {
	return verificationKeyPrefix + sessionID
}

// IsVerified fails closed: any store or decode error reads as "not verified"
// and at worst costs the guest one extra OTP round.
func (s *VerificationStore) IsVerified(ctx context.Context, sessionID, phone string) bool {
	raw, err := s.client.Get(ctx, verificationKey(sessionID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("verification lookup failed", "error", err)
		}
		return false
	}

	var rec guest.VerificationRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		slog.Warn("corrupt verification record", "error", err)
		return false
	}

	return rec.Covers(phone, s.clock.Now(), s.cfg.VerificationTTL)
}

func (s *VerificationStore) Save(ctx context.Context, sessionID, phone string) error {
	rec := guest.NewVerificationRecord(phone, s.clock.Now())
	raw, err := json.Marshal(rec)
	if err != nil {
		return infra.WrapRepoErr("failed to encode verification record", err, infra.KindCacheFailure)
	}

	if err := s.client.Set(ctx, verificationKey(sessionID), raw, s.cfg.VerificationTTL).Err(); err != nil {
		return infra.WrapRepoErr("failed to save verification record", err, infra.KindCacheFailure)
	}
	return nil
}

func (s *VerificationStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, verificationKey(sessionID)).Err(); err != nil {
		return infra.WrapRepoErr("failed to clear verification record", err, infra.KindCacheFailure)
	}
	return nil
}
