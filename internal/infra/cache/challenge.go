package cache

import (
	"context"
	"encoding/json"
	"errors"

	"dinetime-api/internal/domain/guest"
	"dinetime-api/internal/infra"

	"github.com/redis/go-redis/v9"
)

const challengeKeyPrefix = "guest:challenge:"

// ChallengeCache keeps the in-flight OTP round between requests. The Redis
// TTL tracks the code TTL so an abandoned round disappears on its own; the
// domain still checks expiry itself, the TTL is just cleanup.
type ChallengeCache struct {
	client *redis.Client
}

func NewChallengeCache(client *redis.Client) *ChallengeCache {
	return &ChallengeCache{client: client}
}

func challengeKey(sessionID string) string {
	return challengeKeyPrefix + sessionID
}

func (c *ChallengeCache) Get(ctx context.Context, sessionID string) (*guest.Challenge, error) {
	raw, err := c.client.Get(ctx, challengeKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to load challenge", err, infra.KindCacheFailure)
	}

	var ch guest.Challenge
	if err := json.Unmarshal(raw, &ch); err != nil {
		return nil, infra.WrapRepoErr("corrupt challenge record", err, infra.KindCacheFailure)
	}
	return &ch, nil
}

func (c *ChallengeCache) Put(ctx context.Context, sessionID string, ch *guest.Challenge) error {
	raw, err := json.Marshal(ch)
	if err != nil {
		return infra.WrapRepoErr("failed to encode challenge", err, infra.KindCacheFailure)
	}

	ttl := ch.Policy.CodeTTL
	if err := c.client.Set(ctx, challengeKey(sessionID), raw, ttl).Err(); err != nil {
		return infra.WrapRepoErr("failed to store challenge", err, infra.KindCacheFailure)
	}
	return nil
}

func (c *ChallengeCache) Delete(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, challengeKey(sessionID)).Err(); err != nil {
		return infra.WrapRepoErr("failed to delete challenge", err, infra.KindCacheFailure)
	}
	return nil
}
