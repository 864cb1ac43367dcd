package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// AttemptLimiter throttles failed financial-secret attempts server-side,
// keyed by (actor, record). The browser keeps its own counter for UX, but
// that is trivially bypassed; this counter is the one that matters.
// Redis unavailability fails open with a warning — the secret comparison
// itself remains the authorization boundary.
type AttemptLimiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
}

func NewAttemptLimiter(rdb *redis.Client, max int, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{rdb: rdb, max: max, window: window}
}

func (l *AttemptLimiter) key(actorID uint, recordID uint) string {
	return fmt.Sprintf("licitasis:secret_attempts:%d:%d", actorID, recordID)
}

// Blocked reports whether this (actor, record) pair has exhausted its
// attempts within the cooldown window.
func (l *AttemptLimiter) Blocked(ctx context.Context, actorID, recordID uint) bool {
	n, err := l.rdb.Get(ctx, l.key(actorID, recordID)).Int()
	if err != nil && err != redis.Nil {
		log.Warn().Err(err).Msg("attempt limiter unavailable; failing open")
		return false
	}
	return n >= l.max
}

// RegisterFailure increments the counter and arms the cooldown window on the
// first failure.
func (l *AttemptLimiter) RegisterFailure(ctx context.Context, actorID, recordID uint) {
	key := l.key(actorID, recordID)
	n, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		log.Warn().Err(err).Msg("attempt limiter unavailable; failure not recorded")
		return
	}
	if n == 1 {
		l.rdb.Expire(ctx, key, l.window)
	}
}

// Reset clears the counter after a successful authorization.
func (l *AttemptLimiter) Reset(ctx context.Context, actorID, recordID uint) {
	if err := l.rdb.Del(ctx, l.key(actorID, recordID)).Err(); err != nil {
		log.Warn().Err(err).Msg("attempt limiter reset failed")
	}
}
