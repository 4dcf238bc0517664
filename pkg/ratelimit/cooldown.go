// Package ratelimit implements the per-client submission cooldown.
//
// The limiter is advisory throttling, not a security boundary. Entries are
// scoped to a session, so a client that drops its session cookie starts with
// a clean slate. Concurrent submissions from the same session may race; the
// last write wins. Running several server processes is only consistent when
// they share a Store such as Redis.
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Store keeps the last accepted submission time per key.
type Store interface {
	Get(ctx context.Context, key string) (time.Time, bool, error)
	Set(ctx context.Context, key string, at time.Time) error
}

// Decision is the outcome of a cooldown check. RetryAfter is in whole
// seconds and only set when Allowed is false.
type Decision struct {
	Allowed    bool
	RetryAfter int
}

type Limiter struct {
	store Store
}

func NewLimiter(store Store) *Limiter {
	return &Limiter{store: store}
}

// Key builds the store key for a purpose ("contact_form", "newsletter") and
// client inside a session.
func Key(sessionID, purpose, clientID string) string {
	return fmt.Sprintf("session:%s:%s_%s", sessionID, purpose, HashClient(clientID))
}

// HashClient returns a stable, non-reversible identifier for a client address.
func HashClient(clientID string) string {
	sum := sha256.Sum256([]byte(clientID))
	return hex.EncodeToString(sum[:])
}

// Check reports whether a submission at now is outside the cooldown window of
// the last accepted one. It does not modify the store.
func (l *Limiter) Check(ctx context.Context, key string, cooldown time.Duration, now time.Time) (Decision, error) {
	last, ok, err := l.store.Get(ctx, key)
	if err != nil {
		return Decision{Allowed: true}, fmt.Errorf("ratelimit: read %s: %w", key, err)
	}
	if !ok {
		return Decision{Allowed: true}, nil
	}

	window := int64(cooldown / time.Second)
	elapsed := now.Unix() - last.Unix()
	if elapsed >= window {
		return Decision{Allowed: true}, nil
	}
	return Decision{Allowed: false, RetryAfter: int(window - elapsed)}, nil
}

// Record marks now as the last accepted submission for key.
func (l *Limiter) Record(ctx context.Context, key string, now time.Time) error {
	if err := l.store.Set(ctx, key, now); err != nil {
		return fmt.Errorf("ratelimit: write %s: %w", key, err)
	}
	return nil
}

// CheckAndRecord records now when the check passes. A rejected call leaves
// the stored time untouched.
func (l *Limiter) CheckAndRecord(ctx context.Context, key string, cooldown time.Duration, now time.Time) (Decision, error) {
	d, err := l.Check(ctx, key, cooldown, now)
	if err != nil || !d.Allowed {
		return d, err
	}
	return d, l.Record(ctx, key, now)
}
