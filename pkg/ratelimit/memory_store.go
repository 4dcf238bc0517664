package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps entries in process memory. Entries older than maxAge are
// removed by a background sweep, mirroring session expiry.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	maxAge  time.Duration
}

// NewMemoryStore starts a sweeper that runs until ctx is done. A zero maxAge
// disables sweeping.
func NewMemoryStore(ctx context.Context, maxAge time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]time.Time),
		maxAge:  maxAge,
	}
	if maxAge > 0 {
		go s.sweepLoop(ctx)
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.entries[key]
	return at, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, at time.Time) error {
	s.mu.Lock()
	s.entries[key] = at
	s.mu.Unlock()
	return nil
}

// Sweep drops entries last written before cutoff and returns how many.
func (s *MemoryStore) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for k, at := range s.entries {
		if at.Before(cutoff) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now.Add(-s.maxAge))
		}
	}
}
