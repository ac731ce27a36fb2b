package repository

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// MemoryStore keeps pending-confirmation flags in process memory. State is
// lost on restart and is not shared between instances.
type MemoryStore struct {
	mu      sync.Mutex
	pending map[string]time.Time // key -> expiry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a MemoryStore whose flags expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	return &MemoryStore{
		pending: make(map[string]time.Time),
		ttl:     ttl,
		now:     time.Now,
	}
}

// TakePending reports whether key had an unexpired pending confirmation and
// clears it in the same critical section.
func (s *MemoryStore) TakePending(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.pending[key]
	if !ok {
		return false, nil
	}
	delete(s.pending, key)
	return s.now().Before(expiry), nil
}

// ArmPending records that key is awaiting a yes/no answer.
func (s *MemoryStore) ArmPending(_ context.Context, key string) error {
	s.mu.Lock()
	s.pending[key] = s.now().Add(s.ttl)
	s.mu.Unlock()
	return nil
}

// Sweep drops expired flags and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, expiry := range s.pending {
		if !now.Before(expiry) {
			delete(s.pending, key)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is cancelled.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("state sweeper stopped")
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.Debug("expired pending confirmations removed", "count", n)
			}
		}
	}
}

func (s *MemoryStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
