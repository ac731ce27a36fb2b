package profile

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"support-widget/internal/domain"
)

// DefaultCacheTTL is how long loaded client text is reused.
const DefaultCacheTTL = 5 * time.Minute

// Source reads raw client text. Missing text is returned as "" with a nil
// error; an error means the source could not be read at all.
type Source interface {
	Fetch(ctx context.Context, clientID string) (faq, tone string, err error)
}

type cacheEntry struct {
	profile domain.ClientProfile
	expires time.Time
}

// Loader caches client profiles from a Source. Load never fails: unreadable
// or missing FAQ text becomes the placeholder and missing tone becomes "".
type Loader struct {
	src    Source
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

func NewLoader(src Source, ttl time.Duration, logger *slog.Logger) *Loader {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		src:    src,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
		cache:  make(map[string]cacheEntry),
	}
}

func (l *Loader) Load(ctx context.Context, clientID string) domain.ClientProfile {
	now := l.now()

	l.mu.RLock()
	entry, ok := l.cache[clientID]
	l.mu.RUnlock()
	if ok && now.Before(entry.expires) {
		return entry.profile
	}

	faq, tone, err := l.src.Fetch(ctx, clientID)
	if err != nil {
		// Not cached, so the next request retries.
		l.logger.Warn("load client profile failed", "client_id", clientID, "error", err)
		return domain.ClientProfile{ClientID: clientID, FAQ: domain.MissingFAQText}
	}

	p := domain.ClientProfile{ClientID: clientID, FAQ: faq, Tone: tone}
	if strings.TrimSpace(p.FAQ) == "" {
		p.FAQ = domain.MissingFAQText
	}

	l.mu.Lock()
	l.cache[clientID] = cacheEntry{profile: p, expires: now.Add(l.ttl)}
	l.mu.Unlock()
	return p
}
