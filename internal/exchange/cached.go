package exchange

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type cachedRate struct {
	rate      decimal.Decimal
	expiresAt time.Time
}

type inFlightFetch struct {
	done chan struct{}
	rate decimal.Decimal
	err  error
}

// CachedSource wraps a RateSource with in-memory TTL caching keyed by the
// normalized "FROM->TO" pair. Concurrent misses on the same pair share one
// upstream fetch.
type CachedSource struct {
	inner RateSource
	ttl   time.Duration

	mu       sync.RWMutex
	rates    map[string]cachedRate
	inFlight map[string]*inFlightFetch
}

// NewCachedSource returns a RateSource that caches rates in memory.
func NewCachedSource(inner RateSource, ttl time.Duration) *CachedSource {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &CachedSource{
		inner:    inner,
		ttl:      ttl,
		rates:    make(map[string]cachedRate),
		inFlight: make(map[string]*inFlightFetch),
	}
}

func pairKey(from, to string) string {
	return strings.ToUpper(strings.TrimSpace(from)) + "->" + strings.ToUpper(strings.TrimSpace(to))
}

// Rate implements RateSource.
func (s *CachedSource) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	key := pairKey(from, to)
	now := time.Now()

	s.mu.RLock()
	entry, ok := s.rates[key]
	s.mu.RUnlock()
	if ok && now.Before(entry.expiresAt) {
		return entry.rate, nil
	}

	s.mu.Lock()
	// Re-check under the write lock in case another goroutine refreshed it.
	entry, ok = s.rates[key]
	if ok && now.Before(entry.expiresAt) {
		s.mu.Unlock()
		return entry.rate, nil
	}
	if ok {
		delete(s.rates, key)
	}

	if fetch, waiting := s.inFlight[key]; waiting {
		s.mu.Unlock()
		return waitForFetch(ctx, fetch)
	}

	fetch := &inFlightFetch{done: make(chan struct{})}
	s.inFlight[key] = fetch
	s.mu.Unlock()

	// Detach the fetch from a single caller's deadline so one impatient
	// caller cannot fail every concurrent waiter.
	go s.fetchAndBroadcast(context.WithoutCancel(ctx), key, from, to, fetch)
	return waitForFetch(ctx, fetch)
}

func (s *CachedSource) fetchAndBroadcast(ctx context.Context, key, from, to string, fetch *inFlightFetch) {
	rate, err := s.inner.Rate(ctx, from, to)

	s.mu.Lock()
	if err == nil {
		s.rates[key] = cachedRate{
			rate:      rate,
			expiresAt: time.Now().Add(s.ttl),
		}
	}
	fetch.rate = rate
	fetch.err = err
	delete(s.inFlight, key)
	close(fetch.done)
	s.mu.Unlock()
}

func waitForFetch(ctx context.Context, fetch *inFlightFetch) (decimal.Decimal, error) {
	select {
	case <-ctx.Done():
		return decimal.Zero, ctx.Err()
	case <-fetch.done:
		return fetch.rate, fetch.err
	}
}
