package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type memoryEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryStore keeps one token bucket per key in process memory.
// State is lost on restart and is not shared between instances.
type MemoryStore struct {
	limit Limit
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]*memoryEntry

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore creates a store and starts a janitor that evicts idle keys
// every sweep interval. Call Stop to release the janitor.
func NewMemoryStore(limit Limit, sweep time.Duration) *MemoryStore {
	s := &MemoryStore{
		limit:   limit.normalized(),
		now:     time.Now,
		entries: make(map[string]*memoryEntry),
		stop:    make(chan struct{}),
	}
	if sweep <= 0 {
		sweep = s.limit.Window
	}
	go s.janitor(sweep)
	return s
}

// Allow consumes one token from key's bucket
func (s *MemoryStore) Allow(_ context.Context, key string) (*Result, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		every := s.limit.Window / time.Duration(s.limit.Requests)
		e = &memoryEntry{limiter: rate.NewLimiter(rate.Every(every), s.limit.Requests)}
		s.entries[key] = e
	}
	e.lastSeen = now

	if e.limiter.AllowN(now, 1) {
		return &Result{
			Allowed:   true,
			Remaining: int(math.Floor(e.limiter.TokensAt(now))),
		}, nil
	}

	missing := 1 - e.limiter.TokensAt(now)
	retry := time.Duration(missing / float64(e.limiter.Limit()) * float64(time.Second))
	if retry < time.Second {
		retry = time.Second
	}
	return &Result{Allowed: false, RetryAfter: retry}, nil
}

// Len reports the number of tracked keys
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Stop terminates the janitor goroutine
func (s *MemoryStore) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *MemoryStore) janitor(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	cutoff := s.now().Add(-s.limit.Window)

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, key)
		}
	}
}
