package cache

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/finlabs/pkg/repository"
)

// MemoryGuard implements repository.Guard in process memory. It only
// deduplicates within one warm Lambda container.
type MemoryGuard struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryGuard(ttl time.Duration) *MemoryGuard {
	if ttl <= 0 {
		ttl = repository.GuardTTL
	}
	return &MemoryGuard{ttl: ttl, entries: make(map[string]time.Time), now: time.Now}
}

func (g *MemoryGuard) Seen(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if exp, ok := g.entries[key]; ok && now.Before(exp) {
		return true, nil
	}
	g.entries[key] = now.Add(g.ttl)
	g.evict(now)
	return false, nil
}

func (g *MemoryGuard) Forget(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.entries, key)
	return nil
}

func (g *MemoryGuard) evict(now time.Time) {
	for k, exp := range g.entries {
		if !now.Before(exp) {
			delete(g.entries, k)
		}
	}
}

var _ repository.Guard = (*MemoryGuard)(nil)
