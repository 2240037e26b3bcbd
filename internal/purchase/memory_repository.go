package purchase

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryRepository struct {
	mu        sync.RWMutex
	purchases map[string]Purchase
}

// NewMemoryRepository builds an in-memory purchase store for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{purchases: make(map[string]Purchase)}
}

func (r *memoryRepository) Create(_ context.Context, p Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purchases[p.ID] = p
	return nil
}

func (r *memoryRepository) List(_ context.Context, limit int) ([]Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Purchase, 0, len(r.purchases))
	for _, p := range r.purchases {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryRepository) Get(_ context.Context, ref string) (Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.purchases {
		if p.PurchaseID == ref {
			return p, nil
		}
	}
	return Purchase{}, ErrNotFound
}

func (r *memoryRepository) ChangedSince(_ context.Context, since time.Time) ([]Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Purchase
	for _, p := range r.purchases {
		if p.Date.After(since) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
