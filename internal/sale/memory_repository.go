package sale

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryRepository struct {
	mu    sync.RWMutex
	sales map[string]Sale
}

// NewMemoryRepository builds an in-memory sale store for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{sales: make(map[string]Sale)}
}

func (r *memoryRepository) Create(_ context.Context, s Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales[s.ID] = s
	return nil
}

func (r *memoryRepository) List(_ context.Context, limit int) ([]Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryRepository) Get(_ context.Context, ref string) (Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sales {
		if s.SaleID == ref {
			return s, nil
		}
	}
	return Sale{}, ErrNotFound
}

func (r *memoryRepository) Update(_ context.Context, s Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sales[s.ID]; !ok {
		return ErrNotFound
	}
	r.sales[s.ID] = s
	return nil
}

func (r *memoryRepository) ChangedSince(_ context.Context, since time.Time) ([]Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Sale
	for _, s := range r.sales {
		if s.Date.After(since) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
