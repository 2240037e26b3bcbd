package supplier

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryRepository struct {
	mu        sync.RWMutex
	suppliers map[string]Supplier
}

// NewMemoryRepository builds an in-memory supplier store for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{suppliers: make(map[string]Supplier)}
}

func (r *memoryRepository) Create(_ context.Context, s Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suppliers[s.ID] = s
	return nil
}

func (r *memoryRepository) List(_ context.Context) ([]Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepository) Resolve(_ context.Context, ref string) (Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.suppliers {
		if s.SupplierID == ref || s.Name == ref {
			return s, nil
		}
	}
	return Supplier{}, ErrNotFound
}

func (r *memoryRepository) Update(_ context.Context, s Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.suppliers[s.ID]; !ok {
		return ErrNotFound
	}
	r.suppliers[s.ID] = s
	return nil
}

func (r *memoryRepository) ChangedSince(_ context.Context, since time.Time) ([]Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Supplier
	for _, s := range r.suppliers {
		if s.CreatedAt.After(since) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
