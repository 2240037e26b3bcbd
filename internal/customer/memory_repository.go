package customer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

type memoryRepository struct {
	mu        sync.RWMutex
	customers map[string]Customer
	seq       int64
}

// NewMemoryRepository builds an in-memory customer store for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{customers: make(map[string]Customer)}
}

func (r *memoryRepository) Create(_ context.Context, c Customer) (Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.customers {
		if existing.Phone == c.Phone {
			return Customer{}, ErrPhoneExists
		}
	}
	r.seq++
	c.UID = fmt.Sprintf("CU-%04d", r.seq)
	r.customers[c.ID] = c
	return c, nil
}

func (r *memoryRepository) List(_ context.Context) ([]Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepository) Resolve(_ context.Context, ref string) (Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.CustomerID == ref || c.UID == ref || c.Name == ref {
			return c, nil
		}
	}
	return Customer{}, ErrNotFound
}

func (r *memoryRepository) Update(_ context.Context, c Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[c.ID]; !ok {
		return ErrNotFound
	}
	r.customers[c.ID] = c
	return nil
}

func (r *memoryRepository) ChangedSince(_ context.Context, since time.Time) ([]Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Customer
	for _, c := range r.customers {
		if c.CreatedAt.After(since) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
