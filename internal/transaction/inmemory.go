package transaction

import (
	"context"
	"sort"
	"sync"
	"time"
)

type inMemoryLog struct {
	mu      sync.RWMutex
	entries []Transaction
}

// NewInMemory creates a concurrency-safe in-memory transaction log useful for
// development and unit tests.
func NewInMemory() Log {
	return &inMemoryLog{}
}

func (l *inMemoryLog) Record(_ context.Context, t Transaction) error {
	if t.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, t)
	return nil
}

func (l *inMemoryLog) ListSince(_ context.Context, since time.Time) ([]Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Transaction
	for _, t := range l.entries {
		if t.Date.After(since) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (l *inMemoryLog) ListByRelated(_ context.Context, relatedType, relatedID string) ([]Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Transaction
	for _, t := range l.entries {
		if t.RelatedType == relatedType && t.RelatedID == relatedID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
