package sync

import (
	"errors"
	"fmt"
	"sync"
)

// ErrMissingKey tags records rejected because no identifying field could be
// resolved. Admitting such records would defeat deduplication, so they are
// refused at the boundary instead.
var ErrMissingKey = errors.New("record has no resolvable key")

// keyFields maps each collection to its domain identifier field. When the
// field is absent on a batch, the generic "id" field is used instead.
var keyFields = map[string]string{
	CollectionSuppliers: "supplier_id",
	CollectionCustomers: "customer_id",
	CollectionPurchases: "purchase_id",
	CollectionSales:     "sale_id",
}

// Store owns the four reconciled entity collections. It has a single logical
// writer (the poller callback) and any number of readers.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]Record
	version     uint64
}

// NewStore builds an empty store.
func NewStore() *Store {
	collections := make(map[string]map[string]Record, len(keyFields))
	for name := range keyFields {
		collections[name] = make(map[string]Record)
	}
	return &Store{collections: collections}
}

// MergeResult summarises what one Merge call did.
type MergeResult struct {
	Inserted int
	Updated  int
	Rejected int
}

// Changed reports whether the merge altered the store.
func (r MergeResult) Changed() bool {
	return r.Inserted > 0 || r.Updated > 0
}

// Merge upserts every incoming record into its collection. Records already
// present under the same key are shallow-merged: incoming fields override,
// fields absent from the incoming record survive. Records without a resolvable
// key are rejected and counted; valid records in the same payload still apply.
// An empty payload leaves the store untouched.
func (s *Store) Merge(p Payload) (MergeResult, error) {
	if p.Empty() {
		return MergeResult{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var res MergeResult
	for name, incoming := range p.collections() {
		if len(incoming) == 0 {
			continue
		}
		key := batchKey(name, incoming[0])
		existing := s.collections[name]
		for _, record := range incoming {
			k, ok := recordKey(record, key)
			if !ok {
				res.Rejected++
				continue
			}
			if prev, found := existing[k]; found {
				merged := make(Record, len(prev)+len(record))
				for field, value := range prev {
					merged[field] = value
				}
				for field, value := range record {
					merged[field] = value
				}
				existing[k] = merged
				res.Updated++
			} else {
				copied := make(Record, len(record))
				for field, value := range record {
					copied[field] = value
				}
				existing[k] = copied
				res.Inserted++
			}
		}
	}

	if res.Changed() {
		s.version++
	}
	if res.Rejected > 0 {
		return res, fmt.Errorf("%w: %d rejected", ErrMissingKey, res.Rejected)
	}
	return res, nil
}

// batchKey picks the merge key for a batch: the collection's domain id field
// if the first record carries it, else the generic id field.
func batchKey(collection string, first Record) string {
	key := keyFields[collection]
	if _, ok := first[key]; ok {
		return key
	}
	return "id"
}

// recordKey resolves the identity of one record, falling back to the generic
// id field when the batch key is absent on this particular record.
func recordKey(record Record, key string) (string, bool) {
	if v, ok := record[key]; ok && v != nil {
		return fmt.Sprint(v), true
	}
	if v, ok := record["id"]; ok && v != nil {
		return fmt.Sprint(v), true
	}
	return "", false
}

// Get returns a copy of the record stored under key in the named collection.
func (s *Store) Get(collection, key string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.collections[collection][key]
	if !ok {
		return nil, false
	}
	copied := make(Record, len(record))
	for field, value := range record {
		copied[field] = value
	}
	return copied, true
}

// Snapshot returns copies of all records in the named collection. No ordering
// is guaranteed; identity is key-based only.
func (s *Store) Snapshot(collection string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.collections[collection]
	out := make([]Record, 0, len(records))
	for _, record := range records {
		copied := make(Record, len(record))
		for field, value := range record {
			copied[field] = value
		}
		out = append(out, copied)
	}
	return out
}

// Len returns the number of records in the named collection.
func (s *Store) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

// Version increments whenever a merge changes the store, letting consumers
// skip work when nothing changed.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
