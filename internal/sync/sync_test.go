package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/grocerybag/grocerybag/internal/logging"
)

func TestPollAndMergeEndToEnd(t *testing.T) {
	asOf := time.Date(2026, 8, 9, 12, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Payload{
			AsOf:  asOf.Format(time.RFC3339),
			Sales: []Record{{"sale_id": "S-082-1111", "total_amount": 100}},
		})
	}))
	defer srv.Close()

	store := NewStore()
	merged := make(chan struct{}, 1)
	p := NewPoller(srv.URL, 50*time.Millisecond, func(payload Payload) {
		if _, err := store.Merge(payload); err != nil {
			t.Errorf("merge: %v", err)
		}
		select {
		case merged <- struct{}{}:
		default:
		}
	}, logging.Discard())

	p.Start(context.Background())
	defer p.Stop()

	select {
	case <-merged:
	case <-time.After(2 * time.Second):
		t.Fatal("no payload merged")
	}

	if store.Len(CollectionSales) != 1 {
		t.Fatalf("expected exactly one sale, got %d", store.Len(CollectionSales))
	}
	if _, ok := store.Get(CollectionSales, "S-082-1111"); !ok {
		t.Fatal("sale not stored under its sale_id")
	}

	// Redelivery of the same window must not duplicate the record.
	select {
	case <-merged:
	case <-time.After(2 * time.Second):
		t.Fatal("no second poll arrived")
	}
	if store.Len(CollectionSales) != 1 {
		t.Fatalf("redelivery duplicated the sale: %d records", store.Len(CollectionSales))
	}
}
