package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/grocerybag/grocerybag/internal/logging"
)

func TestPollerFetchesAndAdvancesWatermark(t *testing.T) {
	asOf := time.Date(2026, 8, 9, 12, 0, 0, 0, time.UTC)
	var sinceSeen atomic.Value

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sinceSeen.Store(r.URL.Query().Get("since"))
		json.NewEncoder(w).Encode(Payload{
			AsOf:      asOf.Format(time.RFC3339),
			Suppliers: []Record{{"supplier_id": "SU-1", "name": "A"}},
		})
	}))
	defer srv.Close()

	got := make(chan Payload, 1)
	p := NewPoller(srv.URL, time.Hour, func(payload Payload) {
		select {
		case got <- payload:
		default:
		}
	}, logging.Discard())

	p.Start(context.Background())
	defer p.Stop()

	select {
	case payload := <-got:
		if len(payload.Suppliers) != 1 {
			t.Fatalf("expected 1 supplier, got %d", len(payload.Suppliers))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler never invoked")
	}

	if since, _ := sinceSeen.Load().(string); since != time.Unix(0, 0).UTC().Format(time.RFC3339) {
		t.Fatalf("first request should ask since the epoch, got %q", since)
	}

	deadline := time.Now().Add(time.Second)
	for p.Watermark() != asOf && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if w := p.Watermark(); !w.Equal(asOf) {
		t.Fatalf("expected watermark %s, got %s", asOf, w)
	}
}

func TestPollerKeepsWatermarkOnServerError(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	invoked := make(chan struct{}, 1)
	p := NewPoller(srv.URL, time.Hour, func(Payload) {
		invoked <- struct{}{}
	}, logging.Discard())

	p.Start(context.Background())
	defer p.Stop()

	deadline := time.Now().Add(time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-invoked:
		t.Fatal("handler must not run on a failed fetch")
	case <-time.After(100 * time.Millisecond):
	}
	if w := p.Watermark(); !w.Equal(time.Unix(0, 0).UTC()) {
		t.Fatalf("watermark advanced past epoch on failure: %s", w)
	}
}

func TestPollerRetriesSameWindowAfterFailure(t *testing.T) {
	asOf := time.Date(2026, 8, 9, 12, 0, 0, 0, time.UTC)
	var calls atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if n == 1 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		if since := r.URL.Query().Get("since"); since != time.Unix(0, 0).UTC().Format(time.RFC3339) {
			t.Errorf("retry should reuse the failed window, got since=%q", since)
		}
		json.NewEncoder(w).Encode(Payload{
			AsOf:  asOf.Format(time.RFC3339),
			Sales: []Record{{"sale_id": "S-082-1111", "total_amount": 500}},
		})
	}))
	defer srv.Close()

	got := make(chan Payload, 1)
	p := NewPoller(srv.URL, 50*time.Millisecond, func(payload Payload) {
		select {
		case got <- payload:
		default:
		}
	}, logging.Discard())

	p.Start(context.Background())
	defer p.Stop()

	select {
	case payload := <-got:
		if len(payload.Sales) != 1 {
			t.Fatalf("expected the retried window's sale, got %+v", payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("retry never delivered")
	}
}

func TestPollerRedeliversAfterHandlerPanic(t *testing.T) {
	asOf := time.Date(2026, 8, 9, 12, 0, 0, 0, time.UTC)
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The retry after the panicked delivery must reuse the epoch window.
		if requests.Add(1) == 2 {
			if since := r.URL.Query().Get("since"); since != time.Unix(0, 0).UTC().Format(time.RFC3339) {
				t.Errorf("a panicked delivery must not advance the watermark, got since=%q", since)
			}
		}
		json.NewEncoder(w).Encode(Payload{
			AsOf:  asOf.Format(time.RFC3339),
			Sales: []Record{{"sale_id": "S-082-1111", "total_amount": 500}},
		})
	}))
	defer srv.Close()

	var deliveries atomic.Int64
	redelivered := make(chan struct{}, 1)
	p := NewPoller(srv.URL, 50*time.Millisecond, func(Payload) {
		if deliveries.Add(1) == 1 {
			panic("boom")
		}
		select {
		case redelivered <- struct{}{}:
		default:
		}
	}, logging.Discard())

	p.Start(context.Background())

	select {
	case <-redelivered:
	case <-time.After(2 * time.Second):
		t.Fatal("payload was not redelivered after the handler panic")
	}
	p.Stop()

	if w := p.Watermark(); !w.Equal(asOf) {
		t.Fatalf("expected watermark %s after successful redelivery, got %s", asOf, w)
	}
}

func TestPollerStartStopIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Payload{})
	}))
	defer srv.Close()

	p := NewPoller(srv.URL, time.Hour, func(Payload) {}, logging.Discard())

	ctx := context.Background()
	p.Start(ctx)
	p.Start(ctx)
	p.Stop()
	p.Stop()

	p.Start(ctx)
	p.Stop()
}

func TestPollerStopSuppressesPendingDelivery(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		json.NewEncoder(w).Encode(Payload{
			Suppliers: []Record{{"supplier_id": "SU-1"}},
		})
	}))
	defer srv.Close()

	var delivered atomic.Int64
	p := NewPoller(srv.URL, time.Hour, func(Payload) {
		delivered.Add(1)
	}, logging.Discard())

	p.Start(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		close(release)
	}()
	p.Stop()

	if delivered.Load() != 0 {
		t.Fatalf("handler ran after Stop: %d deliveries", delivered.Load())
	}
}
