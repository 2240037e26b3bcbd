package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Handler consumes one successfully fetched payload.
type Handler func(Payload)

// Poller periodically fetches the incremental update feed and hands each
// payload to its handler. It keeps a high-water mark so every request only
// asks for records changed since the last successful fetch.
type Poller struct {
	baseURL  string
	interval time.Duration
	client   *http.Client
	handler  Handler
	logger   *slog.Logger

	mu        sync.Mutex
	running   bool
	cancel    context.CancelFunc
	done      chan struct{}
	watermark time.Time
}

// NewPoller builds a poller against the given server base URL.
func NewPoller(baseURL string, interval time.Duration, handler Handler, logger *slog.Logger) *Poller {
	return &Poller{
		baseURL:  baseURL,
		interval: interval,
		client:   &http.Client{Timeout: 15 * time.Second},
		handler:  handler,
		logger:   logger,
		// First fetch asks since the epoch and receives everything.
		watermark: time.Unix(0, 0).UTC(),
	}
}

// Start begins polling: one immediate fetch, then one per interval. Calling
// Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.running = true
	p.cancel = cancel
	p.done = make(chan struct{})
	done := p.done
	p.mu.Unlock()

	go func() {
		defer close(done)
		p.tick(ctx)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.tick(ctx)
			}
		}
	}()
}

// Stop halts polling and waits for any in-flight tick to finish. Stopping an
// already stopped poller is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	cancel := p.cancel
	done := p.done
	p.mu.Unlock()

	cancel()
	<-done
}

// Watermark returns the current checkpoint.
func (p *Poller) Watermark() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.watermark
}

func (p *Poller) tick(ctx context.Context) {
	since := p.Watermark()

	payload, err := p.fetch(ctx, since)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Warn("update fetch failed", "since", since, "error", err)
		return
	}
	if ctx.Err() != nil {
		return
	}

	// The watermark only moves once the handler has taken the payload, so a
	// payload lost to a handler panic is fetched again on the next tick.
	if p.deliver(payload) {
		p.advance(payload.AsOf)
	}
}

func (p *Poller) fetch(ctx context.Context, since time.Time) (Payload, error) {
	u := fmt.Sprintf("%s/updates/recent?since=%s", p.baseURL, url.QueryEscape(since.Format(time.RFC3339)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Payload{}, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return Payload{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Payload{}, fmt.Errorf("server returned %s", resp.Status)
	}

	var payload Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Payload{}, fmt.Errorf("decode payload: %w", err)
	}
	return payload, nil
}

func (p *Poller) deliver(payload Payload) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("update handler panicked", "panic", r)
		}
	}()
	p.handler(payload)
	return true
}

// advance moves the watermark to the server's as_of mark, falling back to the
// local clock when the server did not supply one. The watermark never moves
// backwards.
func (p *Poller) advance(asOf string) {
	next := time.Now().UTC()
	if asOf != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, asOf); err == nil {
			next = parsed.UTC()
		} else {
			p.logger.Warn("unparseable as_of mark", "as_of", asOf)
		}
	}

	p.mu.Lock()
	if next.After(p.watermark) {
		p.watermark = next
	}
	p.mu.Unlock()
}
