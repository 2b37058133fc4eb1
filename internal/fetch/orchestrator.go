// Package fetch is the orchestrator between the HTTP layer and the
// scrape client: cache-first page retrieval with TTL bookkeeping.
package fetch

import (
	"context"
	"log"
	"time"

	"github.com/kusaka/npblive/internal/cache"
	"github.com/kusaka/npblive/internal/metrics"
	"github.com/kusaka/npblive/internal/scrape"
)

// Status reports whether a page came from the cache or the network.
type Status string

const (
	StatusHit  Status = "HIT"
	StatusMiss Status = "MISS"
)

// Request describes one page retrieval. Delay is the courtesy pause
// applied before a network fetch; it is skipped entirely on a hit.
type Request struct {
	URL      string
	CacheKey string
	Page     string // metrics label: "games", "standings" or "detail"
	TTL      time.Duration
	Delay    time.Duration
}

// Result is the raw page together with its cache metadata.
type Result struct {
	HTML      string
	Status    Status
	Age       time.Duration
	Remaining time.Duration
}

// Orchestrator serializes nothing and coalesces nothing: concurrent
// requests for the same uncached key may both fetch. The courtesy delay
// already rate-limits the origin, so the duplicate-fetch waste is
// tolerated.
type Orchestrator struct {
	cache   cache.Store
	client  *scrape.Client
	metrics *metrics.Metrics
}

// New creates an orchestrator. metrics may be nil.
func New(store cache.Store, client *scrape.Client, m *metrics.Metrics) *Orchestrator {
	return &Orchestrator{
		cache:   store,
		client:  client,
		metrics: m,
	}
}

// Do returns the page for req, from cache when a live entry exists and
// from the origin otherwise. A cache hit performs no network call and
// no delay. Cache backend errors degrade to a fetch, never to a
// request failure.
func (o *Orchestrator) Do(ctx context.Context, req Request) (*Result, error) {
	entry, err := o.cache.Get(ctx, req.CacheKey)
	if err != nil {
		log.Printf("[fetch] cache get %s failed: %v (falling through to fetch)", req.CacheKey, err)
	}
	if entry != nil {
		o.metrics.RecordCache(req.Page, "hit")
		log.Printf("[fetch] cache HIT %s (remaining %s)", req.CacheKey, entry.Remaining.Round(time.Second))
		return &Result{
			HTML:      entry.Payload,
			Status:    StatusHit,
			Age:       entry.Age,
			Remaining: entry.Remaining,
		}, nil
	}
	o.metrics.RecordCache(req.Page, "miss")

	started := time.Now()
	html, err := o.client.Fetch(ctx, req.URL, req.Delay)
	o.metrics.RecordFetch(req.Page, time.Since(started).Seconds(), err)
	if err != nil {
		return nil, err
	}

	if err := o.cache.Set(ctx, req.CacheKey, html, req.TTL); err != nil {
		log.Printf("[fetch] cache set %s failed: %v", req.CacheKey, err)
	}

	return &Result{
		HTML:      html,
		Status:    StatusMiss,
		Remaining: req.TTL,
	}, nil
}
