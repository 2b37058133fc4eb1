// Package service composes the fetch orchestrator with the parsers into
// the JSON payloads the HTTP layer serves.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kusaka/npblive/internal/fetch"
	"github.com/kusaka/npblive/internal/scrape"
)

// CacheMeta is the cache-freshness metadata attached to every response
// so clients can see whether they hit the cache and for how much longer
// the payload stays fresh.
type CacheMeta struct {
	CacheStatus    string `json:"cacheStatus"`
	CacheAge       int    `json:"cacheAge"`
	CacheRemaining int    `json:"cacheRemaining"`
	ResponseTime   int64  `json:"responseTime"`
	Timestamp      string `json:"timestamp"`
}

// GamesResponse is the monthly schedule payload.
type GamesResponse struct {
	Year      int              `json:"year"`
	Month     int              `json:"month"`
	Games     []scrape.GameDay `json:"games"`
	ScrapedAt string           `json:"scrapedAt"`
	CacheMeta
}

// GamesService serves the monthly calendar of played games.
type GamesService struct {
	orch  *fetch.Orchestrator
	ttl   time.Duration
	delay time.Duration
}

// NewGamesService creates a new games service.
func NewGamesService(orch *fetch.Orchestrator, ttl, delay time.Duration) *GamesService {
	return &GamesService{orch: orch, ttl: ttl, delay: delay}
}

// Monthly returns all game days for one year and month.
func (s *GamesService) Monthly(ctx context.Context, year, month int) (*GamesResponse, error) {
	started := time.Now()

	result, err := s.orch.Do(ctx, fetch.Request{
		URL:      scrape.ScheduleURL(year, month),
		CacheKey: fmt.Sprintf("games-%d-%d", year, month),
		Page:     "games",
		TTL:      s.ttl,
		Delay:    s.delay,
	})
	if err != nil {
		return nil, err
	}

	days, err := scrape.ParseSchedulePage(result.HTML, year, month)
	if err != nil {
		return nil, err
	}

	return &GamesResponse{
		Year:      year,
		Month:     month,
		Games:     days,
		ScrapedAt: time.Now().UTC().Format(time.RFC3339),
		CacheMeta: newCacheMeta(result, started),
	}, nil
}

func newCacheMeta(result *fetch.Result, started time.Time) CacheMeta {
	return CacheMeta{
		CacheStatus:    string(result.Status),
		CacheAge:       int(result.Age.Seconds()),
		CacheRemaining: int(result.Remaining.Seconds()),
		ResponseTime:   time.Since(started).Milliseconds(),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
}
