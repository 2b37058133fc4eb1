package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kusaka/npblive/internal/fetch"
	"github.com/kusaka/npblive/internal/scrape"
	"github.com/kusaka/npblive/internal/standings"
)

// StandingsService aggregates the monthly calendar into per-league
// standings. It reads the same page as the games service but under its
// own cache key and TTL: standings tolerate much staler data.
type StandingsService struct {
	orch  *fetch.Orchestrator
	ttl   time.Duration
	delay time.Duration
}

// NewStandingsService creates a new standings service.
func NewStandingsService(orch *fetch.Orchestrator, ttl, delay time.Duration) *StandingsService {
	return &StandingsService{orch: orch, ttl: ttl, delay: delay}
}

// StandingsResponse is both league tables with cache metadata.
type StandingsResponse struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	standings.Table
	CacheMeta
}

// Monthly returns the standings aggregated over one month's results.
func (s *StandingsService) Monthly(ctx context.Context, year, month int) (*StandingsResponse, error) {
	started := time.Now()

	result, err := s.orch.Do(ctx, fetch.Request{
		URL:      scrape.ScheduleURL(year, month),
		CacheKey: fmt.Sprintf("standings-%d-%d", year, month),
		Page:     "standings",
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

	return &StandingsResponse{
		Year:      year,
		Month:     month,
		Table:     standings.Aggregate(days),
		CacheMeta: newCacheMeta(result, started),
	}, nil
}
