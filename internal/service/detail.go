package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/kusaka/npblive/internal/fetch"
	"github.com/kusaka/npblive/internal/scrape"
)

// DetailService serves single-game box scores.
type DetailService struct {
	orch   *fetch.Orchestrator
	layout scrape.Layout
	ttl    time.Duration
	delay  time.Duration
}

// NewDetailService creates a new game-detail service using the current
// page layout.
func NewDetailService(orch *fetch.Orchestrator, ttl, delay time.Duration) *DetailService {
	return &DetailService{
		orch:   orch,
		layout: scrape.DefaultLayout(),
		ttl:    ttl,
		delay:  delay,
	}
}

// DetailResponse is a box score with cache metadata.
type DetailResponse struct {
	scrape.BoxScore
	CacheMeta
}

var gameIDYear = regexp.MustCompile(`^s(\d{4})`)

// Get returns the box score for one game identifier. The season year
// needed for the page URL is read from the identifier's leading digits,
// falling back to the current year for ids that do not embed one.
func (s *DetailService) Get(ctx context.Context, gameID string) (*DetailResponse, error) {
	started := time.Now()

	year := time.Now().Year()
	if m := gameIDYear.FindStringSubmatch(gameID); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil {
			year = y
		}
	}

	result, err := s.orch.Do(ctx, fetch.Request{
		URL:      scrape.DetailURL(year, gameID),
		CacheKey: fmt.Sprintf("detail-%s", gameID),
		Page:     "detail",
		TTL:      s.ttl,
		Delay:    s.delay,
	})
	if err != nil {
		return nil, err
	}

	box, err := scrape.ParseBoxScore(result.HTML, gameID, s.layout)
	if err != nil {
		return nil, err
	}

	return &DetailResponse{
		BoxScore:  *box,
		CacheMeta: newCacheMeta(result, started),
	}, nil
}
