package rest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kusaka/npblive/internal/cache"
	"github.com/kusaka/npblive/internal/fetch"
	"github.com/kusaka/npblive/internal/scrape"
	"github.com/kusaka/npblive/internal/service"
)

const scheduleHTML = `<html><body><table><tr>
<td nowrap="nowrap">
<a href="/bis/2025/calendar/index_06.html">1</a>
<a href="/bis/2025/games/s2025060102968.html">巨 5 - 2 中</a>
<a href="/bis/2025/games/s2025060102969.html">ソ 3 - 3 日</a>
</td>
</tr></table></body></html>`

type stubTransport struct {
	status int
	body   string
}

func (t *stubTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: t.status,
		Body:       io.NopCloser(strings.NewReader(t.body)),
		Header:     make(http.Header),
	}, nil
}

func newTestServer(transport http.RoundTripper) *Server {
	orch := fetch.New(cache.NewMemory(), scrape.NewClient(0, transport), nil)
	games := service.NewGamesService(orch, time.Minute, 0)
	detail := service.NewDetailService(orch, time.Minute, 0)
	table := service.NewStandingsService(orch, time.Minute, 0)
	return NewServer("0", games, detail, table, nil)
}

func TestGetGames(t *testing.T) {
	server := newTestServer(&stubTransport{status: 200, body: scheduleHTML})

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/games?year=2025&month=6", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Cache-Status"); got != "MISS" {
		t.Errorf("X-Cache-Status = %q, expected MISS on first request", got)
	}

	var resp service.GamesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Year != 2025 || resp.Month != 6 {
		t.Errorf("year/month = %d/%d", resp.Year, resp.Month)
	}
	if len(resp.Games) != 1 || len(resp.Games[0].Matches) != 2 {
		t.Fatalf("games payload = %+v", resp.Games)
	}
	if resp.CacheStatus != "MISS" {
		t.Errorf("cacheStatus = %q", resp.CacheStatus)
	}

	// Second request is served from cache.
	rec = httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/games?year=2025&month=6", nil))
	if got := rec.Header().Get("X-Cache-Status"); got != "HIT" {
		t.Errorf("X-Cache-Status = %q, expected HIT on second request", got)
	}
}

func TestGetGamesBadMonth(t *testing.T) {
	server := newTestServer(&stubTransport{status: 200, body: scheduleHTML})

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/games?year=2025&month=13", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400", rec.Code)
	}
}

func TestGetGamesUpstreamFailure(t *testing.T) {
	server := newTestServer(&stubTransport{status: 503, body: "unavailable"})

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/games?year=2025&month=6", nil))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, expected 502 for an upstream failure", rec.Code)
	}
	if got := rec.Header().Get("X-Cache-Status"); got != "ERROR" {
		t.Errorf("X-Cache-Status = %q, expected ERROR", got)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding error payload: %v", err)
	}
	if payload["error"] == "" {
		t.Error("error payload missing message")
	}
}

func TestGetGameDetailRequiresGameID(t *testing.T) {
	server := newTestServer(&stubTransport{status: 200, body: "<html></html>"})

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/game-detail", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400 without gameId", rec.Code)
	}
}

func TestGetStandings(t *testing.T) {
	server := newTestServer(&stubTransport{status: 200, body: scheduleHTML})

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/standings?year=2025&month=6", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp service.StandingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	// 巨 beat 中: both central, one decision each. The drawn pacific
	// game keeps both teams listed with zero decisions.
	if len(resp.Central) != 2 {
		t.Errorf("central rows = %d, expected 2", len(resp.Central))
	}
	if len(resp.Pacific) != 2 {
		t.Errorf("pacific rows = %d, expected 2", len(resp.Pacific))
	}
}

func TestHealthCheck(t *testing.T) {
	server := newTestServer(&stubTransport{status: 200, body: scheduleHTML})

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("body = %s", rec.Body.String())
	}
}
