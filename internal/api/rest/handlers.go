package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kusaka/npblive/internal/scrape"
	"github.com/kusaka/npblive/internal/service"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	games     *service.GamesService
	detail    *service.DetailService
	standings *service.StandingsService
}

// NewHandler creates a new handler
func NewHandler(games *service.GamesService, detail *service.DetailService, standings *service.StandingsService) *Handler {
	return &Handler{
		games:     games,
		detail:    detail,
		standings: standings,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "npblive",
		"version": "1.0.0",
	})
}

// GetGames returns the scraped monthly schedule with results.
func (h *Handler) GetGames(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonth(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	resp, err := h.games.Monthly(r.Context(), year, month)
	if err != nil {
		respondUpstreamError(w, "Failed to fetch games", err)
		return
	}

	writeCacheHeaders(w, resp.CacheMeta)
	respondJSON(w, http.StatusOK, resp)
}

// GetGameDetail returns the box score for one game.
func (h *Handler) GetGameDetail(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	if gameID == "" {
		respondError(w, http.StatusBadRequest, "Missing query parameter 'gameId'", nil)
		return
	}

	resp, err := h.detail.Get(r.Context(), gameID)
	if err != nil {
		respondUpstreamError(w, "Failed to fetch game detail", err)
		return
	}

	writeCacheHeaders(w, resp.CacheMeta)
	respondJSON(w, http.StatusOK, resp)
}

// GetStandings returns both league tables for one month.
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonth(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	resp, err := h.standings.Monthly(r.Context(), year, month)
	if err != nil {
		respondUpstreamError(w, "Failed to fetch standings", err)
		return
	}

	writeCacheHeaders(w, resp.CacheMeta)
	respondJSON(w, http.StatusOK, resp)
}

// yearMonth reads the year and month query parameters, defaulting to
// the current month.
func yearMonth(r *http.Request) (int, int, error) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1950 || y > 2100 {
			return 0, 0, fmt.Errorf("invalid year %q", raw)
		}
		year = y
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, fmt.Errorf("invalid month %q", raw)
		}
		month = m
	}

	return year, month, nil
}

// writeCacheHeaders exposes the orchestrator's cache metadata as
// response headers.
func writeCacheHeaders(w http.ResponseWriter, meta service.CacheMeta) {
	w.Header().Set("X-Cache-Status", meta.CacheStatus)
	w.Header().Set("X-Cache-Remaining", strconv.Itoa(meta.CacheRemaining))
	w.Header().Set("X-Response-Time", fmt.Sprintf("%dms", meta.ResponseTime))
}

// respondUpstreamError maps pipeline failures onto status codes: a
// typed fetch error or a structural page error means the upstream site
// failed us (502); anything else is our own fault (500).
func respondUpstreamError(w http.ResponseWriter, message string, err error) {
	var fetchErr *scrape.FetchError
	if errors.As(err, &fetchErr) {
		w.Header().Set("X-Cache-Status", "ERROR")
		respondError(w, http.StatusBadGateway, message, err)
		return
	}
	if errors.Is(err, scrape.ErrPageStructure) {
		respondError(w, http.StatusBadGateway, message, err)
		return
	}
	respondError(w, http.StatusInternalServerError, message, err)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
