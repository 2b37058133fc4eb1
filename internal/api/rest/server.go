// Package rest is the inbound HTTP surface: the three scrape-backed
// endpoints plus health and metrics.
package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kusaka/npblive/internal/metrics"
	"github.com/kusaka/npblive/internal/service"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, games *service.GamesService, detail *service.DetailService, table *service.StandingsService, m *metrics.Metrics) *Server {
	handler := NewHandler(games, detail, table)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	if m != nil {
		router.Handle("/metrics", m.Handler()).Methods("GET")
	}

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/games", handler.GetGames).Methods("GET")
	api.HandleFunc("/game-detail", handler.GetGameDetail).Methods("GET")
	api.HandleFunc("/standings", handler.GetStandings).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Router exposes the configured handler tree for tests.
func (s *Server) Router() http.Handler {
	return s.server.Handler
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
