package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kusaka/npblive/internal/api/rest"
	"github.com/kusaka/npblive/internal/cache"
	"github.com/kusaka/npblive/internal/config"
	"github.com/kusaka/npblive/internal/fetch"
	"github.com/kusaka/npblive/internal/metrics"
	"github.com/kusaka/npblive/internal/scrape"
	"github.com/kusaka/npblive/internal/service"
)

const (
	serviceName    = "npblive"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - NPB Results Scraping Service", serviceName, serviceVersion)

	cfg := config.Load()

	// Select the cache backend: shared Redis when configured, otherwise
	// process-local memory.
	var store cache.Store
	if cfg.RedisURL != "" {
		redisStore, err := connectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		store = redisStore
		log.Println("✓ Connected to Redis cache")
	} else {
		store = cache.NewMemory()
		log.Println("✓ Using in-memory cache")
	}

	m := metrics.New()
	client := scrape.NewClient(cfg.RequestTimeout, nil)
	orch := fetch.New(store, client, m)

	games := service.NewGamesService(orch, cfg.GamesTTL, cfg.GamesDelay)
	detail := service.NewDetailService(orch, cfg.DetailTTL, cfg.DetailDelay)
	table := service.NewStandingsService(orch, cfg.StandingsTTL, cfg.StandingsDelay)

	restServer := rest.NewServer(cfg.RESTPort, games, detail, table, m)
	go func() {
		log.Printf("Starting REST API server on port %s", cfg.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	log.Printf("✓ REST API server listening on :%s", cfg.RESTPort)
	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}

// connectRedis retries the connection; the cache container may still be
// starting when we are.
func connectRedis(redisURL string) (*cache.Redis, error) {
	const maxRetries = 30
	retryDelay := 2 * time.Second

	var store *cache.Redis
	var err error
	for i := 0; i < maxRetries; i++ {
		store, err = cache.NewRedis(redisURL)
		if err == nil {
			return store, nil
		}
		if i < maxRetries-1 {
			log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, maxRetries, err, retryDelay)
			time.Sleep(retryDelay)
		}
	}
	return nil, err
}
