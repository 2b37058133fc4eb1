// Package cache provides the response cache behind the fetch
// orchestrator: an in-memory store for single-process deployments and a
// Redis-backed store for shared ones.
package cache

import (
	"context"
	"time"
)

// Entry is a cached payload together with its freshness metadata.
type Entry struct {
	Payload   string
	Age       time.Duration
	Remaining time.Duration
}

// Store is the injectable cache abstraction. Get returns (nil, nil) on
// a miss or an expired entry; implementations only return an error for
// backend failures.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key, payload string, ttl time.Duration) error
}
