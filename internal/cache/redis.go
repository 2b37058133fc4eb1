package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisEnvelope wraps the payload with its store time so Age can be
// reported on a hit; Remaining comes from the key's Redis TTL.
type redisEnvelope struct {
	Payload  string    `json:"p"`
	StoredAt time.Time `json:"at"`
}

// Redis is a Store backed by a shared Redis instance, for deployments
// running more than one replica against the same origin site.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(redisURL string) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Redis{client: client}, nil
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

// HealthCheck pings Redis to verify the connection.
func (r *Redis) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Get returns the live entry for key, or (nil, nil) when the key is
// absent; Redis evicts expired keys itself.
func (r *Redis) Get(ctx context.Context, key string) (*Entry, error) {
	raw, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var env redisEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		// An unreadable entry is treated as a miss; the next fetch
		// overwrites it.
		return nil, nil
	}

	remaining, err := r.client.TTL(ctx, key).Result()
	if err != nil || remaining < 0 {
		remaining = 0
	}

	return &Entry{
		Payload:   env.Payload,
		Age:       time.Since(env.StoredAt),
		Remaining: remaining,
	}, nil
}

// Set stores payload under key with ttl.
func (r *Redis) Set(ctx context.Context, key, payload string, ttl time.Duration) error {
	raw, err := json.Marshal(redisEnvelope{Payload: payload, StoredAt: time.Now()})
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, raw, ttl).Err()
}
