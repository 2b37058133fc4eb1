package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	payload  string
	storedAt time.Time
	ttl      time.Duration
}

// Memory is a process-local Store: a key/value map with last-writer-wins
// semantics, unbounded by count and pruned only on expired reads. That
// is acceptable because cache keys are low-cardinality (one per
// year+month or game). The clock is injectable for tests.
type Memory struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

// NewMemory creates a Memory store using the wall clock.
func NewMemory() *Memory {
	return NewMemoryWithClock(time.Now)
}

// NewMemoryWithClock creates a Memory store with a custom clock.
func NewMemoryWithClock(now func() time.Time) *Memory {
	return &Memory{
		items: make(map[string]memoryItem),
		now:   now,
	}
}

// Get returns the live entry for key, or (nil, nil) when the key is
// absent or time-expired.
func (m *Memory) Get(_ context.Context, key string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[key]
	if !ok {
		return nil, nil
	}

	age := m.now().Sub(item.storedAt)
	if age >= item.ttl {
		delete(m.items, key)
		return nil, nil
	}

	return &Entry{
		Payload:   item.payload,
		Age:       age,
		Remaining: item.ttl - age,
	}, nil
}

// Set stores payload under key for ttl, replacing any previous entry.
func (m *Memory) Set(_ context.Context, key, payload string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = memoryItem{
		payload:  payload,
		storedAt: m.now(),
		ttl:      ttl,
	}
	return nil
}
