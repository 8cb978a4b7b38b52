package memcache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// entry holds a serialized value with its expiry instant. A zero expiry
// means the entry never expires.
type entry struct {
	data      []byte
	expiresAt time.Time
}

// Store is an in-process key → (value, expiry) cache. Values are stored
// serialized so the surface matches the redis-backed store. Expiry is
// compared against time.Now, whose monotonic reading makes the check immune
// to wall-clock adjustments.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time

	serializer   func(interface{}) ([]byte, error)
	deserializer func([]byte, interface{}) error
}

// New creates an empty in-process store.
func New() *Store {
	return &Store{
		entries:      make(map[string]entry),
		now:          time.Now,
		serializer:   json.Marshal,
		deserializer: json.Unmarshal,
	}
}

// WithClock overrides the clock used for expiry checks.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Get retrieves a live value into dest. It returns false when the key is
// absent or expired; expired entries are evicted on the way out.
func (s *Store) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have replaced it.
		if cur, still := s.entries[key]; still && !cur.expiresAt.IsZero() && s.now().After(cur.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return false, nil
	}

	if err := s.deserializer(e.data, dest); err != nil {
		return false, fmt.Errorf("failed to deserialize cached value: %w", err)
	}
	return true, nil
}

// Set stores a value under key for the given TTL. A non-positive TTL stores
// the value without expiry.
func (s *Store) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := s.serializer(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry{data: data, expiresAt: expiresAt}
	s.mu.Unlock()
	return nil
}

// Delete removes a key.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Len reports the number of entries currently held, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Ping reports the store as always reachable; it exists so both cache
// backends expose the same health probe.
func (s *Store) Ping(context.Context) error {
	return nil
}
