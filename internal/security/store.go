package security

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Window is the counter state for one (client, class) pair.
type Window struct {
	WindowStart time.Time `json:"windowStart"`
	Count       int       `json:"count"`
}

// WindowStore holds rate-limit windows keyed by string. Implementations may
// be process-local or shared across instances; the limiter logic is the same
// either way.
type WindowStore interface {
	Get(ctx context.Context, key string) (Window, bool)
	Set(ctx context.Context, key string, w Window, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// MemoryStore is a mutex-guarded in-process map. Windows do not survive a
// restart, and under horizontal scaling the effective limit becomes
// maxRequests x instanceCount; use the Redis store for a shared bound.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	window    Window
	expiresAt time.Time
}

// NewMemoryStore builds an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Get returns the window for key if present and not expired.
func (s *MemoryStore) Get(_ context.Context, key string) (Window, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.entries, key)
		return Window{}, false
	}
	return entry.window, true
}

// Set stores the window for key with the given lifetime.
func (s *MemoryStore) Set(_ context.Context, key string, w Window, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{window: w, expiresAt: time.Now().Add(ttl)}
}

// Delete removes the window for key.
func (s *MemoryStore) Delete(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Purge drops expired entries. Called lazily from the limiter rather than
// from a background goroutine.
func (s *MemoryStore) Purge() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}

// RedisStore keeps windows in Redis so multiple instances share one budget.
// Get/Set are not a single atomic operation, so concurrent increments can
// undercount slightly.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps a go-redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "ratelimit:"}
}

// Get fetches and decodes the window for key.
func (s *RedisStore) Get(ctx context.Context, key string) (Window, bool) {
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		return Window{}, false
	}
	var w Window
	if err := json.Unmarshal(raw, &w); err != nil {
		return Window{}, false
	}
	return w, true
}

// Set encodes and stores the window for key with a TTL.
func (s *RedisStore) Set(ctx context.Context, key string, w Window, ttl time.Duration) {
	raw, err := json.Marshal(w)
	if err != nil {
		return
	}
	_ = s.client.Set(ctx, s.prefix+key, raw, ttl).Err()
}

// Delete removes the window for key.
func (s *RedisStore) Delete(ctx context.Context, key string) {
	_ = s.client.Del(ctx, s.prefix+key).Err()
}
