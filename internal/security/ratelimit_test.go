package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path   string
		method string
		want   Class
	}{
		{"/api/auth/login", "POST", ClassLogin},
		{"/api/products", "GET", ClassRead},
		{"/api/products", "POST", ClassWrite},
		{"/api/products/5", "PUT", ClassWrite},
		{"/api/products/5", "DELETE", ClassWrite},
		{"/api/images/product-1-2.png", "GET", ClassImages},
		{"/api/sales", "GET", ClassRead},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.path, tt.method), "%s %s", tt.method, tt.path)
	}
}

func TestLimiterDeniesOverBudget(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), DefaultLimits())
	ctx := context.Background()

	for i := 1; i <= 30; i++ {
		result := limiter.Check(ctx, "ip:10.0.0.1", ClassWrite)
		assert.True(t, result.Allowed, "request %d", i)
		assert.Equal(t, 30-i, result.Remaining)
		assert.Equal(t, 30, result.Limit)
	}

	result := limiter.Check(ctx, "ip:10.0.0.1", ClassWrite)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.GreaterOrEqual(t, result.ResetSeconds, 1)
}

func TestLimiterCountsDeniedRequests(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), map[Class]Limit{
		ClassWrite: {MaxRequests: 2, Window: time.Minute},
	})
	ctx := context.Background()

	limiter.Check(ctx, "ip:10.0.0.2", ClassWrite)
	limiter.Check(ctx, "ip:10.0.0.2", ClassWrite)
	limiter.Check(ctx, "ip:10.0.0.2", ClassWrite)

	window, ok := limiter.store.Get(ctx, "ip:10.0.0.2:write")
	require.True(t, ok)
	assert.Equal(t, 3, window.Count)
}

func TestLimiterResetsAfterWindow(t *testing.T) {
	store := NewMemoryStore()
	limiter := NewLimiter(store, DefaultLimits())
	ctx := context.Background()

	for i := 0; i < 31; i++ {
		limiter.Check(ctx, "ip:10.0.0.3", ClassWrite)
	}

	// Age the stored window past its boundary.
	window, ok := store.Get(ctx, "ip:10.0.0.3:write")
	require.True(t, ok)
	window.WindowStart = time.Now().Add(-2 * time.Minute)
	store.Set(ctx, "ip:10.0.0.3:write", window, time.Minute)

	result := limiter.Check(ctx, "ip:10.0.0.3", ClassWrite)
	assert.True(t, result.Allowed)
	assert.Equal(t, 29, result.Remaining)
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), map[Class]Limit{
		ClassLogin: {MaxRequests: 1, Window: time.Minute},
		ClassRead:  {MaxRequests: 100, Window: time.Minute},
	})
	ctx := context.Background()

	assert.True(t, limiter.Check(ctx, "ip:a", ClassLogin).Allowed)
	assert.False(t, limiter.Check(ctx, "ip:a", ClassLogin).Allowed)

	// A different client and a different class are unaffected.
	assert.True(t, limiter.Check(ctx, "ip:b", ClassLogin).Allowed)
	assert.True(t, limiter.Check(ctx, "ip:a", ClassRead).Allowed)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "k", Window{WindowStart: time.Now(), Count: 4}, 10*time.Millisecond)
	_, ok := store.Get(ctx, "k")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = store.Get(ctx, "k")
	assert.False(t, ok)

	store.Set(ctx, "k2", Window{WindowStart: time.Now(), Count: 1}, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	store.Purge()
	store.mu.Lock()
	_, exists := store.entries["k2"]
	store.mu.Unlock()
	assert.False(t, exists)
}
