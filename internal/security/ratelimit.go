package security

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Class is a named category of operation with its own request budget.
type Class string

const (
	ClassLogin  Class = "login"
	ClassRead   Class = "read"
	ClassWrite  Class = "write"
	ClassImages Class = "images"
)

// Limit is the budget for one class.
type Limit struct {
	MaxRequests int
	Window      time.Duration
}

// DefaultLimits mirrors the production budgets: images run hottest because
// the sales screen renders a grid of product thumbnails.
func DefaultLimits() map[Class]Limit {
	return map[Class]Limit{
		ClassLogin:  {MaxRequests: 5, Window: time.Minute},
		ClassRead:   {MaxRequests: 100, Window: time.Minute},
		ClassWrite:  {MaxRequests: 30, Window: time.Minute},
		ClassImages: {MaxRequests: 200, Window: time.Minute},
	}
}

// Classify maps a request to its rate-limit class. Precedence is fixed:
// login endpoint, then image serving, then any other GET as read, then write.
func Classify(path, method string) Class {
	if strings.Contains(path, "/auth/login") {
		return ClassLogin
	}
	if strings.Contains(path, "/api/images") {
		return ClassImages
	}
	if method == "GET" {
		return ClassRead
	}
	return ClassWrite
}

// Result is the outcome of a rate-limit check.
type Result struct {
	Allowed      bool
	Remaining    int
	ResetSeconds int
	Limit        int
}

// Limiter counts requests per (client, class) over fixed windows. The window
// resets sharply at its boundary, so a burst of up to twice the budget can
// straddle a reset.
type Limiter struct {
	store     WindowStore
	limits    map[Class]Limit
	maxWindow time.Duration

	purgeMu   sync.Mutex
	lastPurge time.Time
}

// NewLimiter builds a limiter over the given store.
func NewLimiter(store WindowStore, limits map[Class]Limit) *Limiter {
	if limits == nil {
		limits = DefaultLimits()
	}
	var maxWindow time.Duration
	for _, limit := range limits {
		if limit.Window > maxWindow {
			maxWindow = limit.Window
		}
	}
	return &Limiter{store: store, limits: limits, maxWindow: maxWindow, lastPurge: time.Now()}
}

// Check records one request for (clientID, class) and reports whether it is
// within budget. Denied requests still count against the window. Never
// blocks; denial is immediate.
func (l *Limiter) Check(ctx context.Context, clientID string, class Class) Result {
	limit, ok := l.limits[class]
	if !ok {
		limit = l.limits[ClassRead]
	}

	now := time.Now()
	key := clientID + ":" + string(class)

	window, found := l.store.Get(ctx, key)
	if !found || now.After(window.WindowStart.Add(limit.Window)) {
		window = Window{WindowStart: now, Count: 0}
	}

	window.Count++
	l.store.Set(ctx, key, window, limit.Window)

	l.maybePurge(now)

	remaining := limit.MaxRequests - window.Count
	if remaining < 0 {
		remaining = 0
	}
	reset := int(window.WindowStart.Add(limit.Window).Sub(now).Seconds())
	if reset < 1 {
		reset = 1
	}

	return Result{
		Allowed:      window.Count <= limit.MaxRequests,
		Remaining:    remaining,
		ResetSeconds: reset,
		Limit:        limit.MaxRequests,
	}
}

// maybePurge drops stale memory-store entries at most once per longest
// window. Stores with native expiry make this a no-op.
func (l *Limiter) maybePurge(now time.Time) {
	mem, ok := l.store.(*MemoryStore)
	if !ok {
		return
	}
	l.purgeMu.Lock()
	due := now.Sub(l.lastPurge) >= l.maxWindow
	if due {
		l.lastPurge = now
	}
	l.purgeMu.Unlock()
	if due {
		mem.Purge()
	}
}
