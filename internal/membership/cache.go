// Package membership gates link submissions on channel membership without
// hitting the chat platform on every message.
package membership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// FetchFunc retrieves the complete current roster of allowed member ids.
type FetchFunc func(ctx context.Context) ([]int64, error)

// Cache holds a single roster snapshot with an expiry instant. The snapshot
// is always replaced wholesale, never updated incrementally.
type Cache struct {
	fetch FetchFunc
	ttl   time.Duration
	now   func() time.Time
	log   *slog.Logger

	mu      sync.Mutex
	roster  map[int64]struct{}
	expires time.Time
}

func New(fetch FetchFunc, ttl time.Duration, log *slog.Logger) *Cache {
	return &Cache{
		fetch: fetch,
		ttl:   ttl,
		now:   time.Now,
		log:   log,
	}
}

// IsMember reports whether the user is in the cached roster, refreshing the
// snapshot first when it is absent or expired. A failed or empty fetch is an
// error: the caller must deny rather than fail open.
//
// The fetch runs outside the lock, so two concurrent misses may both fetch.
// Both converge on the same roster, which is an accepted inefficiency.
func (c *Cache) IsMember(ctx context.Context, userID int64) (bool, error) {
	if roster, ok := c.snapshot(); ok {
		_, member := roster[userID]
		return member, nil
	}

	c.log.DebugContext(ctx, "Roster cache miss, fetching",
		"userID", userID)

	ids, err := c.fetch(ctx)
	if err != nil {
		return false, fmt.Errorf("fetch roster: %w", err)
	}
	if len(ids) == 0 {
		return false, errors.New("fetched roster is empty")
	}

	roster := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		roster[id] = struct{}{}
	}

	c.mu.Lock()
	c.roster = roster
	c.expires = c.now().Add(c.ttl)
	c.mu.Unlock()

	_, member := roster[userID]
	return member, nil
}

// Invalidate drops the snapshot so the next check fetches a fresh roster.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.roster = nil
	c.expires = time.Time{}
}

func (c *Cache) snapshot() (map[int64]struct{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.roster == nil || c.now().After(c.expires) {
		return nil, false
	}

	return c.roster, true
}
