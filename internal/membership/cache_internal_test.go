package membership

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

type countingFetcher struct {
	calls  int
	roster []int64
	err    error
}

func (f *countingFetcher) fetch(_ context.Context) ([]int64, error) {
	f.calls++
	return f.roster, f.err
}

func TestIsMemberFetchesOnceWithinTTL(t *testing.T) {
	fetcher := &countingFetcher{roster: []int64{42, 99}}
	cache := New(fetcher.fetch, time.Minute, slog.Default())

	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	ctx := context.Background()

	member, err := cache.IsMember(ctx, 42)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !member {
		t.Fatalf("Expected user 42 to be a member")
	}
	if fetcher.calls != 1 {
		t.Fatalf("Expected exactly one fetch, got %d", fetcher.calls)
	}

	now = now.Add(30 * time.Second)

	member, err = cache.IsMember(ctx, 7)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if member {
		t.Fatalf("Expected user 7 to not be a member")
	}
	if fetcher.calls != 1 {
		t.Fatalf("Expected zero additional fetches within TTL, got %d", fetcher.calls)
	}
}

func TestIsMemberRefetchesAfterExpiry(t *testing.T) {
	fetcher := &countingFetcher{roster: []int64{42}}
	cache := New(fetcher.fetch, time.Minute, slog.Default())

	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	ctx := context.Background()

	if _, err := cache.IsMember(ctx, 42); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	now = now.Add(61 * time.Second)

	if _, err := cache.IsMember(ctx, 42); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if fetcher.calls != 2 {
		t.Fatalf("Expected exactly one more fetch after expiry, got %d", fetcher.calls)
	}
}

func TestIsMemberFailsClosedOnFetchError(t *testing.T) {
	fetcher := &countingFetcher{err: errors.New("directory unavailable")}
	cache := New(fetcher.fetch, time.Minute, slog.Default())

	member, err := cache.IsMember(context.Background(), 42)
	if err == nil {
		t.Fatalf("Expected error on fetch failure")
	}
	if member {
		t.Fatalf("Expected membership to be denied on fetch failure")
	}
}

func TestIsMemberFailsClosedOnEmptyRoster(t *testing.T) {
	fetcher := &countingFetcher{}
	cache := New(fetcher.fetch, time.Minute, slog.Default())

	if _, err := cache.IsMember(context.Background(), 42); err == nil {
		t.Fatalf("Expected error on empty roster")
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	fetcher := &countingFetcher{roster: []int64{42}}
	cache := New(fetcher.fetch, time.Minute, slog.Default())

	ctx := context.Background()

	if _, err := cache.IsMember(ctx, 42); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	cache.Invalidate()

	if _, err := cache.IsMember(ctx, 42); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if fetcher.calls != 2 {
		t.Fatalf("Expected refetch after invalidate, got %d fetches", fetcher.calls)
	}
}
