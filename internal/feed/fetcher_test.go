package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"linkdigest/internal/domain"
)

const atomTemplate = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Archived articles</title>
  <entry>
    <title>Yesterday's article</title>
    <link href="https://example.com/yesterday"/>
    <id>urn:uuid:1</id>
    <updated>%s</updated>
  </entry>
  <entry>
    <title>Today's article</title>
    <link href="https://example.com/today"/>
    <id>urn:uuid:2</id>
    <updated>%s</updated>
  </entry>
  <entry>
    <title>Old article</title>
    <link href="https://example.com/old"/>
    <id>urn:uuid:3</id>
    <updated>%s</updated>
  </entry>
</feed>`

func TestFetchDayKeepsOnlyMatchingDate(t *testing.T) {
	loc := time.UTC
	now := time.Now().In(loc)
	yesterday := now.AddDate(0, 0, -1)

	body := fmt.Sprintf(atomTemplate,
		yesterday.Format(time.RFC3339),
		now.Format(time.RFC3339),
		now.AddDate(0, 0, -10).Format(time.RFC3339),
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	fetcher := NewFetcher(loc, slog.Default())
	source := domain.FeedSource{Name: "Chanel", URL: server.URL}

	items, err := fetcher.FetchDay(context.Background(), source, yesterday)
	if err != nil {
		t.Fatalf("Failed to fetch feed: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("Expected exactly one eligible entry, got %d", len(items))
	}

	if items[0].Title != "Yesterday's article" {
		t.Errorf("Unexpected entry title: %q", items[0].Title)
	}

	if items[0].URL != "https://example.com/yesterday" {
		t.Errorf("Unexpected entry URL: %q", items[0].URL)
	}
}

func TestFetchDayPropagatesFetchErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewFetcher(time.UTC, slog.Default())
	source := domain.FeedSource{Name: "Broken", URL: server.URL}

	if _, err := fetcher.FetchDay(context.Background(), source, time.Now()); err == nil {
		t.Fatalf("Expected error for failing feed endpoint")
	}
}
