package title

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"Bare host gets http scheme", "example.com", "http://example.com"},
		{"Explicit http kept", "http://example.com", "http://example.com"},
		{"Explicit https kept", "https://example.com", "https://example.com"},
		{"Surrounding whitespace trimmed", "  example.com ", "http://example.com"},
		{"Empty input stays empty", "   ", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := normalizeURL(test.raw); got != test.want {
				t.Errorf("normalizeURL(%q) = %q, want %q", test.raw, got, test.want)
			}
		})
	}
}

func TestHTTPResolverReadsPageTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><head><title> Example Domain </title></head><body></body></html>"))
	}))
	defer server.Close()

	resolver := NewHTTPResolver(5*time.Second, slog.Default())

	if got := resolver.Title(context.Background(), server.URL); got != "Example Domain" {
		t.Fatalf("Unexpected title: %q", got)
	}
}

func TestHTTPResolverBlankTitleYieldsEmptyString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><head><title>  </title></head><body></body></html>"))
	}))
	defer server.Close()

	resolver := NewHTTPResolver(5*time.Second, slog.Default())

	if got := resolver.Title(context.Background(), server.URL); got != "" {
		t.Fatalf("Expected empty string for blank title, got %q", got)
	}
}

func TestHTTPResolverErrorStatusYieldsEmptyString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	resolver := NewHTTPResolver(5*time.Second, slog.Default())

	if got := resolver.Title(context.Background(), server.URL); got != "" {
		t.Fatalf("Expected empty string for error status, got %q", got)
	}
}

func TestHTTPResolverTimeoutYieldsEmptyString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("<html><head><title>Too late</title></head></html>"))
	}))
	defer server.Close()

	resolver := NewHTTPResolver(50*time.Millisecond, slog.Default())

	if got := resolver.Title(context.Background(), server.URL); got != "" {
		t.Fatalf("Expected empty string on timeout, got %q", got)
	}
}

func TestHTTPResolverUnreachableHostYieldsEmptyString(t *testing.T) {
	resolver := NewHTTPResolver(time.Second, slog.Default())

	if got := resolver.Title(context.Background(), "http://127.0.0.1:1"); got != "" {
		t.Fatalf("Expected empty string for unreachable host, got %q", got)
	}
}
