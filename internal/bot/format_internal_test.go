package bot

import (
	"strings"
	"testing"

	"linkdigest/internal/domain"
)

func TestFormatPendingLinks(t *testing.T) {
	links := []domain.Link{
		{Title: "Go 1.24 released", URL: "https://go.dev/blog"},
		{Title: "example.com", URL: "http://example.com"},
	}

	got := formatPendingLinks(links)

	if !strings.HasPrefix(got, "*Links to be shared:*") {
		t.Errorf("Unexpected header:\n%s", got)
	}

	if !strings.Contains(got, `1\. [Go 1\.24 released](https://go.dev/blog)`) {
		t.Errorf("Expected first numbered entry, got:\n%s", got)
	}

	if !strings.Contains(got, `2\. [example\.com](http://example.com)`) {
		t.Errorf("Expected second numbered entry, got:\n%s", got)
	}
}

func TestFormatPendingLinksEmpty(t *testing.T) {
	got := formatPendingLinks(nil)

	if got != `You have no links to be shared\.` {
		t.Errorf("Unexpected empty-list message: %q", got)
	}
}
