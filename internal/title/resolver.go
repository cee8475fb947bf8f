// Package title resolves a URL to a human-readable page title.
package title

import (
	"context"
	"strings"
)

// Resolver turns a URL into a display title. Implementations never fail: any
// internal error yields an empty string and the caller falls back to using the
// URL itself as the title.
type Resolver interface {
	Title(ctx context.Context, rawURL string) string
}

// normalizeURL defaults to the http scheme when the URL carries none.
func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}

	return "http://" + raw
}
