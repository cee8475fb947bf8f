package title

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

// HTTPResolver reads page titles with a plain HTTP client. It is used when no
// browser-control endpoint is configured; script-rendered titles are missed,
// which only means more links keep their URL as title.
type HTTPResolver struct {
	client *http.Client
	log    *slog.Logger
}

func NewHTTPResolver(timeout time.Duration, log *slog.Logger) *HTTPResolver {
	return &HTTPResolver{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

func (r *HTTPResolver) Title(ctx context.Context, rawURL string) string {
	target := normalizeURL(rawURL)
	if target == "" {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		r.log.WarnContext(ctx, "Failed to create title request",
			"error", err,
			"url", target)

		return ""
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.WarnContext(ctx, "Failed to fetch page",
			"error", err,
			"url", target)

		return ""
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			r.log.ErrorContext(ctx, "Failed to close response body",
				"error", err,
				"url", target,
				"operation", "Title")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		r.log.WarnContext(ctx, "Unexpected status while fetching page",
			"status", resp.StatusCode,
			"url", target)

		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		r.log.WarnContext(ctx, "Failed to parse page",
			"error", err,
			"url", target)

		return ""
	}

	pageTitle := strings.TrimSpace(doc.Find("title").First().Text())
	if pageTitle == "" {
		r.log.WarnContext(ctx, "Blank title",
			"url", target)

		return ""
	}

	return pageTitle
}
