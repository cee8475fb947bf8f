package title

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserResolver reads page titles through a remote browser-control endpoint.
// Each call opens a fresh session; nothing is reused across calls.
type BrowserResolver struct {
	wsURL   string
	timeout time.Duration
	log     *slog.Logger
}

func NewBrowserResolver(
	wsURL string,
	token string,
	timeout time.Duration,
	log *slog.Logger,
) (*BrowserResolver, error) {
	wsURL = strings.TrimSpace(wsURL)
	if wsURL == "" {
		return nil, fmt.Errorf("browser endpoint is empty")
	}

	if token = strings.TrimSpace(token); token != "" {
		u, err := url.Parse(wsURL)
		if err != nil {
			return nil, fmt.Errorf("parse browser endpoint: %w", err)
		}

		q := u.Query()
		q.Set("token", token)
		u.RawQuery = q.Encode()
		wsURL = u.String()
	}

	return &BrowserResolver{
		wsURL:   wsURL,
		timeout: timeout,
		log:     log,
	}, nil
}

func (r *BrowserResolver) Title(ctx context.Context, rawURL string) string {
	target := normalizeURL(rawURL)
	if target == "" {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(ctx, r.wsURL)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var pageTitle string

	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(target),
		chromedp.Title(&pageTitle),
	); err != nil {
		r.log.WarnContext(ctx, "Failed to resolve title via browser",
			"error", err,
			"url", target)

		return ""
	}

	pageTitle = strings.TrimSpace(pageTitle)
	if pageTitle == "" {
		r.log.WarnContext(ctx, "Blank title",
			"url", target)

		return ""
	}

	r.log.InfoContext(ctx, "Resolved title via browser",
		"url", target,
		"title", pageTitle)

	return pageTitle
}
