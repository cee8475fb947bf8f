// Package feed pulls entries from external syndication sources for digests.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"linkdigest/internal/domain"

	"github.com/mmcdole/gofeed"
)

type Fetcher struct {
	parser *gofeed.Parser
	loc    *time.Location
	log    *slog.Logger
}

func NewFetcher(loc *time.Location, log *slog.Logger) *Fetcher {
	return &Fetcher{
		parser: gofeed.NewParser(),
		loc:    loc,
		log:    log,
	}
}

// FetchDay returns the source's entries whose updated timestamp lands on the
// given calendar date in the fetcher's location. Entries without a usable
// timestamp or link are skipped; fetch and parse failures propagate so the
// scheduler can contain them.
func (f *Fetcher) FetchDay(
	ctx context.Context,
	source domain.FeedSource,
	day time.Time,
) ([]domain.DigestItem, error) {
	parsed, err := f.parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed (URL = %s): %w", source.URL, err)
	}

	targetYear, targetMonth, targetDay := day.In(f.loc).Date()

	var items []domain.DigestItem

	for _, item := range parsed.Items {
		updated := item.UpdatedParsed
		if updated == nil {
			updated = item.PublishedParsed
		}
		if updated == nil {
			f.log.WarnContext(ctx, "Skipping entry without timestamp",
				"feedURL", source.URL,
				"entryTitle", item.Title)

			continue
		}

		y, m, d := updated.In(f.loc).Date()
		if y != targetYear || m != targetMonth || d != targetDay {
			continue
		}

		link := strings.TrimSpace(item.Link)
		if link == "" {
			f.log.WarnContext(ctx, "Skipping entry without link",
				"feedURL", source.URL,
				"entryTitle", item.Title)

			continue
		}

		title := strings.TrimSpace(item.Title)
		if title == "" {
			title = link
		}

		items = append(items, domain.DigestItem{
			Title: title,
			URL:   link,
		})
	}

	return items, nil
}
