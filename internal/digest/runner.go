// Package digest aggregates pending links and fresh feed entries into one
// daily message for the shared channel.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"linkdigest/internal/domain"
)

// Store is the slice of the link store the runner needs.
type Store interface {
	UnsentLinks(ctx context.Context, owner string) ([]domain.Link, error)
	MarkLinkSent(ctx context.Context, id string) error
}

// NameResolver resolves a link owner to a display name via the chat platform.
type NameResolver interface {
	OwnerDisplayName(ctx context.Context, owner string) (string, error)
}

// Publisher dispatches a composed digest to the shared channel.
type Publisher interface {
	PublishDigest(ctx context.Context, text string) error
}

// EntrySource produces a feed source's eligible items for a given day.
type EntrySource interface {
	FetchDay(ctx context.Context, source domain.FeedSource, day time.Time) ([]domain.DigestItem, error)
}

type Runner struct {
	store     Store
	names     NameResolver
	publisher Publisher
	entries   EntrySource
	sources   []domain.FeedSource
	loc       *time.Location
	now       func() time.Time
	log       *slog.Logger
}

func NewRunner(
	store Store,
	names NameResolver,
	publisher Publisher,
	entries EntrySource,
	sources []domain.FeedSource,
	loc *time.Location,
	log *slog.Logger,
) *Runner {
	return &Runner{
		store:     store,
		names:     names,
		publisher: publisher,
		entries:   entries,
		sources:   sources,
		loc:       loc,
		now:       time.Now,
		log:       log,
	}
}

// Run performs a single aggregation and dispatch cycle: yesterday's feed
// entries grouped under their source names, then every pending link grouped
// under its owner's resolved display name. Each link is marked sent the
// moment it is grouped; a later failure in the same run leaves those marks in
// place. That favors at-most-once delivery over retry-may-duplicate.
func (r *Runner) Run(ctx context.Context) error {
	yesterday := r.now().In(r.loc).AddDate(0, 0, -1)

	var groups []group

	for _, source := range r.sources {
		items, err := r.entries.FetchDay(ctx, source, yesterday)
		if err != nil {
			return fmt.Errorf("fetch feed entries (%s): %w", source.Name, err)
		}
		if len(items) == 0 {
			continue
		}

		groups = appendToGroup(groups, source.Name, items...)
	}

	links, err := r.store.UnsentLinks(ctx, "")
	if err != nil {
		return fmt.Errorf("fetch unsent links: %w", err)
	}

	for _, link := range links {
		name, err := r.names.OwnerDisplayName(ctx, link.Owner)
		if err != nil {
			return fmt.Errorf("resolve owner %s: %w", link.Owner, err)
		}

		groups = appendToGroup(groups, name, domain.DigestItem{
			Title: link.Title,
			URL:   link.URL,
		})

		if err = r.store.MarkLinkSent(ctx, link.ID); err != nil {
			return fmt.Errorf("mark link %s sent: %w", link.ID, err)
		}
	}

	if len(groups) == 0 {
		r.log.InfoContext(ctx, "Nothing to send, skipping digest",
			"date", yesterday.Format(time.DateOnly))

		return nil
	}

	if err = r.publisher.PublishDigest(ctx, composeDigest(groups)); err != nil {
		return fmt.Errorf("publish digest: %w", err)
	}

	r.log.InfoContext(ctx, "Digest is published",
		"date", yesterday.Format(time.DateOnly),
		"groupCount", len(groups),
		"linkCount", len(links))

	return nil
}

// appendToGroup merges items into an existing group with the same display
// name or appends a new group, preserving first-seen order.
func appendToGroup(groups []group, name string, items ...domain.DigestItem) []group {
	for i := range groups {
		if groups[i].name == name {
			groups[i].items = append(groups[i].items, items...)
			return groups
		}
	}

	return append(groups, group{name: name, items: items})
}
