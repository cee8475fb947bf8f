package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"linkdigest/internal/domain"

	"github.com/google/uuid"
)

// AddLink stores a new pending link under a fresh id. A blank title falls back
// to the URL so every stored link carries a usable display title.
func (d *Database) AddLink(
	ctx context.Context,
	owner string,
	linkURL string,
	title string,
) (domain.Link, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return domain.Link{}, errors.New("owner is empty")
	}

	linkURL = strings.TrimSpace(linkURL)
	if linkURL == "" {
		return domain.Link{}, errors.New("link URL is empty")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = linkURL
	}

	link := domain.Link{
		ID:    uuid.NewString(),
		Owner: owner,
		URL:   linkURL,
		Title: title,
	}

	query := "insert into links (id, owner, url, title, sent) values (?, ?, ?, ?, null)"

	if _, err := d.db.ExecContext(ctx, query, link.ID, link.Owner, link.URL, link.Title); err != nil {
		return domain.Link{}, fmt.Errorf("insert link: %w", err)
	}

	return link, nil
}

// UnsentLinks returns pending links in submission order. An empty owner means
// all owners; the result is a snapshot, not a live view.
func (d *Database) UnsentLinks(ctx context.Context, owner string) ([]domain.Link, error) {
	owner = strings.TrimSpace(owner)

	query := "select id, owner, url, title from links where sent is null order by rowid"
	args := []any{}

	if owner != "" {
		query = "select id, owner, url, title from links where owner = ? and sent is null order by rowid"
		args = append(args, owner)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			d.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"owner", owner,
				"operation", "UnsentLinks")
		}
	}()

	var links []domain.Link
	for rows.Next() {
		var l domain.Link
		if err = rows.Scan(&l.ID, &l.Owner, &l.URL, &l.Title); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		links = append(links, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return links, nil
}

// DeleteUnsentLinks removes all of the owner's pending links and returns the
// number removed. Links already included in a digest are immune.
func (d *Database) DeleteUnsentLinks(ctx context.Context, owner string) (int64, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return 0, errors.New("owner is empty")
	}

	query := "delete from links where owner = ? and sent is null"

	res, err := d.db.ExecContext(ctx, query, owner)
	if err != nil {
		return 0, fmt.Errorf("delete links: %w", err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted rows: %w", err)
	}

	return count, nil
}

// MarkLinkSent stamps a link with the current time. Re-invoking refreshes the
// timestamp; the link already disappeared from UnsentLinks after the first
// call, so the operation is idempotent for every consumer.
func (d *Database) MarkLinkSent(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("link id is empty")
	}

	query := "update links set sent = ? where id = ?"

	if _, err := d.db.ExecContext(ctx, query, time.Now().Unix(), id); err != nil {
		return fmt.Errorf("update link: %w", err)
	}

	return nil
}
