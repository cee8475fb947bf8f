package domain

import "time"

// Link is one user-submitted URL. Sent is nil while the link is still waiting
// for a digest and set exactly once when it is included in one.
type Link struct {
	ID    string
	Owner string
	URL   string
	Title string
	Sent  *time.Time
}

// FeedSource is a configured external syndication feed whose fresh entries are
// included in digests under a static display name.
type FeedSource struct {
	Name string
	URL  string
}

// DigestItem is a single titled URL inside a digest section.
type DigestItem struct {
	Title string
	URL   string
}
