package bot

import (
	"fmt"
	"strings"

	"linkdigest/internal/domain"
	"linkdigest/internal/markdown"
)

// formatPendingLinks renders an owner's pending list as MarkdownV2, numbered
// in submission order.
func formatPendingLinks(links []domain.Link) string {
	if len(links) == 0 {
		return "You have no links to be shared\\."
	}

	var b strings.Builder
	b.WriteString("*Links to be shared:*\n")

	for i, link := range links {
		b.WriteString(fmt.Sprintf("\n%d\\. [%s](%s)", i+1, markdown.EscapeV2(link.Title), link.URL))
	}

	return b.String()
}
