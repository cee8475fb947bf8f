package digest

import (
	"fmt"
	"strings"

	"linkdigest/internal/domain"
	"linkdigest/internal/markdown"
)

type group struct {
	name  string
	items []domain.DigestItem
}

// composeDigest renders the digest as one MarkdownV2 message: a section per display
// name, items numbered within each section in discovery order.
func composeDigest(groups []group) string {
	var b strings.Builder

	b.WriteString("📬 *Daily digest*\n")

	for _, g := range groups {
		b.WriteString(fmt.Sprintf("\n*%s*:\n", markdown.EscapeV2(g.name)))

		for i, item := range g.items {
			b.WriteString(fmt.Sprintf("%d\\. [%s](%s)\n", i+1, markdown.EscapeV2(item.Title), item.URL))
		}
	}

	return b.String()
}
