// Package extract turns a message's text and entity spans into candidate URLs.
package extract

import (
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Entity kinds defined by the Bot API that carry a link.
const (
	entityTypeURL      = "url"
	entityTypeTextLink = "text_link"
)

// URLs returns the URLs carried by the message's entities in their original
// order. A text_link entity contributes its own URL independent of the visible
// text; a url entity contributes the literal substring at the entity's span.
// Duplicates are preserved: the same link twice is two submissions. Entities
// of any other kind are ignored.
//
// Offsets and lengths are UTF-16 code units per the Bot API, so the text is
// re-encoded before slicing.
func URLs(text string, entities []tgbotapi.MessageEntity) []string {
	if len(entities) == 0 {
		return nil
	}

	var encoded []uint16
	var urls []string

	for _, entity := range entities {
		switch entity.Type {
		case entityTypeTextLink:
			if entity.URL == "" {
				continue
			}

			urls = append(urls, entity.URL)

		case entityTypeURL:
			if encoded == nil {
				encoded = utf16.Encode([]rune(text))
			}

			start := entity.Offset
			end := entity.Offset + entity.Length
			if start < 0 || end > len(encoded) || start >= end {
				continue
			}

			urls = append(urls, string(utf16.Decode(encoded[start:end])))
		}
	}

	return urls
}
