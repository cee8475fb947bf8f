package extract_test

import (
	"slices"
	"testing"

	"linkdigest/internal/extract"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestURLs(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		entities []tgbotapi.MessageEntity
		want     []string
	}{
		{
			"No entities",
			"just some text",
			nil,
			nil,
		},
		{
			"Text link carries its own URL",
			"click here",
			[]tgbotapi.MessageEntity{
				{Type: "text_link", Offset: 0, Length: 10, URL: "https://a.com"},
			},
			[]string{"https://a.com"},
		},
		{
			"Plain URL is the literal substring",
			"check out b.co today",
			[]tgbotapi.MessageEntity{
				{Type: "url", Offset: 10, Length: 4},
			},
			[]string{"b.co"},
		},
		{
			"Order preserved across mixed kinds",
			"see  here b.co",
			[]tgbotapi.MessageEntity{
				{Type: "text_link", Offset: 5, Length: 4, URL: "a.com"},
				{Type: "url", Offset: 10, Length: 4},
			},
			[]string{"a.com", "b.co"},
		},
		{
			"Duplicates are not deduplicated",
			"a.com and a.com",
			[]tgbotapi.MessageEntity{
				{Type: "url", Offset: 0, Length: 5},
				{Type: "url", Offset: 10, Length: 5},
			},
			[]string{"a.com", "a.com"},
		},
		{
			"Unrecognized entity kinds are skipped",
			"bold and /start",
			[]tgbotapi.MessageEntity{
				{Type: "bold", Offset: 0, Length: 4},
				{Type: "bot_command", Offset: 9, Length: 6},
			},
			nil,
		},
		{
			"Offsets are UTF-16 code units",
			"🚀 go.dev rocks",
			[]tgbotapi.MessageEntity{
				// The rocket emoji occupies two UTF-16 code units.
				{Type: "url", Offset: 3, Length: 6},
			},
			[]string{"go.dev"},
		},
		{
			"Out of range span is ignored",
			"short",
			[]tgbotapi.MessageEntity{
				{Type: "url", Offset: 3, Length: 10},
			},
			nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := extract.URLs(test.text, test.entities)

			if !slices.Equal(got, test.want) {
				t.Errorf("URLs() = %v, want %v", got, test.want)
			}
		})
	}
}
