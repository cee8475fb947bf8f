package config

import (
	"fmt"
	"strings"
	"time"

	"linkdigest/internal/domain"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Token       string `env:"TOKEN,required,notEmpty"`
	ChannelID   int64  `env:"CHANNEL_ID,required"`
	AdminChatID int64  `env:"ADMIN_CHAT_ID,required"`

	DBPath         string        `env:"DB_PATH"          envDefault:"links.sqlite"`
	Timezone       string        `env:"TIMEZONE"         envDefault:"UTC"`
	DigestHour     int           `env:"DIGEST_HOUR"      envDefault:"7"`
	RosterCacheTTL time.Duration `env:"ROSTER_CACHE_TTL" envDefault:"1m"`
	TitleTimeout   time.Duration `env:"TITLE_TIMEOUT"    envDefault:"10s"`

	BrowserWSURL string `env:"BROWSER_WS_URL"`
	BrowserToken string `env:"BROWSER_TOKEN"`

	// FeedSources is an ordered semicolon-separated Name=URL list; section
	// order in the digest follows this order.
	FeedSources string `env:"FEED_SOURCES"`
}

func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.DigestHour < 0 || cfg.DigestHour > 23 {
		return Config{}, fmt.Errorf("DIGEST_HOUR must be within [0, 23], got %d", cfg.DigestHour)
	}

	return cfg, nil
}

func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Sources parses FeedSources into the ordered source list.
func (c Config) Sources() ([]domain.FeedSource, error) {
	if strings.TrimSpace(c.FeedSources) == "" {
		return nil, nil
	}

	var sources []domain.FeedSource

	for _, part := range strings.Split(c.FeedSources, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, feedURL, ok := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		feedURL = strings.TrimSpace(feedURL)
		if !ok || name == "" || feedURL == "" {
			return nil, fmt.Errorf("invalid feed source %q, expected Name=URL", part)
		}

		sources = append(sources, domain.FeedSource{Name: name, URL: feedURL})
	}

	return sources, nil
}
