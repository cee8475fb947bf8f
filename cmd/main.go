package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linkdigest/internal/bot"
	"linkdigest/internal/config"
	"linkdigest/internal/database"
	"linkdigest/internal/digest"
	"linkdigest/internal/feed"
	"linkdigest/internal/title"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return
	}

	loc, err := cfg.Location()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load timezone",
			"error", err,
			"timezone", cfg.Timezone)

		return
	}

	sources, err := cfg.Sources()
	if err != nil {
		log.ErrorContext(ctx, "Failed to parse feed sources",
			"error", err)

		return
	}

	db, err := database.New(ctx, cfg.DBPath, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize db",
			"error", err,
			"dbPath", cfg.DBPath)

		return
	}
	defer func() {
		if err = db.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close db",
				"error", err,
				"dbPath", cfg.DBPath)
		}
	}()
	log.InfoContext(ctx, "DB is initialized",
		"dbPath", cfg.DBPath)

	resolver, err := initTitleResolver(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize title resolver",
			"error", err,
			"browserWSURL", cfg.BrowserWSURL)

		return
	}

	botInst, err := bot.New(
		cfg.Token,
		db,
		resolver,
		cfg.ChannelID,
		cfg.AdminChatID,
		cfg.RosterCacheTTL,
		log,
	)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize bot",
			"error", err,
			"channelID", cfg.ChannelID)

		return
	}
	log.InfoContext(ctx, "Bot is initialized",
		"channelID", cfg.ChannelID,
		"feedSourceCount", len(sources))

	fetcher := feed.NewFetcher(loc, log)
	runner := digest.NewRunner(db, botInst, botInst, fetcher, sources, loc, log)

	sched := digest.NewScheduler(ctx, runner, botInst, loc, cfg.DigestHour, log)
	if err = sched.Start(); err != nil {
		log.ErrorContext(ctx, "Failed to start scheduler",
			"error", err,
			"spec", sched.Spec(),
			"timezone", loc.String())

		return
	}
	defer sched.Stop()
	log.InfoContext(ctx, "Scheduler is started",
		"spec", sched.Spec(),
		"timezone", loc.String())

	go func() {
		botInst.Start(ctx)
	}()
	log.InfoContext(ctx, "Bot is started",
		"updateTimeoutSeconds", bot.BotUpdateTimeout)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	sig := <-c
	log.InfoContext(ctx, "Shutdown signal is received",
		"signal", sig.String())
	cancel()

	botInst.Stop()
	log.InfoContext(ctx, "Exiting...",
		"signal", sig.String(),
		"uptimeSeconds", time.Since(start).Seconds())
}

func initTitleResolver(
	ctx context.Context,
	cfg config.Config,
	log *slog.Logger,
) (title.Resolver, error) {
	if cfg.BrowserWSURL == "" {
		log.InfoContext(ctx, "No browser endpoint configured, using HTTP title resolver",
			"titleTimeout", cfg.TitleTimeout.String())

		return title.NewHTTPResolver(cfg.TitleTimeout, log), nil
	}

	resolver, err := title.NewBrowserResolver(cfg.BrowserWSURL, cfg.BrowserToken, cfg.TitleTimeout, log)
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "Browser title resolver is initialized",
		"titleTimeout", cfg.TitleTimeout.String())

	return resolver, nil
}
