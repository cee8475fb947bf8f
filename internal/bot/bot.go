package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"linkdigest/internal/database"
	"linkdigest/internal/membership"
	"linkdigest/internal/ratelimiter"
	"linkdigest/internal/title"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	maxBackoffSeconds         = 60
	initialBackoffSeconds     = 3
	backoffGrowthFactor       = 2
	resetOffsetBackoffSeconds = 30
	updateProcessingTimeout   = 60 * time.Second

	BotUpdateTimeout = 60
)

type Bot struct {
	api         *tgbotapi.BotAPI
	limiter     *ratelimiter.RateLimiter
	db          *database.Database
	members     *membership.Cache
	titles      title.Resolver
	channelID   int64
	adminChatID int64
	log         *slog.Logger
}

func New(
	token string,
	db *database.Database,
	titles title.Resolver,
	channelID int64,
	adminChatID int64,
	rosterTTL time.Duration,
	log *slog.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(strings.TrimSpace(token))
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	b := &Bot{
		api:         api,
		limiter:     ratelimiter.New(api, log),
		db:          db,
		titles:      titles,
		channelID:   channelID,
		adminChatID: adminChatID,
		log:         log,
	}

	b.members = membership.New(b.fetchChannelRoster, rosterTTL, log)

	if err = b.registerCommands(); err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}

	return b, nil
}

func (b *Bot) registerCommands() error {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "links", Description: "Show your pending links"},
		tgbotapi.BotCommand{Command: "clear", Description: "Clear your pending links"},
	)

	_, err := b.limiter.Request(commands)
	return err
}

func (b *Bot) Start(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = BotUpdateTimeout

	backoffSeconds := initialBackoffSeconds

	for {
		select {
		case <-ctx.Done():
			b.log.InfoContext(ctx, "Bot context is done",
				"error", ctx.Err())
			return
		default:
		}

		updates := b.api.GetUpdatesChan(updateConfig)
		updatesClosed := false

		for !updatesClosed {
			select {
			case <-ctx.Done():
				b.log.InfoContext(ctx, "Bot context is done",
					"error", ctx.Err())
				return

			case update, ok := <-updates:
				if !ok {
					updatesClosed = true
					continue
				}
				updateConfig.Offset = update.UpdateID + 1

				b.handleUpdate(ctx, &update)
			}
		}

		if ctx.Err() != nil {
			return
		}

		b.log.WarnContext(ctx, "Update channel is closed, reconnecting...",
			"offset", updateConfig.Offset,
			"backoffSeconds", backoffSeconds)

		time.Sleep(time.Duration(backoffSeconds) * time.Second)

		backoffSeconds = updateBackoffSeconds(backoffSeconds)

		if backoffSeconds >= resetOffsetBackoffSeconds {
			updateConfig.Offset = 0
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update *tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	updateCtx, cancel := context.WithTimeout(ctx, updateProcessingTimeout)
	defer cancel()

	if err := b.handleMessage(updateCtx, update.Message); err != nil {
		b.log.ErrorContext(updateCtx, "Failed to handle message",
			"error", err,
			"chatID", update.Message.Chat.ID,
			"userID", update.Message.From.ID,
			"messageID", update.Message.MessageID)
	}
}

func (b *Bot) Stop() {
	if b.limiter != nil {
		b.limiter.Stop()
	}
}

func updateBackoffSeconds(backoffSeconds int) int {
	if backoffSeconds < maxBackoffSeconds {
		backoffSeconds *= backoffGrowthFactor
		if backoffSeconds > maxBackoffSeconds {
			backoffSeconds = maxBackoffSeconds
		}
	}
	return backoffSeconds
}
