package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"linkdigest/internal/extract"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = "Forward me links that you'd like to share with your friends! " +
	"Pending links are posted to the channel digest every morning."

const notMemberText = "Join the channel to forward me links! " +
	"(if you just joined, this may take up to a minute to be picked up)"

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) error {
	text := strings.TrimSpace(message.Text)

	switch {
	case strings.HasPrefix(text, "/start"):
		return b.reply(message, "Welcome!\n\n"+helpText)
	case strings.HasPrefix(text, "/links"):
		return b.handleLinksCommand(ctx, message)
	case strings.HasPrefix(text, "/clear"):
		return b.handleClearCommand(ctx, message)
	default:
		return b.handleSubmission(ctx, message)
	}
}

func (b *Bot) handleLinksCommand(ctx context.Context, message *tgbotapi.Message) error {
	owner := strconv.FormatInt(message.From.ID, 10)

	pending, err := b.db.UnsentLinks(ctx, owner)
	if err != nil {
		return b.reportError(ctx, message, fmt.Errorf("get unsent links: %w", err))
	}

	if len(pending) == 0 {
		return b.reply(message, "You have no links to be shared.")
	}

	return b.replyMarkdown(message, formatPendingLinks(pending))
}

func (b *Bot) handleClearCommand(ctx context.Context, message *tgbotapi.Message) error {
	owner := strconv.FormatInt(message.From.ID, 10)

	count, err := b.db.DeleteUnsentLinks(ctx, owner)
	if err != nil {
		return b.reportError(ctx, message, fmt.Errorf("delete unsent links: %w", err))
	}

	suffix := "s"
	if count == 1 {
		suffix = ""
	}

	return b.reply(message, fmt.Sprintf("Deleted %d link%s.", count, suffix))
}

// handleSubmission gates the sender on channel membership, extracts the
// message's URLs, resolves a title per URL and stores each as a pending link.
func (b *Bot) handleSubmission(ctx context.Context, message *tgbotapi.Message) error {
	userID := message.From.ID

	member, err := b.members.IsMember(ctx, userID)
	if err != nil {
		// Deny rather than fail open when the roster is unavailable.
		return b.reportError(ctx, message, fmt.Errorf("check membership: %w", err))
	}
	if !member {
		b.log.InfoContext(ctx, "User is not a channel member, refusing",
			"userID", userID,
			"username", message.From.UserName)

		return b.reply(message, notMemberText)
	}

	if len(message.Entities) == 0 {
		return b.reply(message, helpText)
	}

	urls := extract.URLs(message.Text, message.Entities)
	if len(urls) == 0 {
		b.log.InfoContext(ctx, "No links in message",
			"userID", userID,
			"entityCount", len(message.Entities))

		return b.reply(message, "Sorry, I couldn't find any links in this message.")
	}

	placeholder, err := b.replyAndReturn(message, "Processing links...")
	if err != nil {
		return fmt.Errorf("send placeholder reply: %w", err)
	}

	owner := strconv.FormatInt(userID, 10)

	return b.withSpinner(ctx, message.Chat.ID, func() error {
		for _, u := range urls {
			pageTitle := b.titles.Title(ctx, u)
			if pageTitle == "" {
				// Resolution failed, the URL itself is the title.
				pageTitle = u
			}

			if _, err := b.db.AddLink(ctx, owner, u, pageTitle); err != nil {
				return b.reportError(ctx, message, fmt.Errorf("store link: %w", err))
			}
		}

		pending, err := b.db.UnsentLinks(ctx, owner)
		if err != nil {
			return b.reportError(ctx, message, fmt.Errorf("get unsent links: %w", err))
		}

		edit := tgbotapi.NewEditMessageText(
			message.Chat.ID,
			placeholder.MessageID,
			formatPendingLinks(pending),
		)
		edit.ParseMode = tgbotapi.ModeMarkdownV2
		edit.DisableWebPagePreview = true

		if _, err = b.limiter.Send(edit); err != nil {
			return fmt.Errorf("edit placeholder reply: %w", err)
		}

		return nil
	})
}

// reportError shows the sender a short diagnostic and forwards the full
// detail to the admin chat.
func (b *Bot) reportError(ctx context.Context, message *tgbotapi.Message, err error) error {
	errs := []error{err}

	if replyErr := b.reply(message, "Sorry, something went wrong. The admin has been notified."); replyErr != nil {
		errs = append(errs, fmt.Errorf("send error reply: %w", replyErr))
	}

	detail := fmt.Sprintf(
		"Error while handling message from %s (%d):\n\n%v",
		senderName(message.From),
		message.From.ID,
		err,
	)
	if notifyErr := b.NotifyAdmin(ctx, detail); notifyErr != nil {
		errs = append(errs, fmt.Errorf("notify admin: %w", notifyErr))
	}

	return errors.Join(errs...)
}

func senderName(user *tgbotapi.User) string {
	if user == nil || user.FirstName == "" {
		return "Unknown sender"
	}
	return user.FirstName
}
