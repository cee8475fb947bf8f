package bot

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// fetchChannelRoster enumerates the shared channel's administrators as the
// roster of allowed submitters. The Bot API exposes no way to list ordinary
// channel members, so channel admin is the membership this bot gates on.
func (b *Bot) fetchChannelRoster(_ context.Context) ([]int64, error) {
	admins, err := b.api.GetChatAdministrators(tgbotapi.ChatAdministratorsConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: b.channelID},
	})
	if err != nil {
		return nil, fmt.Errorf("get chat administrators: %w", err)
	}

	ids := make([]int64, 0, len(admins))
	for _, member := range admins {
		if member.User == nil {
			continue
		}
		ids = append(ids, member.User.ID)
	}

	return ids, nil
}

// OwnerDisplayName resolves a link owner to their first name in the channel.
func (b *Bot) OwnerDisplayName(_ context.Context, owner string) (string, error) {
	userID, err := strconv.ParseInt(owner, 10, 64)
	if err != nil {
		return "", fmt.Errorf("parse owner id %q: %w", owner, err)
	}

	member, err := b.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: b.channelID,
			UserID: userID,
		},
	})
	if err != nil {
		return "", fmt.Errorf("get chat member: %w", err)
	}

	if member.User == nil || member.User.FirstName == "" {
		return "Unknown", nil
	}

	return member.User.FirstName, nil
}

// PublishDigest posts the composed digest to the shared channel with link
// previews suppressed. The text must already be MarkdownV2-escaped.
func (b *Bot) PublishDigest(_ context.Context, text string) error {
	msg := tgbotapi.NewMessage(b.channelID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true

	_, err := b.limiter.Send(msg)
	return err
}

// NotifyAdmin sends failure detail to the administrative contact. Plain text
// so that arbitrary error strings cannot break parsing.
func (b *Bot) NotifyAdmin(_ context.Context, text string) error {
	msg := tgbotapi.NewMessage(b.adminChatID, text)
	msg.DisableWebPagePreview = true

	_, err := b.limiter.Send(msg)
	return err
}
