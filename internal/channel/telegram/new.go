package telegram

import (
	"context"

	"chat-relay/internal/channel"
	pkgTelegram "chat-relay/pkg/telegram"
)

// BotAPI is the subset of the Bot API client used by the channel.
type BotAPI interface {
	SendMessageWithMode(ctx context.Context, chatID int64, text, parseMode string) (int64, error)
	SendPhoto(ctx context.Context, chatID int64, photo, caption string) (int64, error)
	DeleteMessage(ctx context.Context, chatID, messageID int64) error
	SendChatAction(ctx context.Context, chatID int64, action string) error
}

type implChannel struct {
	bot BotAPI
}

var _ BotAPI = (*pkgTelegram.Bot)(nil)

// New wraps a Bot API client as a channel.Channel.
func New(bot BotAPI) channel.Channel {
	return &implChannel{bot: bot}
}
