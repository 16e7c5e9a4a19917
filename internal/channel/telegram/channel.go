package telegram

import (
	"context"

	"chat-relay/internal/channel"
	pkgTelegram "chat-relay/pkg/telegram"
)

func (c *implChannel) Send(ctx context.Context, chatID int64, text string, opts channel.SendOptions) (int64, error) {
	id, err := c.bot.SendMessageWithMode(ctx, chatID, text, opts.ParseMode)
	if err != nil {
		return 0, &channel.Error{Op: "send", ChatID: chatID, Err: err}
	}
	return id, nil
}

func (c *implChannel) SendImage(ctx context.Context, chatID int64, imageRef, caption string) (int64, error) {
	id, err := c.bot.SendPhoto(ctx, chatID, imageRef, caption)
	if err != nil {
		return 0, &channel.Error{Op: "send_image", ChatID: chatID, Err: err}
	}
	return id, nil
}

func (c *implChannel) Delete(ctx context.Context, chatID, messageID int64) error {
	if err := c.bot.DeleteMessage(ctx, chatID, messageID); err != nil {
		return &channel.Error{Op: "delete", ChatID: chatID, Err: err}
	}
	return nil
}

func (c *implChannel) NotifyTyping(ctx context.Context, chatID int64) error {
	if err := c.bot.SendChatAction(ctx, chatID, pkgTelegram.ChatActionTyping); err != nil {
		return &channel.Error{Op: "typing", ChatID: chatID, Err: err}
	}
	return nil
}
