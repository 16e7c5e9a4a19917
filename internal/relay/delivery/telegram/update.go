package telegram

import (
	"fmt"

	"chat-relay/internal/relay"
	pkgTelegram "chat-relay/pkg/telegram"
)

// DefaultUsernameSentinel is the user key for senders without a username.
const DefaultUsernameSentinel = "No_username"

// toInbound maps a Bot API update to a relay message. Only plain new text
// messages are relayed; everything else is ErrMalformedUpdate.
func toInbound(update pkgTelegram.Update, sentinel string) (relay.InboundMessage, error) {
	msg := update.Message
	if msg == nil {
		return relay.InboundMessage{}, fmt.Errorf("%w: update %d has no message", relay.ErrMalformedUpdate, update.UpdateID)
	}
	if msg.Chat == nil || msg.Chat.ID == 0 {
		return relay.InboundMessage{}, fmt.Errorf("%w: update %d has no chat", relay.ErrMalformedUpdate, update.UpdateID)
	}
	if msg.Text == "" {
		return relay.InboundMessage{}, fmt.Errorf("%w: update %d has no text", relay.ErrMalformedUpdate, update.UpdateID)
	}

	return relay.InboundMessage{
		UpdateID: update.UpdateID,
		ChatID:   msg.Chat.ID,
		UserKey:  userKey(msg.From, sentinel),
		Text:     msg.Text,
	}, nil
}

func userKey(from *pkgTelegram.User, sentinel string) string {
	if from != nil && from.Username != "" {
		return from.Username
	}
	if sentinel == "" {
		return DefaultUsernameSentinel
	}
	return sentinel
}
