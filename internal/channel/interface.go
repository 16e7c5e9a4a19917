package channel

import "context"

// Channel delivers messages to a chat on the messaging platform. Every
// failure is returned as *Error.
type Channel interface {
	Send(ctx context.Context, chatID int64, text string, opts SendOptions) (int64, error)
	SendImage(ctx context.Context, chatID int64, imageRef, caption string) (int64, error)
	Delete(ctx context.Context, chatID, messageID int64) error
	NotifyTyping(ctx context.Context, chatID int64) error
}
