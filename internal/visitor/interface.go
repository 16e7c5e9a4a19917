package visitor

import "context"

// UseCase records every distinct user key that reached the bot.
type UseCase interface {
	// RecordIfAbsent is idempotent. A failure is returned as *PersistenceError
	// and never affects the conversation.
	RecordIfAbsent(ctx context.Context, userKey string) error
}
