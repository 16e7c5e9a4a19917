package telegram

import (
	"context"

	"github.com/gin-gonic/gin"

	"chat-relay/internal/relay"
	pkgLog "chat-relay/pkg/log"
	pkgTelegram "chat-relay/pkg/telegram"
)

// Handler is the gin handler for Bot API webhook updates.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// Config holds the webhook guards and the user key mapping.
type Config struct {
	Secret           string
	AllowedIPs       []string
	RateLimitPerMin  int
	UsernameSentinel string
}

type handler struct {
	l        pkgLog.Logger
	uc       relay.UseCase
	guard    *guard
	sentinel string
}

// New creates the webhook handler.
func New(l pkgLog.Logger, uc relay.UseCase, cfg Config) Handler {
	return &handler{
		l:        l,
		uc:       uc,
		guard:    newGuard(cfg),
		sentinel: cfg.UsernameSentinel,
	}
}

// UpdateSource is the long-poll subset of the Bot API client.
type UpdateSource interface {
	DeleteWebhook(ctx context.Context, dropPending bool) error
	GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]pkgTelegram.Update, error)
}

var _ UpdateSource = (*pkgTelegram.Bot)(nil)
