package usecase

import (
	"chat-relay/internal/channel"
	"chat-relay/internal/conversation"
	"chat-relay/internal/session"
	pkgLog "chat-relay/pkg/log"
)

type implUseCase struct {
	l        pkgLog.Logger
	store    *session.Store
	ch       channel.Channel
	provider conversation.CompletionProvider
	cfg      conversation.Config
}

// New creates the conversation engine.
func New(
	l pkgLog.Logger,
	store *session.Store,
	ch channel.Channel,
	provider conversation.CompletionProvider,
	cfg conversation.Config,
) conversation.UseCase {
	if cfg.PlaceholderText == "" {
		cfg.PlaceholderText = conversation.DefaultPlaceholderText
	}
	if cfg.FallbackText == "" {
		cfg.FallbackText = conversation.DefaultFallbackText
	}
	if cfg.CompletionTimeout <= 0 {
		cfg.CompletionTimeout = conversation.DefaultCompletionTimeout
	}
	return &implUseCase{
		l:        l,
		store:    store,
		ch:       ch,
		provider: provider,
		cfg:      cfg,
	}
}
