package usecase

import (
	"chat-relay/internal/channel"
	"chat-relay/internal/conversation"
	"chat-relay/internal/relay"
	"chat-relay/internal/router"
	"chat-relay/internal/visitor"
	"chat-relay/pkg/keyqueue"
	pkgLog "chat-relay/pkg/log"
)

type implUseCase struct {
	l        pkgLog.Logger
	router   router.Router
	engine   conversation.UseCase
	visitors visitor.UseCase
	ch       channel.Channel
	queue    *keyqueue.Queue
	cfg      relay.Config
}

// New creates the relay. visitors may be nil when no visitor log is kept.
func New(
	l pkgLog.Logger,
	r router.Router,
	engine conversation.UseCase,
	visitors visitor.UseCase,
	ch channel.Channel,
	cfg relay.Config,
) relay.UseCase {
	if cfg.VisitorTimeout <= 0 {
		cfg.VisitorTimeout = relay.DefaultVisitorTimeout
	}
	return &implUseCase{
		l:        l,
		router:   r,
		engine:   engine,
		visitors: visitors,
		ch:       ch,
		queue:    keyqueue.New(l, cfg.MaxPending),
		cfg:      cfg,
	}
}
