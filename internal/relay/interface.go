package relay

import "context"

// UseCase is the entry point for every inbound chat message, whichever
// transport delivered it.
type UseCase interface {
	// OnInboundMessage validates and schedules msg, then returns at once. The
	// work for one user key runs strictly in arrival order.
	OnInboundMessage(ctx context.Context, msg InboundMessage) Ack
	// Close stops accepting messages and waits for scheduled work.
	Close(ctx context.Context) error
}
