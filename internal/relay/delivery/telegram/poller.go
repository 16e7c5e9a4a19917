package telegram

import (
	"context"
	"time"

	"chat-relay/internal/relay"
	pkgLog "chat-relay/pkg/log"
)

const (
	DefaultPollTimeout = 30
	minPollBackoff     = time.Second
	maxPollBackoff     = 30 * time.Second
)

// Poller pulls updates with getUpdates and feeds them to the relay. It is the
// alternative to the webhook; the two must not run against one bot at once.
type Poller struct {
	l           pkgLog.Logger
	src         UpdateSource
	uc          relay.UseCase
	sentinel    string
	pollTimeout int
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewPoller creates a Poller. pollTimeout is the long-poll duration in seconds.
func NewPoller(l pkgLog.Logger, src UpdateSource, uc relay.UseCase, pollTimeout int, sentinel string) *Poller {
	if pollTimeout <= 0 {
		pollTimeout = DefaultPollTimeout
	}
	return &Poller{
		l:           l,
		src:         src,
		uc:          uc,
		sentinel:    sentinel,
		pollTimeout: pollTimeout,
		sleep:       sleepCtx,
	}
}

// Run removes any registered webhook and polls until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.src.DeleteWebhook(ctx, false); err != nil {
		return err
	}
	p.l.Infof(ctx, "relay.delivery.telegram.Poller: polling started (timeout=%ds)", p.pollTimeout)

	var (
		offset  int64
		backoff = minPollBackoff
	)
	for {
		updates, err := p.src.GetUpdates(ctx, offset, p.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.l.Warnf(ctx, "relay.delivery.telegram.Poller: getUpdates failed, retrying in %s: %v", backoff, err)
			if err := p.sleep(ctx, backoff); err != nil {
				return nil
			}
			backoff = min(backoff*2, maxPollBackoff)
			continue
		}
		backoff = minPollBackoff

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}

			msg, err := toInbound(update, p.sentinel)
			if err != nil {
				p.l.Debugf(ctx, "relay.delivery.telegram.Poller: %v", err)
				continue
			}
			p.uc.OnInboundMessage(ctx, msg)
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
