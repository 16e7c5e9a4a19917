package usecase

import (
	"context"
	"errors"
	"strings"

	"chat-relay/internal/channel"
	"chat-relay/internal/conversation"
	"chat-relay/internal/relay"
	"chat-relay/internal/router"
	"chat-relay/pkg/keyqueue"
)

func (uc *implUseCase) OnInboundMessage(ctx context.Context, msg relay.InboundMessage) relay.Ack {
	if err := validate(msg); err != nil {
		uc.l.Warnf(ctx, "internal.relay.usecase.OnInboundMessage: update=%d dropped: %v", msg.UpdateID, err)
		return relay.Ack{Status: relay.AckIgnored}
	}

	uc.l.Infof(ctx, "user(%s): %s", msg.UserKey, msg.Text)

	// The work outlives the webhook request.
	jobCtx := context.WithoutCancel(ctx)
	uc.recordVisitor(jobCtx, msg.UserKey)

	err := uc.queue.Submit(msg.UserKey, func() { uc.process(jobCtx, msg) })
	if err != nil {
		level := uc.l.Warnf
		if errors.Is(err, keyqueue.ErrClosed) {
			level = uc.l.Infof
		}
		level(ctx, "internal.relay.usecase.OnInboundMessage: update=%d user=%s not scheduled: %v", msg.UpdateID, msg.UserKey, err)
		return relay.Ack{Status: relay.AckDropped}
	}
	return relay.Ack{Status: relay.AckAccepted}
}

func (uc *implUseCase) Close(ctx context.Context) error {
	return uc.queue.Close(ctx)
}

func validate(msg relay.InboundMessage) error {
	switch {
	case msg.ChatID == 0:
		return errors.Join(relay.ErrMalformedUpdate, errors.New("missing chat id"))
	case msg.UserKey == "":
		return errors.Join(relay.ErrMalformedUpdate, errors.New("missing user key"))
	case strings.TrimSpace(msg.Text) == "":
		return errors.Join(relay.ErrMalformedUpdate, errors.New("missing text"))
	}
	return nil
}

// recordVisitor writes the visitor row off the request path.
func (uc *implUseCase) recordVisitor(ctx context.Context, userKey string) {
	if uc.visitors == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(ctx, uc.cfg.VisitorTimeout)
		defer cancel()
		if err := uc.visitors.RecordIfAbsent(ctx, userKey); err != nil {
			uc.l.Errorf(ctx, "internal.relay.usecase.recordVisitor: %v", err)
		}
	}()
}

func (uc *implUseCase) process(ctx context.Context, msg relay.InboundMessage) {
	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "internal.relay.usecase.process: recovered panic for user=%s: %v", msg.UserKey, r)
		}
	}()

	if res := uc.router.Route(msg.Text); res.Matched {
		uc.replyCommand(ctx, msg.ChatID, res.Command)
		return
	}

	out := uc.engine.Handle(ctx, conversation.HandleInput{
		ChatID:  msg.ChatID,
		UserKey: msg.UserKey,
		Text:    msg.Text,
	})
	if out.Outcome == conversation.OutcomeReplied {
		uc.l.Infof(ctx, "internal.relay.usecase.process: user=%s outcome=%s", msg.UserKey, out.Outcome)
		return
	}
	uc.l.Warnf(ctx, "internal.relay.usecase.process: user=%s outcome=%s kind=%s", msg.UserKey, out.Outcome, out.FailureKind)
}

func (uc *implUseCase) replyCommand(ctx context.Context, chatID int64, cmd router.Command) {
	var err error
	switch cmd.Reply.Kind {
	case router.ReplyImage:
		_, err = uc.ch.SendImage(ctx, chatID, cmd.Reply.ImageURL, cmd.Reply.Caption)
	default:
		_, err = uc.ch.Send(ctx, chatID, cmd.Reply.Text, channel.SendOptions{ParseMode: cmd.Reply.ParseMode})
	}
	if err != nil {
		uc.l.Errorf(ctx, "internal.relay.usecase.replyCommand: %s reply failed: %v", cmd.Name, err)
	}
}
