package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chat-relay/internal/channel"
	"chat-relay/internal/conversation"
	"chat-relay/internal/model"
	"chat-relay/pkg/llmprovider"
)

// Handle runs one exchange while holding the session for input.UserKey:
// trim, record the user turn, show the placeholder, call the provider, then
// either record and send the reply or send the fallback. The placeholder is
// removed after the final message.
func (uc *implUseCase) Handle(ctx context.Context, input conversation.HandleInput) (out conversation.HandleOutput) {
	finalSent := false
	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "internal.conversation.usecase.Handle: recovered panic for user=%s: %v", input.UserKey, r)
			out.Outcome = conversation.OutcomeUndelivered
			if !finalSent && uc.sendFallback(ctx, input.ChatID) {
				out.Reply = uc.cfg.FallbackText
				out.Outcome = conversation.OutcomeFallback
			}
		}
	}()

	sess := uc.store.GetOrCreate(input.UserKey)
	sess.Lock()
	defer sess.Unlock()

	uc.store.Trim(sess)
	uc.store.Append(sess, model.UserTurn(input.Text))
	messages := render(uc.store.Turns(sess))

	placeholderID, err := uc.ch.Send(ctx, input.ChatID, uc.cfg.PlaceholderText, channel.SendOptions{})
	if err != nil {
		uc.l.Warnf(ctx, "internal.conversation.usecase.Handle: placeholder send failed: %v", err)
	}
	out.PlaceholderID = placeholderID
	defer uc.removePlaceholder(ctx, input.ChatID, placeholderID)

	if err := uc.ch.NotifyTyping(ctx, input.ChatID); err != nil {
		uc.l.Debugf(ctx, "internal.conversation.usecase.Handle: typing action failed: %v", err)
	}

	reply, err := uc.generate(ctx, messages)
	if err != nil {
		out.FailureKind = llmprovider.Classify(err)
		uc.l.Warnf(ctx, "internal.conversation.usecase.Handle: completion failed for user=%s kind=%s: %v",
			input.UserKey, out.FailureKind, err)

		out.Reply = uc.cfg.FallbackText
		out.Outcome = conversation.OutcomeFallback
		_, err := uc.ch.Send(ctx, input.ChatID, uc.cfg.FallbackText, channel.SendOptions{})
		finalSent = true
		if err != nil {
			uc.l.Errorf(ctx, "internal.conversation.usecase.Handle: fallback send failed: %v", err)
			out.Outcome = conversation.OutcomeUndelivered
		}
		return out
	}

	uc.store.Append(sess, model.AssistantTurn(reply))
	out.Reply = reply
	out.Outcome = conversation.OutcomeReplied

	err = uc.sendReply(ctx, input.ChatID, reply)
	finalSent = true
	if err != nil {
		uc.l.Errorf(ctx, "internal.conversation.usecase.Handle: reply send failed: %v", err)
		out.Outcome = conversation.OutcomeUndelivered
	}
	return out
}

// sendFallback is the last attempt after a recovered panic. It reports
// whether the fallback reached the chat.
func (uc *implUseCase) sendFallback(ctx context.Context, chatID int64) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "internal.conversation.usecase.sendFallback: recovered panic: %v", r)
			ok = false
		}
	}()
	if _, err := uc.ch.Send(ctx, chatID, uc.cfg.FallbackText, channel.SendOptions{}); err != nil {
		uc.l.Errorf(ctx, "internal.conversation.usecase.sendFallback: %v", err)
		return false
	}
	return true
}

// generate bounds the provider call by the completion timeout and turns a
// provider panic into an error.
func (uc *implUseCase) generate(ctx context.Context, messages []llmprovider.Message) (reply string, err error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.CompletionTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = &llmprovider.ProviderError{
				Provider: "engine",
				Kind:     llmprovider.KindUpstream,
				Err:      fmt.Errorf("%w: %v", conversation.ErrProviderPanic, r),
			}
		}
	}()

	reply, err = uc.provider.Generate(ctx, messages)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", &llmprovider.ProviderError{Provider: "engine", Kind: llmprovider.KindTimeout, Err: err}
	}
	if err == nil && strings.TrimSpace(reply) == "" {
		return "", &llmprovider.ProviderError{Provider: "engine", Kind: llmprovider.KindMalformed, Err: llmprovider.ErrEmptyCompletion}
	}
	return reply, err
}

// sendReply sends with the configured parse mode and retries as plain text
// when the platform rejects the markup.
func (uc *implUseCase) sendReply(ctx context.Context, chatID int64, reply string) error {
	_, err := uc.ch.Send(ctx, chatID, reply, channel.SendOptions{ParseMode: uc.cfg.ReplyParseMode})
	if err == nil || uc.cfg.ReplyParseMode == "" {
		return err
	}

	uc.l.Warnf(ctx, "internal.conversation.usecase.sendReply: %s send failed, retrying as plain text: %v", uc.cfg.ReplyParseMode, err)
	_, err = uc.ch.Send(ctx, chatID, reply, channel.SendOptions{})
	return err
}

func (uc *implUseCase) removePlaceholder(ctx context.Context, chatID, messageID int64) {
	if messageID == 0 {
		return
	}
	if err := uc.ch.Delete(ctx, chatID, messageID); err != nil {
		uc.l.Warnf(ctx, "internal.conversation.usecase.Handle: placeholder delete failed: %v", err)
	}
}
