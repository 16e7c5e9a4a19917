package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"chat-relay/internal/channel"
	"chat-relay/pkg/llmprovider"
)

type mockLogger struct {
	mu     sync.Mutex
	warns  []string
	errors []string
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warns = append(m.warns, fmt.Sprintf(template, arg...))
}
func (m *mockLogger) Error(ctx context.Context, arg ...any) {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, fmt.Sprintf(template, arg...))
}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

// channelOp is one recorded call on mockChannel.
type channelOp struct {
	Op        string
	ChatID    int64
	Text      string
	ParseMode string
	MessageID int64
}

type mockChannel struct {
	mu     sync.Mutex
	ops    []channelOp
	nextID int64

	failPlaceholder bool
	failDelete      bool
	failTyping      bool
	rejectParseMode bool
	failAllSends    bool
	panicTyping     bool
	panicOnText     string
	placeholderText string
}

func newMockChannel(placeholder string) *mockChannel {
	return &mockChannel{nextID: 100, placeholderText: placeholder}
}

func (m *mockChannel) Send(ctx context.Context, chatID int64, text string, opts channel.SendOptions) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ops = append(m.ops, channelOp{Op: "send", ChatID: chatID, Text: text, ParseMode: opts.ParseMode})
	if m.panicOnText != "" && text == m.panicOnText {
		panic("send: " + text)
	}
	if m.failAllSends {
		return 0, &channel.Error{Op: "send", ChatID: chatID, Err: errors.New("network down")}
	}
	if m.failPlaceholder && text == m.placeholderText {
		return 0, &channel.Error{Op: "send", ChatID: chatID, Err: errors.New("chat not found")}
	}
	if m.rejectParseMode && opts.ParseMode != "" {
		return 0, &channel.Error{Op: "send", ChatID: chatID, Err: errors.New("can't parse entities")}
	}
	m.nextID++
	return m.nextID, nil
}

func (m *mockChannel) SendImage(ctx context.Context, chatID int64, imageRef, caption string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ops = append(m.ops, channelOp{Op: "image", ChatID: chatID, Text: caption})
	m.nextID++
	return m.nextID, nil
}

func (m *mockChannel) Delete(ctx context.Context, chatID, messageID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ops = append(m.ops, channelOp{Op: "delete", ChatID: chatID, MessageID: messageID})
	if m.failDelete {
		return &channel.Error{Op: "delete", ChatID: chatID, Err: errors.New("message can't be deleted")}
	}
	return nil
}

func (m *mockChannel) NotifyTyping(ctx context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ops = append(m.ops, channelOp{Op: "typing", ChatID: chatID})
	if m.panicTyping {
		panic("typing")
	}
	if m.failTyping {
		return &channel.Error{Op: "typing", ChatID: chatID, Err: errors.New("forbidden")}
	}
	return nil
}

func (m *mockChannel) recorded() []channelOp {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]channelOp, len(m.ops))
	copy(out, m.ops)
	return out
}

type mockProvider struct {
	mu       sync.Mutex
	calls    [][]llmprovider.Message
	generate func(ctx context.Context, messages []llmprovider.Message) (string, error)
}

func (m *mockProvider) Generate(ctx context.Context, messages []llmprovider.Message) (string, error) {
	m.mu.Lock()
	cp := make([]llmprovider.Message, len(messages))
	copy(cp, messages)
	m.calls = append(m.calls, cp)
	fn := m.generate
	m.mu.Unlock()

	if fn == nil {
		return "ok", nil
	}
	return fn(ctx, messages)
}

func (m *mockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
