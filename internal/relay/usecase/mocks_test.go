package usecase

import (
	"context"
	"fmt"
	"sync"

	"chat-relay/internal/channel"
	"chat-relay/pkg/llmprovider"
)

type mockLogger struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, fmt.Sprintf(template, arg...))
}
func (m *mockLogger) Warn(ctx context.Context, arg ...any) {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warns = append(m.warns, fmt.Sprintf(template, arg...))
}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

type sent struct {
	Op        string
	ChatID    int64
	Text      string
	ParseMode string
	ImageRef  string
	MessageID int64
}

type mockChannel struct {
	mu     sync.Mutex
	ops    []sent
	nextID int64
}

func (m *mockChannel) Send(ctx context.Context, chatID int64, text string, opts channel.SendOptions) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.ops = append(m.ops, sent{Op: "send", ChatID: chatID, Text: text, ParseMode: opts.ParseMode, MessageID: m.nextID})
	return m.nextID, nil
}

func (m *mockChannel) SendImage(ctx context.Context, chatID int64, imageRef, caption string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.ops = append(m.ops, sent{Op: "image", ChatID: chatID, Text: caption, ImageRef: imageRef, MessageID: m.nextID})
	return m.nextID, nil
}

func (m *mockChannel) Delete(ctx context.Context, chatID, messageID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, sent{Op: "delete", ChatID: chatID, MessageID: messageID})
	return nil
}

func (m *mockChannel) NotifyTyping(ctx context.Context, chatID int64) error {
	return nil
}

func (m *mockChannel) recorded() []sent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sent, len(m.ops))
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
	n := len(m.calls)
	m.mu.Unlock()

	if fn == nil {
		return fmt.Sprintf("reply %d", n), nil
	}
	return fn(ctx, messages)
}

func (m *mockProvider) snapshot() [][]llmprovider.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]llmprovider.Message, len(m.calls))
	copy(out, m.calls)
	return out
}

type recordingVisitors struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (r *recordingVisitors) RecordIfAbsent(ctx context.Context, userKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, userKey)
	return r.err
}

func (r *recordingVisitors) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.keys...)
}
