package telegram_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"chat-relay/internal/relay"
	"chat-relay/internal/relay/delivery/telegram"
	pkgTelegram "chat-relay/pkg/telegram"
)

// ── Mocks ──────────────────────────────────────────────────────────────────

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type mockRelay struct {
	mu   sync.Mutex
	msgs []relay.InboundMessage
}

func (m *mockRelay) OnInboundMessage(ctx context.Context, msg relay.InboundMessage) relay.Ack {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, msg)
	return relay.Ack{Status: relay.AckAccepted}
}

func (m *mockRelay) Close(ctx context.Context) error { return nil }

func (m *mockRelay) received() []relay.InboundMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]relay.InboundMessage(nil), m.msgs...)
}

// ── Test Helpers ───────────────────────────────────────────────────────────

func newEngine(cfg telegram.Config) (*gin.Engine, *mockRelay) {
	gin.SetMode(gin.TestMode)
	uc := &mockRelay{}
	engine := gin.New()
	engine.POST("/webhook/telegram", telegram.New(&mockLogger{}, uc, cfg).HandleWebhook)
	return engine, uc
}

func textUpdate(chatID int64, username, text string) pkgTelegram.Update {
	return pkgTelegram.Update{
		UpdateID: 10,
		Message: &pkgTelegram.Message{
			MessageID: 1,
			Chat:      &pkgTelegram.Chat{ID: chatID},
			From:      &pkgTelegram.User{ID: 456, Username: username},
			Text:      text,
		},
	}
}

func post(engine *gin.Engine, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.RemoteAddr = "149.154.167.220:443"
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func postUpdate(engine *gin.Engine, update pkgTelegram.Update, headers map[string]string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(update)
	return post(engine, body, headers)
}

func ackStatus(t *testing.T, w *httptest.ResponseRecorder) relay.AckStatus {
	t.Helper()
	var resp struct {
		Data relay.Ack `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return resp.Data.Status
}

// ── Tests ──────────────────────────────────────────────────────────────────

func TestHandleWebhook_Accepted(t *testing.T) {
	engine, uc := newEngine(telegram.Config{})

	w := postUpdate(engine, textUpdate(123, "alice", "hello bot"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := ackStatus(t, w); got != relay.AckAccepted {
		t.Errorf("ack = %s", got)
	}

	msgs := uc.received()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 relayed message, got %d", len(msgs))
	}
	want := relay.InboundMessage{UpdateID: 10, ChatID: 123, UserKey: "alice", Text: "hello bot"}
	if msgs[0] != want {
		t.Errorf("relayed %+v, want %+v", msgs[0], want)
	}
}

func TestHandleWebhook_MissingUsernameUsesSentinel(t *testing.T) {
	engine, uc := newEngine(telegram.Config{UsernameSentinel: "No_username"})

	postUpdate(engine, textUpdate(123, "", "hello"), nil)

	msgs := uc.received()
	if len(msgs) != 1 || msgs[0].UserKey != "No_username" {
		t.Errorf("expected sentinel user key, got %+v", msgs)
	}
}

func TestHandleWebhook_MalformedIsAcked(t *testing.T) {
	engine, uc := newEngine(telegram.Config{})

	tests := []struct {
		name string
		body []byte
	}{
		{"invalid json", []byte("{bad json")},
		{"no message", []byte(`{"update_id": 5}`)},
		{"no text", []byte(`{"update_id": 6, "message": {"message_id": 1, "chat": {"id": 1}, "photo": []}}`)},
		{"no chat", []byte(`{"update_id": 7, "message": {"message_id": 1, "text": "hi"}}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(engine, tt.body, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			if got := ackStatus(t, w); got != relay.AckIgnored {
				t.Errorf("ack = %s", got)
			}
		})
	}

	if n := len(uc.received()); n != 0 {
		t.Errorf("malformed updates reached the relay: %d", n)
	}
}

func TestHandleWebhook_SecretToken(t *testing.T) {
	engine, uc := newEngine(telegram.Config{Secret: "s3cret"})
	update := textUpdate(1, "alice", "hello")

	t.Run("missing", func(t *testing.T) {
		if w := postUpdate(engine, update, nil); w.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", w.Code)
		}
	})
	t.Run("wrong", func(t *testing.T) {
		w := postUpdate(engine, update, map[string]string{pkgTelegram.SecretTokenHeader: "nope"})
		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", w.Code)
		}
	})
	t.Run("valid", func(t *testing.T) {
		w := postUpdate(engine, update, map[string]string{pkgTelegram.SecretTokenHeader: "s3cret"})
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	if n := len(uc.received()); n != 1 {
		t.Errorf("expected only the authenticated update, got %d", n)
	}
}

func TestHandleWebhook_AllowedIPs(t *testing.T) {
	engine, _ := newEngine(telegram.Config{AllowedIPs: []string{"149.154.160.0/20"}})
	update := textUpdate(1, "alice", "hello")

	if w := postUpdate(engine, update, nil); w.Code != http.StatusOK {
		t.Errorf("address in range: expected 200, got %d", w.Code)
	}
	w := postUpdate(engine, update, map[string]string{"X-Forwarded-For": "10.0.0.1"})
	if w.Code != http.StatusForbidden {
		t.Errorf("address outside range: expected 403, got %d", w.Code)
	}
}

func TestHandleWebhook_RateLimitPerChat(t *testing.T) {
	// 10/min gives a burst of one.
	engine, uc := newEngine(telegram.Config{RateLimitPerMin: 10})

	if w := postUpdate(engine, textUpdate(1, "alice", "one"), nil); w.Code != http.StatusOK {
		t.Fatalf("first update: expected 200, got %d", w.Code)
	}
	if w := postUpdate(engine, textUpdate(1, "alice", "two"), nil); w.Code != http.StatusTooManyRequests {
		t.Errorf("second update: expected 429, got %d", w.Code)
	}
	if w := postUpdate(engine, textUpdate(2, "bob", "one"), nil); w.Code != http.StatusOK {
		t.Errorf("other chat: expected 200, got %d", w.Code)
	}
	if n := len(uc.received()); n != 2 {
		t.Errorf("expected 2 relayed messages, got %d", n)
	}
}

func TestHandleWebhook_SmallRateLimitStillAdmits(t *testing.T) {
	engine, _ := newEngine(telegram.Config{RateLimitPerMin: 3})
	if w := postUpdate(engine, textUpdate(1, "alice", "one"), nil); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
