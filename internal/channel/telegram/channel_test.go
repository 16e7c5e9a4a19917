package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chat-relay/internal/channel"
	pkgTelegram "chat-relay/pkg/telegram"
)

func TestChannel_OverBotAPI(t *testing.T) {
	var calls []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		calls = append(calls, method)
		switch method {
		case "sendMessage", "sendPhoto":
			w.Write([]byte(`{"ok": true, "result": {"message_id": 99, "chat": {"id": 1, "type": "private"}}}`))
		case "deleteMessage":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"ok": false, "error_code": 400, "description": "Bad Request: message to delete not found"}`))
		default:
			w.Write([]byte(`{"ok": true, "result": true}`))
		}
	}))
	defer ts.Close()

	bot := pkgTelegram.NewBot("t")
	bot.SetAPIURL(ts.URL)
	ch := New(bot)
	ctx := context.Background()

	id, err := ch.Send(ctx, 1, "typing...", channel.SendOptions{})
	if err != nil || id != 99 {
		t.Fatalf("Send() = %d, %v", id, err)
	}

	id, err = ch.SendImage(ctx, 1, "https://example.com/logo.png", "Welcome")
	if err != nil || id != 99 {
		t.Fatalf("SendImage() = %d, %v", id, err)
	}

	if err := ch.NotifyTyping(ctx, 1); err != nil {
		t.Fatalf("NotifyTyping() error: %v", err)
	}

	err = ch.Delete(ctx, 1, 99)
	var chErr *channel.Error
	if !errors.As(err, &chErr) {
		t.Fatalf("expected *channel.Error, got %v", err)
	}
	if chErr.Op != "delete" || chErr.ChatID != 1 {
		t.Errorf("unexpected channel error %+v", chErr)
	}
	var apiErr *pkgTelegram.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected wrapped *APIError, got %v", err)
	}

	want := []string{"sendMessage", "sendPhoto", "sendChatAction", "deleteMessage"}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Errorf("expected calls %v, got %v", want, calls)
	}
}
