package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"chat-relay/config"
)

func TestWebhookURL(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"https://bot.example.com", "/webhook/telegram", "https://bot.example.com/webhook/telegram"},
		{"https://bot.example.com/", "/webhook/telegram", "https://bot.example.com/webhook/telegram"},
		{"https://bot.example.com/webhook/telegram", "/webhook/telegram", "https://bot.example.com/webhook/telegram"},
	}
	for _, tt := range tests {
		if got := webhookURL(tt.base, tt.path); got != tt.want {
			t.Errorf("webhookURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestPollNgrok(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tunnels" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if calls.Add(1) == 1 {
			w.Write([]byte(`{"tunnels": []}`))
			return
		}
		w.Write([]byte(`{"tunnels": [
			{"public_url": "http://abc.ngrok.io", "proto": "http"},
			{"public_url": "https://abc.ngrok.io", "proto": "https"}
		]}`))
	}))
	defer srv.Close()

	url, err := pollNgrok(context.Background(), srv.URL, 3, time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://abc.ngrok.io" {
		t.Errorf("url = %q", url)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestPollNgrokGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tunnels": []}`))
	}))
	defer srv.Close()

	if _, err := pollNgrok(context.Background(), srv.URL, 2, time.Millisecond); err == nil {
		t.Error("expected error when no tunnel appears")
	}
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()
	for _, path := range [][]string{{"serve"}, {"poll"}, {"webhook", "set"}, {"webhook", "delete"}} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd == nil {
			t.Errorf("command %v not found: %v", path, err)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
}

func TestNewBotSelfHostedAPIBase(t *testing.T) {
	var gotPath atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.Path)
		w.Write([]byte(`{"ok": true, "result": {"message_id": 7, "chat": {"id": 42, "type": "private"}}}`))
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Telegram.BotToken = "123:secret"
	cfg.Telegram.APIURL = srv.URL + "/"

	id, err := newBot(cfg).SendMessage(context.Background(), 42, "hello")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if id != 7 {
		t.Errorf("message id = %d, want 7", id)
	}
	if got, want := gotPath.Load(), "/bot123:secret/sendMessage"; got != want {
		t.Errorf("request path = %v, want %q", got, want)
	}
}
