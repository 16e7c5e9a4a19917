package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Bot is the Telegram Bot API client.
type Bot struct {
	token      string
	apiURL     string
	httpClient *http.Client
}

// NewBot creates a new Telegram Bot client with the given token.
func NewBot(token string) *Bot {
	return &Bot{
		token:      token,
		apiURL:     fmt.Sprintf("%s/bot%s", defaultAPIBase, token),
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

// SetAPIURL overrides the full method prefix, token included. Used by tests.
func (b *Bot) SetAPIURL(url string) {
	b.apiURL = strings.TrimRight(url, "/")
}

// SetAPIBase points the client at a self-hosted Bot API server. base is the
// server root; "/bot<token>" is appended.
func (b *Bot) SetAPIBase(base string) {
	b.apiURL = fmt.Sprintf("%s/bot%s", strings.TrimRight(base, "/"), b.token)
}

// SetHTTPClient replaces the underlying HTTP client.
func (b *Bot) SetHTTPClient(c *http.Client) {
	if c != nil {
		b.httpClient = c
	}
}

// SetWebhook registers the webhook URL with Telegram. secretToken is echoed back
// by Telegram in SecretTokenHeader on every delivery; empty disables it.
func (b *Bot) SetWebhook(ctx context.Context, webhookURL, secretToken string) error {
	req := SetWebhookRequest{
		URL:            webhookURL,
		SecretToken:    secretToken,
		AllowedUpdates: []string{"message"},
	}
	return b.call(ctx, "setWebhook", req, nil)
}

// DeleteWebhook removes the webhook so getUpdates can be used.
func (b *Bot) DeleteWebhook(ctx context.Context, dropPending bool) error {
	return b.call(ctx, "deleteWebhook", DeleteWebhookRequest{DropPendingUpdates: dropPending}, nil)
}

// SendMessage sends a plain text message and returns its message id.
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) (int64, error) {
	return b.SendMessageWithMode(ctx, chatID, text, "")
}

// SendMessageWithMode sends a message with optional parse mode (e.g. "Markdown").
// Text longer than MaxMessageLength is truncated.
func (b *Bot) SendMessageWithMode(ctx context.Context, chatID int64, text string, parseMode string) (int64, error) {
	req := SendMessageRequest{
		ChatID:    chatID,
		Text:      truncate(text, MaxMessageLength),
		ParseMode: parseMode,
	}

	var msg Message
	if err := b.call(ctx, "sendMessage", req, &msg); err != nil {
		return 0, err
	}
	return msg.MessageID, nil
}

// SendPhoto sends a photo by URL or file_id with an optional caption.
func (b *Bot) SendPhoto(ctx context.Context, chatID int64, photo, caption string) (int64, error) {
	req := SendPhotoRequest{
		ChatID:  chatID,
		Photo:   photo,
		Caption: truncate(caption, MaxCaptionLength),
	}

	var msg Message
	if err := b.call(ctx, "sendPhoto", req, &msg); err != nil {
		return 0, err
	}
	return msg.MessageID, nil
}

// DeleteMessage deletes a message previously sent by the bot.
func (b *Bot) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	return b.call(ctx, "deleteMessage", DeleteMessageRequest{ChatID: chatID, MessageID: messageID}, nil)
}

// SendChatAction shows a transient status such as "typing" in the chat.
func (b *Bot) SendChatAction(ctx context.Context, chatID int64, action string) error {
	return b.call(ctx, "sendChatAction", SendChatActionRequest{ChatID: chatID, Action: action}, nil)
}

// GetUpdates long-polls for updates with update_id >= offset.
func (b *Bot) GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]Update, error) {
	req := GetUpdatesRequest{
		Offset:         offset,
		Timeout:        timeoutSeconds,
		AllowedUpdates: []string{"message"},
	}

	var updates []Update
	if err := b.call(ctx, "getUpdates", req, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// call posts payload to method and decodes the result field into out when non-nil.
func (b *Bot) call(ctx context.Context, method string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/%s", b.apiURL, method), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return &APIError{Method: method, StatusCode: resp.StatusCode, Description: strings.TrimSpace(string(raw))}
	}
	if !apiResp.OK || resp.StatusCode != http.StatusOK {
		return &APIError{Method: method, StatusCode: resp.StatusCode, Description: apiResp.Description}
	}

	if out != nil && len(apiResp.Result) > 0 {
		if err := json.Unmarshal(apiResp.Result, out); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", method, err)
		}
	}
	return nil
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
