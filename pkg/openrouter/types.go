package openrouter

import (
	"errors"
	"net/http"
)

var ErrMissingAPIKey = errors.New("openrouter: API key is required")

// Config configures the client. BaseURL may point at any OpenAI-compatible API.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	Referer    string // sent as HTTP-Referer for OpenRouter app attribution
	Title      string // sent as X-Title
	HTTPClient *http.Client
}

// Validate checks required fields and fills defaults.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return nil
}

// Message is one chat message. Role is user or assistant.
type Message struct {
	Role    string
	Content string
}

// Request is a text-only chat request.
type Request struct {
	SystemInstruction string
	Messages          []Message
	Temperature       float64
	MaxTokens         int
}

// Response holds the first choice text and token usage.
type Response struct {
	Content      string
	Model        string
	FinishReason string
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
