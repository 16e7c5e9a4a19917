package openrouter

import "time"

const (
	// DefaultBaseURL is the OpenRouter OpenAI-compatible endpoint.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	DefaultModel   = "deepseek/deepseek-r1:free"
	DefaultTimeout = 60 * time.Second
)
