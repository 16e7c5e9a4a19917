package conversation

import (
	"time"

	"chat-relay/pkg/llmprovider"
)

// HandleInput is one inbound free-text message.
type HandleInput struct {
	ChatID  int64
	UserKey string
	Text    string
}

// Outcome summarizes how a request ended.
type Outcome string

const (
	// OutcomeReplied: completion succeeded and the reply was handed to the channel.
	OutcomeReplied Outcome = "replied"
	// OutcomeFallback: completion failed and the fallback sentence was sent.
	OutcomeFallback Outcome = "fallback"
	// OutcomeUndelivered: the final message could not be sent.
	OutcomeUndelivered Outcome = "undelivered"
)

// HandleOutput reports what Handle did, for logging and tests.
type HandleOutput struct {
	Outcome       Outcome
	Reply         string
	PlaceholderID int64
	FailureKind   llmprovider.ErrorKind
}

// Config tunes the engine.
type Config struct {
	PlaceholderText   string
	FallbackText      string
	CompletionTimeout time.Duration
	ReplyParseMode    string
}

const (
	DefaultPlaceholderText   = "typing..."
	DefaultFallbackText      = "Sorry, I couldn't process your request."
	DefaultCompletionTimeout = 60 * time.Second
)
