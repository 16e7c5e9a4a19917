package conversation

import (
	"context"

	"chat-relay/pkg/llmprovider"
)

// UseCase runs one free-text exchange: history bookkeeping, the completion
// call and the replies sent to the chat.
type UseCase interface {
	// Handle never returns an error; failures end in the fallback reply and are
	// reported through HandleOutput.
	Handle(ctx context.Context, input HandleInput) HandleOutput
}

// CompletionProvider produces the assistant reply for a rendered history.
// *llmprovider.Manager satisfies it.
type CompletionProvider interface {
	Generate(ctx context.Context, messages []llmprovider.Message) (string, error)
}
