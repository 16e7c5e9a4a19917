package usecase

import (
	"chat-relay/internal/model"
	"chat-relay/pkg/llmprovider"
)

// render maps history to provider messages, oldest first. The persona is
// provider configuration, so no system message is added here.
func render(turns []model.Turn) []llmprovider.Message {
	messages := make([]llmprovider.Message, len(turns))
	for i, t := range turns {
		role := llmprovider.RoleUser
		if t.Role == model.RoleAssistant {
			role = llmprovider.RoleAssistant
		}
		messages[i] = llmprovider.Message{Role: role, Content: t.Content}
	}
	return messages
}
