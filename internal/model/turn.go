package model

// Role identifies who authored a Turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one immutable entry of a conversation history.
type Turn struct {
	Role    Role
	Content string
}

// UserTurn returns a Turn authored by the user.
func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

// AssistantTurn returns a Turn authored by the completion provider.
func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}
