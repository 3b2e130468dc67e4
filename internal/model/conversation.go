package model

// Role tags a conversation turn as coming from the client or the assistant.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message in a chat transcript.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
