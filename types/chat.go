package types

import "time"

// Chat message roles as stored and as sent to the completion API.
const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one side of a logged chat exchange. UserID and UserEmail are
// present only when the request carried a verified identity token.
type ChatMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId,omitempty"`
	UserEmail string    `json:"userEmail,omitempty"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// PromptMessage is a role/content pair sent to the completion provider.
type PromptMessage struct {
	Role    string
	Content string
}

// ChatRequest is the request body for the chat endpoint.
type ChatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// Identity is the subject/email pair extracted from a verified bearer token.
type Identity struct {
	Subject string
	Email   string
}
