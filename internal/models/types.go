package models

// Message represents a single chat message exchanged with the AI provider
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Session represents per-user conversation state
type Session struct {
	UserID       string
	JarvisMode   bool
	Conversation []Message
}

// ChatRequest is the POST /chat request body
type ChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

// ChatResponse is the POST /chat response body
type ChatResponse struct {
	Reply  string `json:"reply"`
	UserID string `json:"user_id"`
}
