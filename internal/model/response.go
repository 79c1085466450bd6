package model

import "time"

// ErrorResponse is the unified error body for all APIs.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// MessageView is the transcript rendering of a Message. Content is the
// flattened text form; image bytes are never echoed back.
type MessageView struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ToMessageView flattens a message for transport.
func ToMessageView(m Message) MessageView {
	return MessageView{
		ID:        m.ID,
		Role:      string(m.Role),
		Content:   m.Content.Flatten(),
		Timestamp: m.Timestamp,
	}
}

// SessionResponse describes a freshly opened or inspected chat session.
type SessionResponse struct {
	SessionID   string        `json:"session_id"`
	ChatbotName string        `json:"chatbot_name"`
	Language    string        `json:"language"`
	Messages    []MessageView `json:"messages,omitempty"`
}

// ExchangeResponse carries both sides of a completed exchange.
type ExchangeResponse struct {
	UserMessage      MessageView `json:"user_message"`
	AssistantMessage MessageView `json:"assistant_message"`
}
