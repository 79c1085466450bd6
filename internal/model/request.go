package model

// CreateSessionRequest opens a chat session against a named assistant.
type CreateSessionRequest struct {
	ChatbotName string `json:"chatbot_name" binding:"required"`
	Language    string `json:"language,omitempty"`
}

// SendMessageRequest is a plain text turn.
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// SendImageRequest is an uploaded leaf photo, base64 encoded.
type SendImageRequest struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type" binding:"required"`
	Data     string `json:"data" binding:"required"`
}

// SetLanguageRequest switches the session language preference.
type SetLanguageRequest struct {
	Language string `json:"language" binding:"required"`
}
