package model

import (
	"fmt"
	"strings"
	"time"

	"agrimitra/internal/pkg/id"
)

// Role identifies which party contributed a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Content is the sealed union of message payloads. Keeping the union closed
// lets the gateway serialization switch stay exhaustive.
type Content interface {
	isContent()

	// Flatten reduces the content to the plain-text form used for durable
	// storage and transcript display. Raw image bytes never survive this.
	Flatten() string
}

// TextContent is a plain text payload.
type TextContent struct {
	Text string `json:"text"`
}

func (TextContent) isContent() {}

// Flatten returns the text verbatim.
func (t TextContent) Flatten() string {
	return t.Text
}

// ImageContent is an inline image encoded as a base64 data URI.
type ImageContent struct {
	MimeType string `json:"mime_type"`
	DataURI  string `json:"data_uri"`
	Name     string `json:"name,omitempty"`
}

func (ImageContent) isContent() {}

// Flatten replaces the image with a text marker; the bytes are dropped.
func (i ImageContent) Flatten() string {
	name := i.Name
	if name == "" {
		name = "photo"
	}
	return fmt.Sprintf("[Image uploaded: %s]", name)
}

// MixedContent is an ordered sequence of text and image parts.
type MixedContent struct {
	Parts []Content `json:"parts"`
}

func (MixedContent) isContent() {}

// Flatten keeps only the image markers when images are present, so a
// captioned upload stores as "[Image uploaded: ...]" rather than the caption.
func (m MixedContent) Flatten() string {
	var images, texts []string
	for _, p := range m.Parts {
		switch p.(type) {
		case ImageContent:
			images = append(images, p.Flatten())
		default:
			texts = append(texts, p.Flatten())
		}
	}
	if len(images) > 0 {
		return strings.Join(images, " ")
	}
	return strings.Join(texts, " ")
}

// Message is a single turn in a conversation. Role and Content are fixed at
// creation; edits create a new message.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   Content   `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message with a fresh id and timestamp.
func NewMessage(role Role, content Content) Message {
	return Message{
		ID:        id.New(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}
