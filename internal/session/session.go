// Package session stores session-scoped chat state: the bot identity the
// session was opened with and the farmer's language preference. Transcripts
// are not stored here; persisted history rows are the only durable form of
// a conversation.
package session

import (
	"context"
	"errors"
	"time"
)

// Common errors for session store operations.
var (
	ErrNotFound = errors.New("session not found")
)

// Data is the serializable session state.
type Data struct {
	ID          string    `json:"id"`
	ChatbotName string    `json:"chatbot_name"`
	Language    string    `json:"language"`
	OwnerID     string    `json:"owner_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Store is the interface for session storage drivers.
type Store interface {
	// Create stores a new session.
	Create(ctx context.Context, data *Data) error

	// Get retrieves a session by ID. Returns nil (not an error) when the
	// session is missing or expired.
	Get(ctx context.Context, id string) (*Data, error)

	// Update persists changed session state.
	// Returns ErrNotFound if the session does not exist.
	Update(ctx context.Context, data *Data) error

	// Delete removes a session by ID.
	Delete(ctx context.Context, id string) error

	// Close releases driver resources.
	Close() error
}
