// Package history persists flattened chat turns for authenticated users.
// The live conversation never depends on this path: writes are logged and
// swallowed on failure, and nothing here blocks the exchange.
package history

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"agrimitra/internal/model"
)

// Row is the durable shape of one stored turn. Multimodal content arrives
// already flattened to text; raw image bytes are never written.
type Row struct {
	ID          string    `json:"id,omitempty"`
	UserID      string    `json:"user_id"`
	ChatbotName string    `json:"chatbot_name"`
	Role        string    `json:"role"` // "user" or "bot"
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Store is the thin client over the hosted table.
type Store interface {
	Append(ctx context.Context, row Row) error
	ListByUser(ctx context.Context, userID string) ([]Row, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// Adapter flattens messages into rows and scopes reads/deletes by owner.
type Adapter struct {
	store Store
}

// NewAdapter wraps a store. A nil store disables persistence entirely:
// appends vanish, loads come back empty.
func NewAdapter(store Store) *Adapter {
	return &Adapter{store: store}
}

// AppendIfAuthenticated durably stores msg for ownerID. A no-op when the
// owner is absent. Store failures are logged and swallowed.
func (a *Adapter) AppendIfAuthenticated(ctx context.Context, msg model.Message, ownerID, botIdentity string) {
	if a.store == nil || ownerID == "" {
		return
	}

	role := "user"
	if msg.Role == model.RoleAssistant {
		role = "bot"
	}

	row := Row{
		UserID:      ownerID,
		ChatbotName: botIdentity,
		Role:        role,
		Content:     msg.Content.Flatten(),
		CreatedAt:   msg.Timestamp,
	}

	if err := a.store.Append(ctx, row); err != nil {
		log.Warn().Err(err).
			Str("user_id", ownerID).
			Str("chatbot_name", botIdentity).
			Msg("failed to persist chat message")
	}
}

// LoadHistory returns the owner's rows grouped by bot identity, each group
// ordered by creation time.
func (a *Adapter) LoadHistory(ctx context.Context, ownerID string) (map[string][]Row, error) {
	if a.store == nil {
		return map[string][]Row{}, nil
	}
	rows, err := a.store.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]Row)
	for _, row := range rows {
		grouped[row.ChatbotName] = append(grouped[row.ChatbotName], row)
	}
	for _, group := range grouped {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].CreatedAt.Before(group[j].CreatedAt)
		})
	}
	return grouped, nil
}

// PurgeHistory deletes all of the owner's rows.
func (a *Adapter) PurgeHistory(ctx context.Context, ownerID string) error {
	if a.store == nil {
		return nil
	}
	return a.store.DeleteByUser(ctx, ownerID)
}
