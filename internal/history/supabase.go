package history

import (
	"context"
	"fmt"

	"github.com/supabase-community/supabase-go"

	"agrimitra/internal/config"
)

// SupabaseStore implements Store against a Supabase chat_history table.
// Row-level ownership enforcement lives in the hosted store's policies;
// this client only scopes queries by user_id.
type SupabaseStore struct {
	client *supabase.Client
	table  string
}

// NewSupabaseStore creates the thin table client.
func NewSupabaseStore(cfg *config.SupabaseConfig) (*SupabaseStore, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("supabase API key is required")
	}

	table := cfg.Table
	if table == "" {
		table = "chat_history"
	}

	client, err := supabase.NewClient(cfg.URL, cfg.APIKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &SupabaseStore{client: client, table: table}, nil
}

// Append inserts one row.
func (s *SupabaseStore) Append(ctx context.Context, row Row) error {
	_, _, err := s.client.From(s.table).
		Insert(row, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert chat row: %w", err)
	}
	return nil
}

// ListByUser returns every row belonging to userID. Ordering is applied by
// the adapter after load, keeping this surface to Select/Eq/ExecuteTo.
func (s *SupabaseStore) ListByUser(ctx context.Context, userID string) ([]Row, error) {
	var rows []Row
	_, err := s.client.From(s.table).
		Select("*", "", false).
		Eq("user_id", userID).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat rows: %w", err)
	}
	return rows, nil
}

// DeleteByUser removes every row belonging to userID.
func (s *SupabaseStore) DeleteByUser(ctx context.Context, userID string) error {
	_, _, err := s.client.From(s.table).
		Delete("", "").
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete chat rows: %w", err)
	}
	return nil
}

// Compile-time check that SupabaseStore implements Store.
var _ Store = (*SupabaseStore)(nil)
