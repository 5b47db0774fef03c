package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cardvault/internal/dbx"
	"github.com/dmitrijs2005/cardvault/internal/logging"
	"github.com/dmitrijs2005/cardvault/internal/wallet/models"
)

// SQLiteStore implements Store over a DBTX (either *sql.DB or *sql.Tx).
type SQLiteStore struct {
	db  dbx.DBTX
	log logging.Logger
}

// NewSQLiteStore returns a SQLiteStore bound to the given DBTX.
func NewSQLiteStore(db dbx.DBTX, log logging.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, log: log}
}

// Get returns the raw value stored under key, or nil when the key is absent.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM storage WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get storage[%s]: %w", key, err)
	}
	return value, nil
}

// Set upserts the value stored under key.
func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO storage (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set storage[%s]: %w", key, err)
	}
	return nil
}

// Delete removes key from the store. Deleting an absent key is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM storage WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete storage[%s]: %w", key, err)
	}
	return nil
}

// LoadCards returns the cached collection. An absent key yields an empty
// collection; a corrupt blob is logged and likewise treated as empty, so a
// parse failure never takes the app down.
func (s *SQLiteStore) LoadCards(ctx context.Context) ([]models.Card, error) {
	value, err := s.Get(ctx, KeyCards)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return []models.Card{}, nil
	}

	var cards []models.Card
	if err := json.Unmarshal(value, &cards); err != nil {
		s.log.Warn(ctx, "local card collection is corrupt, treating as empty", "error", err)
		return []models.Card{}, nil
	}
	if cards == nil {
		cards = []models.Card{}
	}
	return cards, nil
}

// SaveCards replaces the cached collection with the given one.
func (s *SQLiteStore) SaveCards(ctx context.Context, cards []models.Card) error {
	if cards == nil {
		cards = []models.Card{}
	}
	value, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("failed to marshal card collection: %w", err)
	}
	return s.Set(ctx, KeyCards, value)
}

// ClearCards drops the cached collection.
func (s *SQLiteStore) ClearCards(ctx context.Context) error {
	return s.Delete(ctx, KeyCards)
}
