// Package localstore persists the on-device working copy of the card
// collection. The whole collection is stored as one JSON blob under a single
// key of a SQLite key-value table; there is no per-record storage. This store
// backs every read path of the wallet, even in cloud mode.
package localstore

import (
	"context"

	"github.com/dmitrijs2005/cardvault/internal/wallet/models"
)

// Conceptual keys of the local key-value store.
const (
	KeyCards            = "loyalty_cards"
	KeyStorageMode      = "storage_mode"
	KeyQueuedOperations = "queued_operations"
	KeyLastSync         = "last_sync_timestamp"
)

// Store is the local cache contract. LoadCards never fails on a missing or
// corrupt blob; both degrade to an empty collection so the app stays usable
// offline. The raw Get/Set/Delete surface is used for the remaining keys
// (storage mode, queued operations, last sync timestamp).
type Store interface {
	LoadCards(ctx context.Context) ([]models.Card, error)
	SaveCards(ctx context.Context, cards []models.Card) error
	ClearCards(ctx context.Context) error

	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
