// Package manager is the single entry point of the wallet storage layer. It
// decides the storage mode, fans every mutation out to the local cache
// (always) and the cloud document (when in cloud mode), queues remote writes
// that cannot happen right now, and coalesces concurrent reads.
package manager

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/cardvault/internal/common"
	"github.com/dmitrijs2005/cardvault/internal/logging"
	"github.com/dmitrijs2005/cardvault/internal/wallet/localstore"
	"github.com/dmitrijs2005/cardvault/internal/wallet/models"
	"github.com/dmitrijs2005/cardvault/internal/wallet/queue"
	"github.com/dmitrijs2005/cardvault/internal/wallet/remotestore"
	"github.com/dmitrijs2005/cardvault/internal/wallet/syncx"
)

// Manager orchestrates the local cache, the remote document store and the
// operation queue. It is constructed explicitly and injected into consumers;
// there is no package-level instance.
//
// The mutex serializes local read-modify-write cycles so two concurrent
// mutations cannot lose each other's update.
type Manager struct {
	local    localstore.Store
	remote   *remotestore.DocumentStore
	queue    *queue.Queue
	detector *syncx.Detector
	resolver *syncx.Resolver
	log      logging.Logger

	mu    sync.Mutex
	loads singleflight.Group
}

func New(
	local localstore.Store,
	remote *remotestore.DocumentStore,
	q *queue.Queue,
	detector *syncx.Detector,
	resolver *syncx.Resolver,
	log logging.Logger,
) *Manager {
	return &Manager{
		local:    local,
		remote:   remote,
		queue:    q,
		detector: detector,
		resolver: resolver,
		log:      log,
	}
}

// StorageMode returns the persisted mode; local is the default.
func (m *Manager) StorageMode(ctx context.Context) (models.StorageMode, error) {
	value, err := m.local.Get(ctx, localstore.KeyStorageMode)
	if err != nil {
		return "", err
	}
	if value == nil {
		return models.StorageModeLocal, nil
	}
	return models.ParseStorageMode(string(value))
}

// SetStorageMode persists the new mode. The local→cloud transition clears
// the local cache: the cloud copy becomes authoritative and stale local data
// must not leak into the fresh cloud session. cloud→local leaves the cache
// as-is, so the last synced snapshot becomes the offline working copy.
func (m *Manager) SetStorageMode(ctx context.Context, mode models.StorageMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := m.StorageMode(ctx)
	if err != nil {
		return err
	}

	if err := m.local.Set(ctx, localstore.KeyStorageMode, []byte(mode)); err != nil {
		return err
	}

	if current == models.StorageModeLocal && mode == models.StorageModeCloud {
		m.log.Info(ctx, "switching to cloud mode, clearing local cache")
		return m.local.ClearCards(ctx)
	}
	return nil
}

// LoadCards returns the card collection. Concurrent calls coalesce into one
// underlying load. The local cache is read first; in cloud mode a remote
// read refreshes (overwrites) the cache on success, and any remote failure
// silently falls back to the local snapshot — availability over freshness.
func (m *Manager) LoadCards(ctx context.Context) ([]models.Card, error) {
	v, err, _ := m.loads.Do("loadCards", func() (any, error) {
		return m.loadCards(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Card), nil
}

func (m *Manager) loadCards(ctx context.Context) ([]models.Card, error) {
	localCards, err := m.local.LoadCards(ctx)
	if err != nil {
		return nil, err
	}

	mode, err := m.StorageMode(ctx)
	if err != nil {
		return nil, err
	}
	if mode != models.StorageModeCloud {
		return localCards, nil
	}

	cloudCards, err := m.remote.ReadCollection(ctx)
	if err != nil {
		m.log.Debug(ctx, "remote read failed, serving local snapshot", "error", err)
		return localCards, nil
	}

	if err := m.local.SaveCards(ctx, cloudCards); err != nil {
		m.log.Warn(ctx, "failed to refresh local cache from cloud", "error", err)
		return localCards, nil
	}
	return cloudCards, nil
}

// SaveCard adds a card. The local cache is updated first so the UI reflects
// the change immediately; remote durability is best-effort and asynchronous.
func (m *Manager) SaveCard(ctx context.Context, card models.Card, online bool) error {
	m.mu.Lock()
	cards, err := m.local.LoadCards(ctx)
	if err == nil {
		err = m.local.SaveCards(ctx, append(cards, card))
	}
	m.mu.Unlock()
	if err != nil {
		return err
	}

	return m.syncRemote(ctx, models.NewCreateOperation(card), online)
}

// UpdateCard replaces the card with the same id.
func (m *Manager) UpdateCard(ctx context.Context, card models.Card, online bool) error {
	m.mu.Lock()
	err := m.mutateLocal(ctx, func(cards []models.Card) ([]models.Card, error) {
		for i := range cards {
			if cards[i].Id == card.Id {
				cards[i] = card
				return cards, nil
			}
		}
		return nil, fmt.Errorf("card %s: %w", card.Id, common.ErrNotFound)
	})
	m.mu.Unlock()
	if err != nil {
		return err
	}

	return m.syncRemote(ctx, models.NewUpdateOperation(card), online)
}

// DeleteCard removes the card with the given id. Deleting an absent card is
// a no-op locally but the remote delete is still propagated.
func (m *Manager) DeleteCard(ctx context.Context, cardId string, online bool) error {
	m.mu.Lock()
	err := m.mutateLocal(ctx, func(cards []models.Card) ([]models.Card, error) {
		out := cards[:0]
		for _, c := range cards {
			if c.Id != cardId {
				out = append(out, c)
			}
		}
		return out, nil
	})
	m.mu.Unlock()
	if err != nil {
		return err
	}

	return m.syncRemote(ctx, models.NewDeleteOperation(cardId), online)
}

// ToggleFavorite flips the favorite flag of the card with the given id and
// returns the new value.
func (m *Manager) ToggleFavorite(ctx context.Context, cardId string, online bool) (bool, error) {
	var isFavorite bool

	m.mu.Lock()
	err := m.mutateLocal(ctx, func(cards []models.Card) ([]models.Card, error) {
		for i := range cards {
			if cards[i].Id == cardId {
				cards[i].IsFavorite = !cards[i].IsFavorite
				isFavorite = cards[i].IsFavorite
				return cards, nil
			}
		}
		return nil, fmt.Errorf("card %s: %w", cardId, common.ErrNotFound)
	})
	m.mu.Unlock()
	if err != nil {
		return false, err
	}

	return isFavorite, m.syncRemote(ctx, models.NewFavoriteOperation(cardId, isFavorite), online)
}

// mutateLocal runs a read-modify-write cycle against the local cache.
// Callers must hold m.mu.
func (m *Manager) mutateLocal(ctx context.Context, fn func([]models.Card) ([]models.Card, error)) error {
	cards, err := m.local.LoadCards(ctx)
	if err != nil {
		return err
	}
	cards, err = fn(cards)
	if err != nil {
		return err
	}
	return m.local.SaveCards(ctx, cards)
}

// syncRemote propagates a mutation to the cloud. In local mode it does
// nothing. In cloud mode the remote attempt happens only when the caller
// observed the device online; otherwise, and whenever the attempt fails,
// the operation is queued. The write as a whole never fails once the local
// cache holds it.
func (m *Manager) syncRemote(ctx context.Context, op models.QueuedOperation, online bool) error {
	mode, err := m.StorageMode(ctx)
	if err != nil {
		return err
	}
	if mode != models.StorageModeCloud {
		return nil
	}

	if !online {
		return m.queue.Enqueue(ctx, op)
	}

	if err := m.applyRemote(ctx, op); err != nil {
		m.log.Warn(ctx, "remote write failed, queueing operation",
			"op_id", op.Id, "type", op.Type, "error", err)
		return m.queue.Enqueue(ctx, op)
	}
	return nil
}

func (m *Manager) applyRemote(ctx context.Context, op models.QueuedOperation) error {
	switch op.Type {
	case models.OperationCreate:
		return m.remote.CreateCard(ctx, *op.Card)
	case models.OperationUpdate:
		return m.remote.UpdateCard(ctx, *op.Card)
	case models.OperationDelete:
		return m.remote.DeleteCard(ctx, op.CardId)
	case models.OperationFavorite:
		return m.remote.SetFavorite(ctx, op.CardId, op.IsFavorite)
	default:
		return fmt.Errorf("unknown operation type %q", op.Type)
	}
}

// ProcessQueuedOperations replays the pending queue against the cloud. It is
// a no-op when the queue is empty or the cloud is unreachable.
func (m *Manager) ProcessQueuedOperations(ctx context.Context) error {
	n, err := m.queue.Count(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	if !m.remote.Available(ctx) {
		m.log.Debug(ctx, "cloud unavailable, keeping queued operations", "pending", n)
		return nil
	}

	m.log.Info(ctx, "replaying queued operations", "pending", n)
	return m.queue.Drain(ctx, m.applyRemote)
}

// PendingOperationCount is the UI-facing badge counter.
func (m *Manager) PendingOperationCount(ctx context.Context) (int, error) {
	return m.queue.Count(ctx)
}

// CheckForSyncConflicts diffs local vs cloud. Only meaningful in cloud mode;
// in local mode it reports no conflict.
func (m *Manager) CheckForSyncConflicts(ctx context.Context) (*models.SyncConflictData, error) {
	mode, err := m.StorageMode(ctx)
	if err != nil {
		return nil, err
	}
	if mode != models.StorageModeCloud {
		return nil, nil
	}
	return m.detector.Detect(ctx)
}

// ResolveSyncConflict applies the user's chosen resolution.
func (m *Manager) ResolveSyncConflict(ctx context.Context, action syncx.Action, data *models.SyncConflictData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolver.Resolve(ctx, action, data)
}
