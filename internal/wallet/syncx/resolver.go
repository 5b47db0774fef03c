package syncx

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/cardvault/internal/common"
	"github.com/dmitrijs2005/cardvault/internal/logging"
	"github.com/dmitrijs2005/cardvault/internal/wallet/localstore"
	"github.com/dmitrijs2005/cardvault/internal/wallet/models"
	"github.com/dmitrijs2005/cardvault/internal/wallet/remotestore"
)

// Action is the user's choice for resolving a sync conflict.
type Action string

const (
	ActionReplaceWithCloud Action = "replace_with_cloud"
	ActionMerge            Action = "merge"
	ActionKeepLocal        Action = "keep_local"
)

// ParseAction validates a user-supplied action string.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionReplaceWithCloud, ActionMerge, ActionKeepLocal:
		return Action(s), nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrInvalidResolveAction, s)
	}
}

// IdentityKey selects which field identifies "the same card" during a merge.
type IdentityKey string

const (
	// IdentityCode treats two cards with the same scanned payload as one
	// physical card even when their ids differ. This is the dedup heuristic
	// the merge uses by default.
	IdentityCode IdentityKey = "code"

	// IdentityId is the strict identity merge.
	IdentityId IdentityKey = "id"
)

// Resolver applies a resolution action to a detected conflict.
type Resolver struct {
	local       localstore.Store
	remote      *remotestore.DocumentStore
	log         logging.Logger
	identityKey IdentityKey
}

func NewResolver(local localstore.Store, remote *remotestore.DocumentStore, log logging.Logger) *Resolver {
	return &Resolver{local: local, remote: remote, log: log, identityKey: IdentityCode}
}

// WithIdentityKey changes the merge identity policy. The zero value keeps
// the default (code equality).
func (r *Resolver) WithIdentityKey(key IdentityKey) *Resolver {
	if key != "" {
		r.identityKey = key
	}
	return r
}

// Resolve applies action to the snapshot in data.
//
//   - replace_with_cloud: the local cache is overwritten with the cloud
//     collection verbatim; nothing is written remotely.
//   - merge: the cloud collection is kept as the base and every local card
//     whose identity key matches no cloud card is appended; the union goes
//     to the local cache and each appended card is pushed to the cloud
//     best-effort (individual failures are logged, not surfaced).
//   - keep_local: every local card is pushed to the cloud best-effort; the
//     local cache already holds the authoritative set and is untouched.
//
// The last-sync timestamp is persisted regardless of the action chosen.
func (r *Resolver) Resolve(ctx context.Context, action Action, data *models.SyncConflictData) error {
	switch action {
	case ActionReplaceWithCloud:
		if err := r.local.SaveCards(ctx, data.CloudCards); err != nil {
			return err
		}

	case ActionMerge:
		if err := r.merge(ctx, data); err != nil {
			return err
		}

	case ActionKeepLocal:
		for _, card := range data.LocalCards {
			if err := r.remote.CreateCard(ctx, card); err != nil {
				r.log.Warn(ctx, "failed to push local card to cloud", "card_id", card.Id, "error", err)
			}
		}

	default:
		return fmt.Errorf("%w: %q", common.ErrInvalidResolveAction, action)
	}

	return r.markSynced(ctx)
}

func (r *Resolver) merge(ctx context.Context, data *models.SyncConflictData) error {
	seen := make(map[string]struct{}, len(data.CloudCards))
	for _, c := range data.CloudCards {
		seen[r.identity(c)] = struct{}{}
	}

	union := append([]models.Card{}, data.CloudCards...)
	var appended []models.Card
	for _, c := range data.LocalCards {
		if _, ok := seen[r.identity(c)]; ok {
			continue
		}
		union = append(union, c)
		appended = append(appended, c)
	}

	if err := r.local.SaveCards(ctx, union); err != nil {
		return err
	}

	for _, card := range appended {
		if err := r.remote.CreateCard(ctx, card); err != nil {
			r.log.Warn(ctx, "failed to push merged card to cloud", "card_id", card.Id, "error", err)
		}
	}
	return nil
}

func (r *Resolver) identity(c models.Card) string {
	if r.identityKey == IdentityId {
		return c.Id
	}
	return c.Code
}

func (r *Resolver) markSynced(ctx context.Context) error {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return r.local.Set(ctx, localstore.KeyLastSync, []byte(ts))
}
