// Package syncx compares the local and cloud card collections when cloud
// mode is (re)activated and applies the user's chosen resolution.
package syncx

import (
	"context"

	"github.com/dmitrijs2005/cardvault/internal/logging"
	"github.com/dmitrijs2005/cardvault/internal/wallet/localstore"
	"github.com/dmitrijs2005/cardvault/internal/wallet/models"
	"github.com/dmitrijs2005/cardvault/internal/wallet/remotestore"
)

// Detector diffs the local cache against the cloud document.
type Detector struct {
	local  localstore.Store
	remote *remotestore.DocumentStore
	log    logging.Logger
}

func NewDetector(local localstore.Store, remote *remotestore.DocumentStore, log logging.Logger) *Detector {
	return &Detector{local: local, remote: remote, log: log}
}

// Detect returns nil when there is nothing to resolve: the local collection
// is empty (the cloud copy is simply trusted) or both sides hold the same
// set of card ids, in any order. Otherwise it snapshots both collections for
// presentation. Remote errors (including unavailability) propagate.
func (d *Detector) Detect(ctx context.Context) (*models.SyncConflictData, error) {
	localCards, err := d.local.LoadCards(ctx)
	if err != nil {
		return nil, err
	}
	if len(localCards) == 0 {
		return nil, nil
	}

	cloudCards, err := d.remote.ReadCollection(ctx)
	if err != nil {
		return nil, err
	}

	if sameIdSet(localCards, cloudCards) {
		return nil, nil
	}

	d.log.Info(ctx, "sync conflict detected",
		"local_count", len(localCards), "cloud_count", len(cloudCards))
	return models.NewSyncConflictData(localCards, cloudCards), nil
}

func sameIdSet(a, b []models.Card) bool {
	if len(a) != len(b) {
		return false
	}
	ids := make(map[string]struct{}, len(a))
	for _, c := range a {
		ids[c.Id] = struct{}{}
	}
	for _, c := range b {
		if _, ok := ids[c.Id]; !ok {
			return false
		}
	}
	return true
}
