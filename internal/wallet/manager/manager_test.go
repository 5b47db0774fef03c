package manager

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/cardvault/internal/common"
	"github.com/dmitrijs2005/cardvault/internal/logging"
	"github.com/dmitrijs2005/cardvault/internal/wallet/localstore"
	"github.com/dmitrijs2005/cardvault/internal/wallet/models"
	"github.com/dmitrijs2005/cardvault/internal/wallet/queue"
	"github.com/dmitrijs2005/cardvault/internal/wallet/remotestore"
	"github.com/dmitrijs2005/cardvault/internal/wallet/syncx"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

type fakeProvider struct {
	mu        sync.Mutex
	files     map[string][]byte
	available bool

	reads    atomic.Int64
	readGate chan struct{} // when set, ReadFile blocks until closed
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{files: map[string][]byte{}, available: true}
}

func (p *fakeProvider) IsAvailable(ctx context.Context) bool { return p.available }

func (p *fakeProvider) Exists(ctx context.Context, path string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.files[path]
	return ok, nil
}

func (p *fakeProvider) MkdirAll(ctx context.Context, path string) error { return nil }

func (p *fakeProvider) ReadFile(ctx context.Context, path string) ([]byte, error) {
	p.reads.Add(1)
	if p.readGate != nil {
		<-p.readGate
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	data, ok := p.files[path]
	if !ok {
		return nil, common.ErrNotFound
	}
	return data, nil
}

func (p *fakeProvider) WriteFile(ctx context.Context, path string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.files[path] = data
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setup(t *testing.T) (*Manager, localstore.Store, *fakeProvider) {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS storage (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)

	log := testLogger()
	local := localstore.NewSQLiteStore(db, log)
	provider := newFakeProvider()
	remote := remotestore.NewDocumentStore(provider, nil, log)
	q := queue.New(local, log, queue.WithBackoff(time.Millisecond))
	m := New(local, remote, q,
		syncx.NewDetector(local, remote, log),
		syncx.NewResolver(local, remote, log),
		log)
	return m, local, provider
}

func card(name, code string) models.Card {
	return models.NewCard(name, "", code, "", "#ffffff")
}

func TestManager_DefaultModeIsLocal(t *testing.T) {
	m, _, _ := setup(t)

	mode, err := m.StorageMode(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.StorageModeLocal, mode)
}

func TestManager_SaveCard_LocalMode(t *testing.T) {
	m, _, provider := setup(t)
	ctx := context.Background()

	require.NoError(t, m.SaveCard(ctx, card("REWE", "123"), true))

	cards, err := m.LoadCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)

	// Local mode never touches the cloud.
	require.Empty(t, provider.files)
	n, err := m.PendingOperationCount(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestManager_SaveCard_OfflineQueuesCreate(t *testing.T) {
	m, local, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, m.SetStorageMode(ctx, models.StorageModeCloud))

	c := card("REWE", "123")
	require.NoError(t, m.SaveCard(ctx, c, false))

	cards, err := local.LoadCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	require.Equal(t, c.Id, cards[0].Id)

	n, err := m.PendingOperationCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestManager_ModeSwitchToCloudClearsLocal(t *testing.T) {
	m, local, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, m.SetStorageMode(ctx, models.StorageModeLocal))
	require.NoError(t, m.SaveCard(ctx, card("REWE", "123"), true))

	require.NoError(t, m.SetStorageMode(ctx, models.StorageModeCloud))

	cards, err := local.LoadCards(ctx)
	require.NoError(t, err)
	require.Empty(t, cards)
}

func TestManager_ModeSwitchToLocalKeepsSnapshot(t *testing.T) {
	m, local, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, m.SetStorageMode(ctx, models.StorageModeCloud))
	require.NoError(t, m.SaveCard(ctx, card("REWE", "123"), true))

	require.NoError(t, m.SetStorageMode(ctx, models.StorageModeLocal))

	cards, err := local.LoadCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
}

func TestManager_QueueReplayScenario(t *testing.T) {
	m, _, provider := setup(t)
	ctx := context.Background()
	require.NoError(t, m.SetStorageMode(ctx, models.StorageModeCloud))

	// Device offline: the write lands locally and queues.
	provider.available = false
	c := card("X", "123")
	require.NoError(t, m.SaveCard(ctx, c, false))

	// Still offline: replay is a no-op, nothing lost.
	require.NoError(t, m.ProcessQueuedOperations(ctx))
	n, err := m.PendingOperationCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// Connectivity returns.
	provider.available = true
	require.NoError(t, m.ProcessQueuedOperations(ctx))

	n, err = m.PendingOperationCount(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	remote := remotestore.NewDocumentStore(provider, nil, testLogger())
	cloudCards, err := remote.ReadCollection(ctx)
	require.NoError(t, err)
	require.Len(t, cloudCards, 1)
	require.Equal(t, c.Id, cloudCards[0].Id)
}

func TestManager_OnlineWriteFailureDegradesToQueue(t *testing.T) {
	m, _, provider := setup(t)
	ctx := context.Background()
	require.NoError(t, m.SetStorageMode(ctx, models.StorageModeCloud))

	provider.available = false

	// Caller believes it is online, but the remote write fails; the save
	// still succeeds and the operation queues.
	require.NoError(t, m.SaveCard(ctx, card("REWE", "123"), true))

	n, err := m.PendingOperationCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestManager_UpdateDeleteToggle(t *testing.T) {
	m, _, provider := setup(t)
	ctx := context.Background()
	require.NoError(t, m.SetStorageMode(ctx, models.StorageModeCloud))

	c := card("REWE", "123")
	require.NoError(t, m.SaveCard(ctx, c, true))

	c.Name = "REWE Markt"
	require.NoError(t, m.UpdateCard(ctx, c, true))

	fav, err := m.ToggleFavorite(ctx, c.Id, true)
	require.NoError(t, err)
	require.True(t, fav)

	remote := remotestore.NewDocumentStore(provider, nil, testLogger())
	cloudCards, err := remote.ReadCollection(ctx)
	require.NoError(t, err)
	require.Len(t, cloudCards, 1)
	require.Equal(t, "REWE Markt", cloudCards[0].Name)
	require.True(t, cloudCards[0].IsFavorite)

	require.NoError(t, m.DeleteCard(ctx, c.Id, true))
	cloudCards, err = remote.ReadCollection(ctx)
	require.NoError(t, err)
	require.Empty(t, cloudCards)

	_, err = m.ToggleFavorite(ctx, c.Id, true)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestManager_LoadCards_CloudRefreshOverwritesLocal(t *testing.T) {
	m, local, provider := setup(t)
	ctx := context.Background()
	require.NoError(t, m.SetStorageMode(ctx, models.StorageModeCloud))

	cloudCard := card("Cloud", "999")
	remote := remotestore.NewDocumentStore(provider, nil, testLogger())
	require.NoError(t, remote.WriteCollection(ctx, []models.Card{cloudCard}))

	cards, err := m.LoadCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	require.Equal(t, cloudCard.Id, cards[0].Id)

	// The refresh landed in the local cache.
	localCards, err := local.LoadCards(ctx)
	require.NoError(t, err)
	require.Equal(t, cards, localCards)
}

func TestManager_LoadCards_FallsBackToLocalOnRemoteFailure(t *testing.T) {
	m, local, provider := setup(t)
	ctx := context.Background()
	require.NoError(t, m.SetStorageMode(ctx, models.StorageModeCloud))

	c := card("Stale", "1")
	require.NoError(t, local.SaveCards(ctx, []models.Card{c}))
	provider.available = false

	cards, err := m.LoadCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	require.Equal(t, c.Id, cards[0].Id)
}

func TestManager_LoadCards_CoalescesConcurrentLoads(t *testing.T) {
	m, _, provider := setup(t)
	ctx := context.Background()
	require.NoError(t, m.SetStorageMode(ctx, models.StorageModeCloud))

	remote := remotestore.NewDocumentStore(provider, nil, testLogger())
	require.NoError(t, remote.WriteCollection(ctx, []models.Card{card("Cloud", "1")}))
	provider.reads.Store(0)

	gate := make(chan struct{})
	provider.readGate = gate

	var wg sync.WaitGroup
	results := make([][]models.Card, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = m.LoadCards(ctx)
		}(i)
	}

	// Let both callers reach the in-flight load before releasing it.
	require.Eventually(t, func() bool { return provider.reads.Load() >= 1 },
		time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	require.EqualValues(t, 1, provider.reads.Load())
	require.Equal(t, results[0], results[1])
}

func TestManager_CheckForSyncConflicts(t *testing.T) {
	m, local, provider := setup(t)
	ctx := context.Background()

	// Local mode: never a conflict.
	data, err := m.CheckForSyncConflicts(ctx)
	require.NoError(t, err)
	require.Nil(t, data)

	require.NoError(t, m.SetStorageMode(ctx, models.StorageModeCloud))

	localCards := []models.Card{card("a", "1"), card("b", "2")}
	require.NoError(t, local.SaveCards(ctx, localCards))
	remote := remotestore.NewDocumentStore(provider, nil, testLogger())
	cloudCards := []models.Card{card("c", "3"), card("d", "4")}
	require.NoError(t, remote.WriteCollection(ctx, cloudCards))

	data, err = m.CheckForSyncConflicts(ctx)
	require.NoError(t, err)
	require.NotNil(t, data)
	require.Equal(t, 2, data.LocalCount)
	require.Equal(t, 2, data.CloudCount)

	require.NoError(t, m.ResolveSyncConflict(ctx, syncx.ActionReplaceWithCloud, data))

	got, err := local.LoadCards(ctx)
	require.NoError(t, err)
	require.Equal(t, cloudCards, got)
}
