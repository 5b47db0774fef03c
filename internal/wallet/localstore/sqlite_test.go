package localstore

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/cardvault/internal/logging"
	"github.com/dmitrijs2005/cardvault/internal/wallet/models"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:localstore?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS storage (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
DELETE FROM storage;
`)
	require.NoError(t, err)
	return db
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	return NewSQLiteStore(setupDB(t), testLogger())
}

func TestSQLiteStore_KV(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	v, err := s.Get(ctx, KeyStorageMode)
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, s.Set(ctx, KeyStorageMode, []byte("cloud")))
	v, err = s.Get(ctx, KeyStorageMode)
	require.NoError(t, err)
	require.Equal(t, []byte("cloud"), v)

	// Upsert overwrites.
	require.NoError(t, s.Set(ctx, KeyStorageMode, []byte("local")))
	v, err = s.Get(ctx, KeyStorageMode)
	require.NoError(t, err)
	require.Equal(t, []byte("local"), v)

	require.NoError(t, s.Delete(ctx, KeyStorageMode))
	v, err = s.Get(ctx, KeyStorageMode)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLiteStore_LoadCards_EmptyWhenAbsent(t *testing.T) {
	s := newStore(t)

	cards, err := s.LoadCards(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cards)
	require.Empty(t, cards)
}

func TestSQLiteStore_SaveLoadClear(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	want := []models.Card{
		models.NewCard("REWE", "rewe", "4049929001", "", "#cc0000"),
		models.NewCard("Lidl", models.BrandCustom, "2400001", "", "#0050aa"),
	}
	require.NoError(t, s.SaveCards(ctx, want))

	got, err := s.LoadCards(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)

	require.NoError(t, s.ClearCards(ctx))
	got, err = s.LoadCards(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSQLiteStore_LoadCards_CorruptBlobIsEmpty(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyCards, []byte(`{"not":"an array`)))

	cards, err := s.LoadCards(ctx)
	require.NoError(t, err)
	require.Empty(t, cards)
}

func TestOpen_AppliesMigrations(t *testing.T) {
	db, err := Open(context.Background(), "file:localstore_migrated?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewSQLiteStore(db, testLogger())
	require.NoError(t, s.Set(context.Background(), "k", []byte("v")))
}
