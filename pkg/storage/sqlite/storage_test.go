package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fadedpez/termitaire/pkg/storage"
	"github.com/fadedpez/termitaire/pkg/storage/storagetest"
	"github.com/fadedpez/termitaire/pkg/table"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestStorage(t *testing.T) {
	suite.Run(t, &storagetest.Suite{
		Factory: func() (storage.Storage, func(time.Time)) {
			s, err := New(filepath.Join(t.TempDir(), "termitaire.db"))
			require.NoError(t, err)
			return s, func(now time.Time) { s.now = func() time.Time { return now } }
		},
	})
}

func TestStorageReopensExistingDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "termitaire.db")

	first, err := New(path)
	require.NoError(t, err)

	tbl := table.New()
	tbl.Stock().Next()
	tbl.Stock().Next()
	require.NoError(t, first.SaveGame(ctx, &storage.SavedGame{
		ID:       "game-1",
		Player:   "player-1",
		Snapshot: tbl.Snapshot(),
	}))
	require.NoError(t, first.Close())

	second, err := New(path)
	require.NoError(t, err, "migrations must be skipped on reopen")
	defer second.Close()

	loaded, err := second.LoadGame(ctx, "game-1")
	require.NoError(t, err)
	require.Equal(t, 22, loaded.Snapshot.Stock.Cursor)
}
