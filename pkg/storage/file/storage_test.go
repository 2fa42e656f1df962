package file

import (
	"context"
	"os"
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
			s, err := New(&storage.Options{
				Path:        filepath.Join(t.TempDir(), "games.json"),
				MaxGameAge:  time.Hour,
				AutoCleanup: false,
			})
			require.NoError(t, err)
			return s, func(now time.Time) { s.now = func() time.Time { return now } }
		},
	})
}

func TestStoragePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "games.json")
	options := &storage.Options{Path: path}

	first, err := New(options)
	require.NoError(t, err)

	tbl := table.New()
	tbl.Stock().Next()
	require.NoError(t, first.SaveGame(ctx, &storage.SavedGame{
		ID:       "game-1",
		Player:   "player-1",
		Snapshot: tbl.Snapshot(),
	}))
	require.NoError(t, first.Close())

	second, err := New(options)
	require.NoError(t, err)
	defer second.Close()

	loaded, err := second.LoadGame(ctx, "game-1")
	require.NoError(t, err)

	restored, err := table.Restore(loaded.Snapshot)
	require.NoError(t, err)
	require.Equal(t, tbl.Stock().Cursor(), restored.Stock().Cursor())
	require.Equal(t, tbl.Tableau(6).Cards(), restored.Tableau(6).Cards())
}

func TestNewRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := New(&storage.Options{Path: path})

	require.Error(t, err)
}

func TestNewAcceptsNullFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "games.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0644))

	s, err := New(&storage.Options{Path: path})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveGame(ctx, &storage.SavedGame{ID: "game-1", Snapshot: table.New().Snapshot()}))
	games, err := s.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
}

func TestFailedWriteLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "games.json")
	s, err := New(&storage.Options{Path: path})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveGame(ctx, &storage.SavedGame{ID: "kept", Player: "before", Snapshot: table.New().Snapshot()}))

	// A directory in place of the file makes every write fail
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0755))

	require.Error(t, s.SaveGame(ctx, &storage.SavedGame{ID: "new", Snapshot: table.New().Snapshot()}))
	_, err = s.LoadGame(ctx, "new")
	require.ErrorIs(t, err, storage.ErrGameNotFound, "unsaved game must not be visible")

	require.Error(t, s.SaveGame(ctx, &storage.SavedGame{ID: "kept", Player: "after", Snapshot: table.New().Snapshot()}))
	kept, err := s.LoadGame(ctx, "kept")
	require.NoError(t, err)
	require.Equal(t, "before", kept.Player, "failed update must be rolled back")

	require.Error(t, s.DeleteGame(ctx, "kept"))
	_, err = s.LoadGame(ctx, "kept")
	require.NoError(t, err, "failed delete must be rolled back")
}

func TestAutoCleanupIgnoresTinyMaxAge(t *testing.T) {
	s, err := New(&storage.Options{
		Path:        filepath.Join(t.TempDir(), "games.json"),
		MaxGameAge:  time.Nanosecond,
		AutoCleanup: true,
	})

	require.NoError(t, err, "a max age too small for a ticker must not panic")
	require.NoError(t, s.Close())
}
