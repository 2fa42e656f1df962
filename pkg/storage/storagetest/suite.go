// Package storagetest holds the behaviour every storage.Storage must share.
package storagetest

import (
	"context"
	"time"

	"github.com/fadedpez/termitaire/pkg/storage"
	"github.com/fadedpez/termitaire/pkg/table"
	"github.com/stretchr/testify/suite"
)

// Factory builds a fresh store plus a function that pins its clock
type Factory func() (store storage.Storage, setNow func(time.Time))

// Suite runs the shared storage contract against a Factory
type Suite struct {
	suite.Suite
	Factory Factory

	store  storage.Storage
	setNow func(time.Time)
	ctx    context.Context
}

// SetupTest builds a new store for every test
func (s *Suite) SetupTest() {
	s.ctx = context.Background()
	s.store, s.setNow = s.Factory()
}

// TearDownTest closes the store
func (s *Suite) TearDownTest() {
	s.NoError(s.store.Close())
}

// Store returns the store under test
func (s *Suite) Store() storage.Storage {
	return s.store
}

func newGame(id, player string) *storage.SavedGame {
	return &storage.SavedGame{
		ID:       id,
		Player:   player,
		Snapshot: table.New().Snapshot(),
	}
}

func (s *Suite) TestSaveAndLoadGame() {
	// Setup
	game := newGame("game-1", "player-1")
	game.Snapshot.Stock.Cursor = 20

	// Execute
	err := s.store.SaveGame(s.ctx, game)
	s.Require().NoError(err, "Failed to save game")

	// Assert
	loaded, err := s.store.LoadGame(s.ctx, game.ID)
	s.Require().NoError(err, "Failed to load game")
	s.Equal(game.ID, loaded.ID, "Game ID mismatch")
	s.Equal(game.Player, loaded.Player, "Player mismatch")
	s.Equal(game.Snapshot, loaded.Snapshot, "Snapshot mismatch")
	s.False(loaded.CreatedAt.IsZero(), "Created time not set")
	s.False(loaded.UpdatedAt.IsZero(), "Updated time not set")

	restored, err := table.Restore(loaded.Snapshot)
	s.Require().NoError(err, "Loaded snapshot should restore")
	s.Equal(20, restored.Stock().Cursor())
}

func (s *Suite) TestSaveUpdatesExisting() {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.setNow(start)
	game := newGame("game-1", "player-1")
	s.Require().NoError(s.store.SaveGame(s.ctx, game))

	s.setNow(start.Add(time.Minute))
	game.Snapshot.Stock.Cursor = 3
	s.Require().NoError(s.store.SaveGame(s.ctx, game))

	loaded, err := s.store.LoadGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(3, loaded.Snapshot.Stock.Cursor)
	s.True(start.Equal(loaded.CreatedAt), "created time should survive updates, got %v", loaded.CreatedAt)
	s.True(start.Add(time.Minute).Equal(loaded.UpdatedAt), "updated time should move, got %v", loaded.UpdatedAt)

	games, err := s.store.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Len(games, 1, "update must not duplicate the game")
}

func (s *Suite) TestLoadMissingGame() {
	_, err := s.store.LoadGame(s.ctx, "missing")

	s.ErrorIs(err, storage.ErrGameNotFound)
}

func (s *Suite) TestDeleteGame() {
	// Setup
	game := newGame("game-1", "player-1")
	s.Require().NoError(s.store.SaveGame(s.ctx, game))

	// Execute
	err := s.store.DeleteGame(s.ctx, game.ID)

	// Assert
	s.Require().NoError(err, "Failed to delete game")
	_, err = s.store.LoadGame(s.ctx, game.ID)
	s.ErrorIs(err, storage.ErrGameNotFound, "Game should be deleted")
	s.NoError(s.store.DeleteGame(s.ctx, game.ID), "Deleting twice should not fail")
}

func (s *Suite) TestListGames() {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i, id := range []string{"game-1", "game-2", "game-3"} {
		s.setNow(start.Add(time.Duration(i) * time.Minute))
		s.Require().NoError(s.store.SaveGame(s.ctx, newGame(id, "player-1")))
	}

	listed, err := s.store.ListGames(s.ctx)

	s.Require().NoError(err, "Failed to list games")
	s.Require().Len(listed, 3, "Wrong number of games")
	s.Equal("game-3", listed[0].ID, "newest game first")
	s.Equal("game-1", listed[2].ID)
}

func (s *Suite) TestCleanupOldGames() {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.setNow(start.Add(-2 * time.Hour))
	s.Require().NoError(s.store.SaveGame(s.ctx, newGame("old-game", "player-1")))
	s.setNow(start)
	s.Require().NoError(s.store.SaveGame(s.ctx, newGame("new-game", "player-2")))

	err := s.store.CleanupOldGames(s.ctx, time.Hour)

	s.Require().NoError(err, "Failed to cleanup old games")
	games, err := s.store.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 1, "Should have only one game after cleanup")
	s.Equal("new-game", games[0].ID, "Wrong game remained after cleanup")
}
