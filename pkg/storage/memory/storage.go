package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fadedpez/termitaire/pkg/storage"
)

// Storage implements storage.Storage in memory
type Storage struct {
	mu    sync.RWMutex
	games map[string]*storage.SavedGame
	now   func() time.Time
}

// New creates a new in-memory store
func New() *Storage {
	return &Storage{
		games: make(map[string]*storage.SavedGame),
		now:   time.Now,
	}
}

// SaveGame saves or updates a game
func (s *Storage) SaveGame(ctx context.Context, game *storage.SavedGame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	storage.Stamp(game, s.now())
	stored := *game
	s.games[game.ID] = &stored
	return nil
}

// LoadGame loads a game by ID
func (s *Storage) LoadGame(ctx context.Context, id string) (*storage.SavedGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[id]
	if !ok {
		return nil, storage.ErrGameNotFound
	}
	loaded := *game
	return &loaded, nil
}

// ListGames lists all games, newest first
func (s *Storage) ListGames(ctx context.Context) ([]*storage.SavedGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	games := make([]*storage.SavedGame, 0, len(s.games))
	for _, game := range s.games {
		listed := *game
		games = append(games, &listed)
	}
	storage.SortByRecent(games)
	return games, nil
}

// DeleteGame deletes a game
func (s *Storage) DeleteGame(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.games, id)
	return nil
}

// CleanupOldGames removes games older than maxAge
func (s *Storage) CleanupOldGames(ctx context.Context, maxAge time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, game := range s.games {
		if now.Sub(game.UpdatedAt) > maxAge {
			delete(s.games, id)
		}
	}
	return nil
}

// Close is a no-op for the memory store since there are no resources to close
func (s *Storage) Close() error {
	return nil
}
