package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fadedpez/termitaire/internal/logging"
	"github.com/fadedpez/termitaire/pkg/storage"
)

// Storage implements file-based storage for saved games
type Storage struct {
	path    string
	mu      sync.RWMutex
	games   map[string]*storage.SavedGame
	options *storage.Options
	now     func() time.Time
	done    chan struct{}
	closed  sync.Once
}

// New creates a new file storage instance
func New(options *storage.Options) (*Storage, error) {
	if options == nil {
		options = storage.NewOptions()
	}

	s := &Storage{
		path:    options.Path,
		games:   make(map[string]*storage.SavedGame),
		options: options,
		now:     time.Now,
		done:    make(chan struct{}),
	}

	// Load existing games from file
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}

	// Start cleanup goroutine if enabled; the ticker needs a positive interval
	if options.AutoCleanup && options.MaxGameAge/4 > 0 {
		go s.cleanupRoutine()
	}

	return s, nil
}

// SaveGame saves or updates a game
func (s *Storage) SaveGame(ctx context.Context, game *storage.SavedGame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.games[game.ID]

	stamped := *game
	storage.Stamp(&stamped, s.now())
	s.games[game.ID] = &stamped

	if err := s.save(); err != nil {
		// Keep memory in step with what is on disk
		if existed {
			s.games[game.ID] = previous
		} else {
			delete(s.games, game.ID)
		}
		return err
	}

	*game = stamped
	return nil
}

// LoadGame loads a game by ID
func (s *Storage) LoadGame(ctx context.Context, id string) (*storage.SavedGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrGameNotFound, id)
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

	previous, existed := s.games[id]
	if !existed {
		return nil
	}

	delete(s.games, id)
	if err := s.save(); err != nil {
		s.games[id] = previous
		return err
	}
	return nil
}

// CleanupOldGames removes games older than maxAge
func (s *Storage) CleanupOldGames(ctx context.Context, maxAge time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := make(map[string]*storage.SavedGame)
	for id, game := range s.games {
		if now.Sub(game.UpdatedAt) > maxAge {
			removed[id] = game
			delete(s.games, id)
		}
	}
	if len(removed) == 0 {
		return nil
	}

	if err := s.save(); err != nil {
		for id, game := range removed {
			s.games[id] = game
		}
		return err
	}
	return nil
}

// Close stops the cleanup goroutine
func (s *Storage) Close() error {
	s.closed.Do(func() { close(s.done) })
	return nil
}

// Helper functions

func (s *Storage) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &s.games); err != nil {
		return err
	}
	// A file holding "null" decodes to a nil map
	if s.games == nil {
		s.games = make(map[string]*storage.SavedGame)
	}
	return nil
}

func (s *Storage) save() error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Marshal and save
	data, err := json.Marshal(s.games)
	if err != nil {
		return fmt.Errorf("failed to marshal games: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func (s *Storage) cleanupRoutine() {
	ticker := time.NewTicker(s.options.MaxGameAge / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.CleanupOldGames(context.Background(), s.options.MaxGameAge); err != nil {
				logging.Default.Error("Error cleaning up old games: %v", err)
			}
		case <-s.done:
			return
		}
	}
}
