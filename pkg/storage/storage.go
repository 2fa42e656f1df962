package storage

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/fadedpez/termitaire/pkg/table"
)

// Common storage errors
var (
	ErrGameNotFound = errors.New("game not found")
)

// SavedGame is a game that can be stored and resumed later
type SavedGame struct {
	ID        string         `json:"id"`
	Player    string         `json:"player"`
	Snapshot  table.Snapshot `json:"snapshot"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Storage defines the interface for saved game persistence
type Storage interface {
	// SaveGame saves or updates a game, stamping its timestamps
	SaveGame(ctx context.Context, game *SavedGame) error

	// LoadGame loads a game by ID, or returns ErrGameNotFound
	LoadGame(ctx context.Context, id string) (*SavedGame, error)

	// ListGames lists all saved games, most recently updated first
	ListGames(ctx context.Context) ([]*SavedGame, error)

	// DeleteGame deletes a game; deleting an unknown ID is not an error
	DeleteGame(ctx context.Context, id string) error

	// CleanupOldGames removes games not updated within maxAge
	CleanupOldGames(ctx context.Context, maxAge time.Duration) error

	// Close releases any resources held by the store
	Close() error
}

// Options represents storage configuration options
type Options struct {
	Path        string
	MaxGameAge  time.Duration
	AutoCleanup bool
}

// NewOptions creates a new Options with default values
func NewOptions() *Options {
	return &Options{
		Path:        "games.json",
		MaxGameAge:  7 * 24 * time.Hour,
		AutoCleanup: true,
	}
}

// Stamp sets UpdatedAt to now, and CreatedAt too if the game is new
func Stamp(game *SavedGame, now time.Time) {
	if game.CreatedAt.IsZero() {
		game.CreatedAt = now
	}
	game.UpdatedAt = now
}

// SortByRecent orders games by UpdatedAt, newest first
func SortByRecent(games []*SavedGame) {
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].UpdatedAt.After(games[j].UpdatedAt)
	})
}
