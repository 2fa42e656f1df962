package solitaire

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/fadedpez/termitaire/internal/logging"
	"github.com/fadedpez/termitaire/internal/types"
	"github.com/fadedpez/termitaire/pkg/pile"
	"github.com/fadedpez/termitaire/pkg/storage"
	"github.com/fadedpez/termitaire/pkg/table"
	"github.com/google/uuid"
)

// Game is a dealt table owned by a player
type Game struct {
	ID        string
	Player    string
	Table     *table.Table
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service manages solitaire games on top of a storage.Storage
type Service struct {
	store storage.Storage
	log   *logging.Logger
	rng   *rand.Rand
	newID func() string
}

// Option configures a Service
type Option func(*Service)

// WithRand shuffles new decks with r; a nil r deals the deck in standard order
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rng = r }
}

// WithLogger replaces the default logger
func WithLogger(l *logging.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService creates a new solitaire service
func NewService(store storage.Storage, opts ...Option) *Service {
	s := &Service{
		store: store,
		log:   logging.Default,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewGame deals a fresh table for player and saves it
func (s *Service) NewGame(ctx context.Context, player string) (*Game, error) {
	if player == "" {
		return nil, types.NewGameError(types.ErrInvalidArgument, "player is required")
	}

	deck := pile.Deck52()
	if s.rng != nil {
		deck.Shuffle(s.rng)
	}

	t, err := table.Deal(deck)
	if err != nil {
		return nil, types.WrapError(types.ErrInternalError, "failed to deal", err)
	}

	game := &Game{
		ID:     s.newID(),
		Player: player,
		Table:  t,
	}
	if err := s.Save(ctx, game); err != nil {
		return nil, err
	}

	s.log.Info("Dealt game %s for player %s", game.ID, player)
	return game, nil
}

// Save audits and persists the game's table
func (s *Service) Save(ctx context.Context, game *Game) error {
	if game == nil || game.Table == nil {
		return types.NewGameError(types.ErrInvalidArgument, "game has no table")
	}
	if err := game.Table.Audit(); err != nil {
		return err
	}

	saved := &storage.SavedGame{
		ID:        game.ID,
		Player:    game.Player,
		Snapshot:  game.Table.Snapshot(),
		CreatedAt: game.CreatedAt,
	}
	if err := s.store.SaveGame(ctx, saved); err != nil {
		wrapped := types.WrapError(types.ErrDatabaseError, fmt.Sprintf("failed to save game %s", game.ID), err)
		s.log.LogError(wrapped)
		return wrapped
	}

	game.CreatedAt = saved.CreatedAt
	game.UpdatedAt = saved.UpdatedAt
	s.log.Debug("Saved game %s", game.ID)
	return nil
}

// Resume loads a saved game and rebuilds its table
func (s *Service) Resume(ctx context.Context, id string) (*Game, error) {
	saved, err := s.store.LoadGame(ctx, id)
	if errors.Is(err, storage.ErrGameNotFound) {
		return nil, types.WrapError(types.ErrGameNotFound, fmt.Sprintf("no saved game %s", id), err)
	}
	if err != nil {
		wrapped := types.WrapError(types.ErrDatabaseError, fmt.Sprintf("failed to load game %s", id), err)
		s.log.LogError(wrapped)
		return nil, wrapped
	}

	t, err := table.Restore(saved.Snapshot)
	if err != nil {
		return nil, types.WrapError(types.ErrInvalidState, fmt.Sprintf("saved game %s is corrupt", id), err)
	}

	s.log.Debug("Resumed game %s", id)
	return &Game{
		ID:        saved.ID,
		Player:    saved.Player,
		Table:     t,
		CreatedAt: saved.CreatedAt,
		UpdatedAt: saved.UpdatedAt,
	}, nil
}

// Abandon deletes a saved game
func (s *Service) Abandon(ctx context.Context, id string) error {
	if err := s.store.DeleteGame(ctx, id); err != nil {
		wrapped := types.WrapError(types.ErrDatabaseError, fmt.Sprintf("failed to delete game %s", id), err)
		s.log.LogError(wrapped)
		return wrapped
	}
	return nil
}

// List returns the saved games, most recently played first
func (s *Service) List(ctx context.Context) ([]*storage.SavedGame, error) {
	games, err := s.store.ListGames(ctx)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to list games", err)
	}
	return games, nil
}
