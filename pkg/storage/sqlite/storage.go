package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fadedpez/termitaire/pkg/db/migrations"
	"github.com/fadedpez/termitaire/pkg/storage"
	"github.com/fadedpez/termitaire/pkg/table"
	_ "github.com/mattn/go-sqlite3"
)

// Storage implements storage.Storage on top of SQLite
type Storage struct {
	db  *sql.DB
	now func() time.Time
}

// New opens the database at dbPath and applies the embedded migrations
func New(dbPath string) (*Storage, error) {
	// Ensure the directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	migrator := migrations.NewMigrator(db, migrations.Embedded())
	if err := migrator.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &Storage{db: db, now: time.Now}, nil
}

// SaveGame saves or updates a game; created_at is kept on update
func (s *Storage) SaveGame(ctx context.Context, game *storage.SavedGame) error {
	snapshotJSON, err := json.Marshal(game.Snapshot)
	if err != nil {
		return fmt.Errorf("error marshaling snapshot: %w", err)
	}

	now := s.now().UTC()
	query := `
		INSERT INTO games (id, player, snapshot, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id)
		DO UPDATE SET player = excluded.player, snapshot = excluded.snapshot, updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, game.ID, game.Player, string(snapshotJSON), now, now); err != nil {
		return fmt.Errorf("error saving game: %w", err)
	}

	// The row may predate this call; report its real creation time
	var createdAt time.Time
	err = s.db.QueryRowContext(ctx, `SELECT created_at FROM games WHERE id = ?`, game.ID).Scan(&createdAt)
	if err != nil {
		return fmt.Errorf("error reading game timestamps: %w", err)
	}
	game.CreatedAt = createdAt.UTC()
	game.UpdatedAt = now

	return nil
}

// LoadGame loads a game by ID
func (s *Storage) LoadGame(ctx context.Context, id string) (*storage.SavedGame, error) {
	query := `SELECT id, player, snapshot, created_at, updated_at FROM games WHERE id = ?`

	game, err := scanGame(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrGameNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	return game, nil
}

// ListGames lists all games, newest first
func (s *Storage) ListGames(ctx context.Context) ([]*storage.SavedGame, error) {
	query := `SELECT id, player, snapshot, created_at, updated_at FROM games ORDER BY updated_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing games: %w", err)
	}
	defer rows.Close()

	var games []*storage.SavedGame
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	return games, rows.Err()
}

// DeleteGame deletes a game
func (s *Storage) DeleteGame(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	return err
}

// CleanupOldGames removes games not updated within maxAge
func (s *Storage) CleanupOldGames(ctx context.Context, maxAge time.Duration) error {
	cutoff := s.now().UTC().Add(-maxAge)
	_, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE updated_at < ?`, cutoff)
	return err
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (*storage.SavedGame, error) {
	var (
		game         storage.SavedGame
		snapshotJSON string
	)
	if err := row.Scan(&game.ID, &game.Player, &snapshotJSON, &game.CreatedAt, &game.UpdatedAt); err != nil {
		return nil, err
	}

	var snap table.Snapshot
	if err := json.Unmarshal([]byte(snapshotJSON), &snap); err != nil {
		return nil, fmt.Errorf("error unmarshaling snapshot for game %s: %w", game.ID, err)
	}
	game.Snapshot = snap
	game.CreatedAt = game.CreatedAt.UTC()
	game.UpdatedAt = game.UpdatedAt.UTC()

	return &game, nil
}
