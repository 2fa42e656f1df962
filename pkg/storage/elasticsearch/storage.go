package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/fadedpez/termitaire/internal/logging"
	"github.com/fadedpez/termitaire/pkg/storage"
	"github.com/fadedpez/termitaire/pkg/table"
)

const gameMapping = `{
	"mappings": {
		"properties": {
			"id": { "type": "keyword" },
			"player": { "type": "keyword" },
			"tops": { "type": "flattened" },
			"stock_cursor": { "type": "integer" },
			"updated_at": { "type": "date" }
		}
	}
}`

// ElasticsearchConfig holds configuration options for the Elasticsearch store
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
}

// DefaultElasticsearchConfig returns a default configuration for Elasticsearch
func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		URL:         "http://localhost:9200",
		IndexPrefix: "termitaire",
	}
}

// Storage indexes every saved deal into Elasticsearch and keeps the
// authoritative copy in a base store
type Storage struct {
	base   storage.Storage
	client *elasticsearch.Client
	index  string
	log    *logging.Logger
}

// gameDocument is the searchable view of a saved game
type gameDocument struct {
	ID          string            `json:"id"`
	Player      string            `json:"player"`
	Tops        map[string]string `json:"tops"`
	StockCursor int               `json:"stock_cursor"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewStorage creates the Elasticsearch client and the games index if needed
func NewStorage(base storage.Storage, config *ElasticsearchConfig) (*Storage, error) {
	if config == nil {
		config = DefaultElasticsearchConfig()
	}

	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
	}

	// Add authentication if provided
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	prefix := config.IndexPrefix
	if prefix == "" {
		prefix = "termitaire"
	}

	s := &Storage{
		base:   base,
		client: client,
		index:  prefix + "_games",
		log:    logging.Default,
	}

	if err := s.initIndex(context.Background()); err != nil {
		return nil, fmt.Errorf("error initializing index: %w", err)
	}

	return s, nil
}

// initIndex creates the games index if it doesn't exist
func (s *Storage) initIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error checking if game index exists: %w", err)
	}
	res.Body.Close()

	if res.StatusCode != http.StatusNotFound {
		return nil
	}

	req := esapi.IndicesCreateRequest{
		Index: s.index,
		Body:  bytes.NewReader([]byte(gameMapping)),
	}

	res, err = req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("error creating game index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating game index: %s", res.String())
	}

	s.log.Info("Created Elasticsearch index %s", s.index)
	return nil
}

// SaveGame saves to the base store, then indexes the deal
func (s *Storage) SaveGame(ctx context.Context, game *storage.SavedGame) error {
	if err := s.base.SaveGame(ctx, game); err != nil {
		return err
	}

	doc, err := newGameDocument(game)
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshaling game document: %w", err)
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(jsonData),
		s.client.Index.WithDocumentID(game.ID),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("error indexing game: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing game: %s", res.String())
	}

	return nil
}

// LoadGame delegates to the base store
func (s *Storage) LoadGame(ctx context.Context, id string) (*storage.SavedGame, error) {
	return s.base.LoadGame(ctx, id)
}

// ListGames delegates to the base store
func (s *Storage) ListGames(ctx context.Context) ([]*storage.SavedGame, error) {
	return s.base.ListGames(ctx)
}

// DeleteGame deletes from the base store and drops the indexed document
func (s *Storage) DeleteGame(ctx context.Context, id string) error {
	if err := s.base.DeleteGame(ctx, id); err != nil {
		return err
	}

	res, err := s.client.Delete(
		s.index,
		id,
		s.client.Delete.WithContext(ctx),
		s.client.Delete.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("error deleting indexed game: %w", err)
	}
	defer res.Body.Close()

	// A game saved before indexing was enabled has no document
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("error deleting indexed game: %s", res.String())
	}

	return nil
}

// CleanupOldGames cleans the base store and prunes stale documents
func (s *Storage) CleanupOldGames(ctx context.Context, maxAge time.Duration) error {
	if err := s.base.CleanupOldGames(ctx, maxAge); err != nil {
		return err
	}

	query := fmt.Sprintf(`{
		"query": {
			"range": { "updated_at": { "lt": "now-%ds" } }
		}
	}`, int64(maxAge/time.Second))

	res, err := s.client.DeleteByQuery(
		[]string{s.index},
		bytes.NewReader([]byte(query)),
		s.client.DeleteByQuery.WithContext(ctx),
		s.client.DeleteByQuery.WithRefresh(true),
	)
	if err != nil {
		return fmt.Errorf("error pruning indexed games: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error pruning indexed games: %s", res.String())
	}

	return nil
}

// Close closes the base store
func (s *Storage) Close() error {
	return s.base.Close()
}

func newGameDocument(game *storage.SavedGame) (*gameDocument, error) {
	t, err := table.Restore(game.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("error restoring game %s for indexing: %w", game.ID, err)
	}

	tops := make(map[string]string)
	for name, card := range t.TopCards() {
		tops[name] = card.String()
	}

	return &gameDocument{
		ID:          game.ID,
		Player:      game.Player,
		Tops:        tops,
		StockCursor: game.Snapshot.Stock.Cursor,
		UpdatedAt:   game.UpdatedAt,
	}, nil
}
