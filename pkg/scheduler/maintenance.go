package scheduler

import (
	"context"
	"time"

	"github.com/fadedpez/termitaire/pkg/storage"
)

// NewStorageMaintenance schedules pruning of saved games older than maxAge.
// The task runs every maxAge/4, and at most hourly.
func NewStorageMaintenance(store storage.Storage, maxAge time.Duration) (*Scheduler, error) {
	s := NewScheduler()
	if maxAge <= 0 {
		return s, nil
	}

	interval := maxAge / 4
	if interval <= 0 {
		interval = maxAge
	}
	if interval > time.Hour {
		interval = time.Hour
	}

	err := s.AddTask("cleanup_old_games", interval, func(ctx context.Context) error {
		return store.CleanupOldGames(ctx, maxAge)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
