package storage

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of Storage
type MockStorage struct {
	mock.Mock
}

// NewMockStorage creates a new mock storage
func NewMockStorage(t mock.TestingT) *MockStorage {
	mock := &MockStorage{}
	mock.Test(t)
	return mock
}

// SaveGame mocks the SaveGame method
func (m *MockStorage) SaveGame(ctx context.Context, game *SavedGame) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

// LoadGame mocks the LoadGame method
func (m *MockStorage) LoadGame(ctx context.Context, id string) (*SavedGame, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SavedGame), args.Error(1)
}

// ListGames mocks the ListGames method
func (m *MockStorage) ListGames(ctx context.Context) ([]*SavedGame, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*SavedGame), args.Error(1)
}

// DeleteGame mocks the DeleteGame method
func (m *MockStorage) DeleteGame(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// CleanupOldGames mocks the CleanupOldGames method
func (m *MockStorage) CleanupOldGames(ctx context.Context, maxAge time.Duration) error {
	args := m.Called(ctx, maxAge)
	return args.Error(0)
}

// Close mocks the Close method
func (m *MockStorage) Close() error {
	args := m.Called()
	return args.Error(0)
}
