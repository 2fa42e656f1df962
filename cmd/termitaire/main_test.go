package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fadedpez/termitaire/internal/logging"
	"github.com/fadedpez/termitaire/internal/types"
	"github.com/fadedpez/termitaire/pkg/pile"
	"github.com/fadedpez/termitaire/pkg/storage"
	"github.com/fadedpez/termitaire/pkg/storage/memory"
	"github.com/stretchr/testify/suite"
)

type MainTestSuite struct {
	suite.Suite
	logs *bytes.Buffer
	log  *logging.Logger
	ctx  context.Context
}

func TestMainSuite(t *testing.T) {
	suite.Run(t, new(MainTestSuite))
}

func (s *MainTestSuite) SetupTest() {
	s.logs = &bytes.Buffer{}
	s.log = logging.New(s.logs, logging.DEBUG)
	s.ctx = context.Background()
}

func (s *MainTestSuite) TestWithStorageClosesOnSuccess() {
	store := storage.NewMockStorage(s.T())
	store.On("Close").Return(nil).Once()

	code := withStorage(store, s.log, func() int { return 0 })

	s.Equal(0, code)
	store.AssertExpectations(s.T())
}

func (s *MainTestSuite) TestWithStorageClosesOnErrorCode() {
	store := storage.NewMockStorage(s.T())
	store.On("Close").Return(errors.New("already closed")).Once()

	code := withStorage(store, s.log, func() int { return 1 })

	s.Equal(1, code)
	s.Contains(s.logs.String(), "Error closing storage: already closed")
	store.AssertExpectations(s.T())
}

func (s *MainTestSuite) TestWithStorageRecoversEnginePanic() {
	store := storage.NewMockStorage(s.T())
	store.On("Close").Return(nil).Once()

	code := withStorage(store, s.log, func() int {
		pile.New().Draw()
		return 0
	})

	s.Equal(2, code)
	s.Contains(s.logs.String(), "Code: "+string(types.ErrEmptyPile))
	store.AssertExpectations(s.T())
}

func (s *MainTestSuite) TestWithStorageRecoversNonErrorPanic() {
	store := storage.NewMockStorage(s.T())
	store.On("Close").Return(nil).Once()

	code := withStorage(store, s.log, func() int { panic("lost terminal") })

	s.Equal(2, code)
	s.Contains(s.logs.String(), "Unexpected panic: lost terminal")
	store.AssertExpectations(s.T())
}

func (s *MainTestSuite) TestPlayDealsSavesAndResumes() {
	store := memory.New()
	var out bytes.Buffer

	code := play(s.ctx, &out, store, time.Hour, options{player: "player-1", cycle: 1}, s.log)

	s.Require().Equal(0, code)
	games, err := store.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal("player-1", games[0].Player)
	s.Equal(23, games[0].Snapshot.Stock.Cursor)
	s.Contains(out.String(), "Game "+games[0].ID+" saved for player-1")

	out.Reset()
	code = play(s.ctx, &out, store, time.Hour, options{resume: games[0].ID, cycle: 1}, s.log)

	s.Require().Equal(0, code)
	resumed, err := store.LoadGame(s.ctx, games[0].ID)
	s.Require().NoError(err)
	s.Equal(22, resumed.Snapshot.Stock.Cursor)
}

func (s *MainTestSuite) TestPlayListAndAbandon() {
	store := memory.New()
	var out bytes.Buffer
	s.Require().Equal(0, play(s.ctx, &out, store, 0, options{player: "player-1"}, s.log))
	games, err := store.ListGames(s.ctx)
	s.Require().NoError(err)
	id := games[0].ID

	out.Reset()
	s.Equal(0, play(s.ctx, &out, store, 0, options{list: true}, s.log))
	s.True(strings.HasPrefix(out.String(), id))

	out.Reset()
	s.Equal(0, play(s.ctx, &out, store, 0, options{abandon: id}, s.log))
	s.Contains(out.String(), "Abandoned game "+id)

	out.Reset()
	s.Equal(0, play(s.ctx, &out, store, 0, options{list: true}, s.log))
	s.Equal("No saved games.\n", out.String())
}

func (s *MainTestSuite) TestPlayResumeMissingGame() {
	var out bytes.Buffer

	code := play(s.ctx, &out, memory.New(), 0, options{resume: "missing"}, s.log)

	s.Equal(1, code)
	s.Contains(s.logs.String(), "Code: "+string(types.ErrGameNotFound))
}
