package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fadedpez/termitaire/internal/types"
	"github.com/stretchr/testify/suite"
)

type LoggerTestSuite struct {
	suite.Suite
	buf    *bytes.Buffer
	logger *Logger
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (s *LoggerTestSuite) SetupTest() {
	s.buf = &bytes.Buffer{}
	s.logger = New(s.buf, INFO)
}

func (s *LoggerTestSuite) TestLevelFiltering() {
	s.logger.Debug("hidden %d", 1)
	s.logger.Info("shown %d", 2)

	out := s.buf.String()
	s.NotContains(out, "hidden")
	s.Contains(out, "INFO")
	s.Contains(out, "shown 2")
	s.Contains(out, "logger_test.go:", "caller should be the test file")
}

func (s *LoggerTestSuite) TestSetLevel() {
	s.logger.SetLevel(ERROR)
	s.logger.Warn("quiet")
	s.Empty(s.buf.String())

	s.logger.SetLevel(DEBUG)
	s.logger.Debug("loud")
	s.Contains(s.buf.String(), "DEBUG")
	s.Equal(DEBUG, s.logger.Level())
}

func (s *LoggerTestSuite) TestLogGameError() {
	err := types.WrapError(types.ErrDatabaseError, "failed to save game", errors.New("disk full"))

	s.logger.LogError(err)

	out := s.buf.String()
	s.Contains(out, "Code: DATABASE_ERROR")
	s.Contains(out, "Message: failed to save game")
	s.Contains(out, "Cause: disk full")
}

func (s *LoggerTestSuite) TestLogPlainError() {
	s.logger.LogError(errors.New("boom"))

	s.Contains(s.buf.String(), "Unexpected error: boom")
}

func (s *LoggerTestSuite) TestParseLevel() {
	tests := []struct {
		name string
		want Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warn", WARN},
		{"warning", WARN},
		{"error", ERROR},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			level, err := ParseLevel(tt.name)
			s.Require().NoError(err)
			s.Equal(tt.want, level)
		})
	}

	_, err := ParseLevel("verbose")
	s.True(types.IsGameError(err, types.ErrInvalidArgument))
}

func (s *LoggerTestSuite) TestLevelString() {
	s.Equal("WARN", WARN.String())
	s.Equal("Level(9)", Level(9).String())
}
