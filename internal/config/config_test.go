package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fadedpez/termitaire/internal/logging"
	"github.com/stretchr/testify/suite"
)

var envKeys = []string{
	"ENVIRONMENT", "DATA_DIR", "LOG_LEVEL", "STORAGE_BACKEND", "SQLITE_PATH",
	"SAVE_FILE", "MAX_GAME_AGE", "ES_URL", "ES_USERNAME", "ES_PASSWORD", "ES_INDEX_PREFIX",
}

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	for _, key := range envKeys {
		s.T().Setenv(key, "")
	}
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := FromEnv("/srv/termitaire")

	s.Require().NoError(err)
	s.Equal("development", cfg.Environment)
	s.True(cfg.IsDevelopment())
	s.Equal(logging.INFO, cfg.LogLevel)
	s.Equal(BackendSQLite, cfg.StorageBackend)
	s.Equal(filepath.Join("/srv/termitaire", "data"), cfg.DataDir)
	s.Equal(filepath.Join("/srv/termitaire", "data", "termitaire.db"), cfg.SQLitePath)
	s.Equal(filepath.Join("/srv/termitaire", "data", "games.json"), cfg.SaveFile)
	s.Equal(7*24*time.Hour, cfg.MaxGameAge)
	s.Equal("termitaire", cfg.ESIndexPrefix)
}

func (s *ConfigTestSuite) TestOverrides() {
	s.T().Setenv("ENVIRONMENT", "production")
	s.T().Setenv("DATA_DIR", "/var/lib/termitaire")
	s.T().Setenv("LOG_LEVEL", "debug")
	s.T().Setenv("STORAGE_BACKEND", "elasticsearch")
	s.T().Setenv("MAX_GAME_AGE", "30m")
	s.T().Setenv("ES_URL", "http://es:9200")
	s.T().Setenv("ES_INDEX_PREFIX", "solitaire")

	cfg, err := FromEnv("/ignored")

	s.Require().NoError(err)
	s.False(cfg.IsDevelopment())
	s.Equal(logging.DEBUG, cfg.LogLevel)
	s.Equal(BackendElasticsearch, cfg.StorageBackend)
	s.Equal("/var/lib/termitaire/termitaire.db", cfg.SQLitePath, "paths follow DATA_DIR")
	s.Equal(30*time.Minute, cfg.MaxGameAge)
	s.Equal("http://es:9200", cfg.ESURL)
	s.Equal("solitaire", cfg.ESIndexPrefix)
}

func (s *ConfigTestSuite) TestInvalidValues() {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown backend", "STORAGE_BACKEND", "postgres"},
		{"elasticsearch without url", "STORAGE_BACKEND", "elasticsearch"},
		{"bad duration", "MAX_GAME_AGE", "forever"},
		{"negative duration", "MAX_GAME_AGE", "-1h"},
		{"bad log level", "LOG_LEVEL", "chatty"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.T().Setenv(tt.key, tt.val)

			_, err := FromEnv("/srv/termitaire")

			s.Error(err)
		})
	}
}

func (s *ConfigTestSuite) TestLoadCreatesDataDir() {
	dir := filepath.Join(s.T().TempDir(), "data")
	s.T().Setenv("DATA_DIR", dir)

	cfg, err := Load()

	s.Require().NoError(err)
	s.Equal(dir, cfg.DataDir)
	info, err := os.Stat(dir)
	s.Require().NoError(err)
	s.True(info.IsDir())
}
