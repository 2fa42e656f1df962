package migrations

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/suite"
)

type MigrationsTestSuite struct {
	suite.Suite
	db *sql.DB
}

func TestMigrationsSuite(t *testing.T) {
	suite.Run(t, new(MigrationsTestSuite))
}

func (s *MigrationsTestSuite) SetupTest() {
	db, err := sql.Open("sqlite3", filepath.Join(s.T().TempDir(), "test.db"))
	s.Require().NoError(err)
	s.db = db
}

func (s *MigrationsTestSuite) TearDownTest() {
	s.db.Close()
}

func (s *MigrationsTestSuite) TestEmbeddedMigrations() {
	migrator := NewMigrator(s.db, Embedded())

	migrations, err := migrator.LoadMigrations()
	s.Require().NoError(err)
	s.Require().Len(migrations, 2)
	s.Equal("001", migrations[0].Version)
	s.Equal("create games", migrations[0].Description)
	s.Equal("002", migrations[1].Version)
}

func (s *MigrationsTestSuite) TestMigrateUpIsIdempotent() {
	migrator := NewMigrator(s.db, Embedded())

	s.Require().NoError(migrator.MigrateUp())
	s.Require().NoError(migrator.MigrateUp(), "second run should skip applied migrations")

	applied, err := migrator.GetAppliedMigrations()
	s.Require().NoError(err)
	s.Equal(map[string]bool{"001": true, "002": true}, applied)

	pending, err := migrator.Pending()
	s.Require().NoError(err)
	s.Empty(pending)

	_, err = s.db.Exec(`INSERT INTO games (id, player, snapshot, created_at, updated_at) VALUES ('g', 'p', '{}', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	s.NoError(err, "games table should exist")
}

func (s *MigrationsTestSuite) TestFailedMigrationRollsBack() {
	source := fstest.MapFS{
		"001_good.sql": {Data: []byte(`CREATE TABLE good (id INTEGER);`)},
		"002_bad.sql":  {Data: []byte(`CREATE TABLE oops (;`)},
	}
	migrator := NewMigrator(s.db, source)

	err := migrator.MigrateUp()
	s.Error(err)

	applied, err := migrator.GetAppliedMigrations()
	s.Require().NoError(err)
	s.Equal(map[string]bool{"001": true}, applied)
}

func (s *MigrationsTestSuite) TestInvalidFilename() {
	source := fstest.MapFS{
		"nounderscore.sql": {Data: []byte(`SELECT 1;`)},
	}

	_, err := NewMigrator(s.db, source).LoadMigrations()
	s.Error(err)
}

func (s *MigrationsTestSuite) TestCreateMigration() {
	dir := filepath.Join(s.T().TempDir(), "migrations")

	first, err := CreateMigration(dir, "add scores")
	s.Require().NoError(err)
	s.Equal(filepath.Join(dir, "001_add_scores.sql"), first)

	second, err := CreateMigration(dir, "add index")
	s.Require().NoError(err)
	s.Equal(filepath.Join(dir, "002_add_index.sql"), second)

	content, err := os.ReadFile(second)
	s.Require().NoError(err)
	s.Contains(string(content), "-- Migration: add index")
}
