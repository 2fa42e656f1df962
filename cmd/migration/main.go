package main

import (
	"database/sql"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/fadedpez/termitaire/pkg/db/migrations"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	// Define command-line flags
	createCmd := flag.NewFlagSet("create", flag.ExitOnError)
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)
	pendingCmd := flag.NewFlagSet("pending", flag.ExitOnError)

	// Create command options
	migrationsDir := createCmd.String("dir", "pkg/db/migrations/sql", "Directory to store migrations")

	// Migrate command options
	dbPath := migrateCmd.String("db", "data/termitaire.db", "Path to SQLite database")
	migrateDir := migrateCmd.String("dir", "", "Directory containing migrations (default: the embedded set)")

	// Pending command options
	pendingDB := pendingCmd.String("db", "data/termitaire.db", "Path to SQLite database")
	pendingDir := pendingCmd.String("dir", "", "Directory containing migrations (default: the embedded set)")

	// Show usage if no arguments provided
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Parse command
	switch os.Args[1] {
	case "create":
		createCmd.Parse(os.Args[2:])
		if createCmd.NArg() < 1 {
			fmt.Println("Error: Missing migration description")
			createCmd.Usage()
			os.Exit(1)
		}
		createNewMigration(*migrationsDir, createCmd.Arg(0))

	case "migrate":
		migrateCmd.Parse(os.Args[2:])
		applyMigrations(*dbPath, *migrateDir)

	case "pending":
		pendingCmd.Parse(os.Args[2:])
		listPending(*pendingDB, *pendingDir)

	case "help":
		printUsage()

	default:
		fmt.Printf("Error: Unknown command '%s'\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/migration create DESCRIPTION  - Create a new migration")
	fmt.Println("  go run ./cmd/migration migrate             - Apply pending migrations")
	fmt.Println("  go run ./cmd/migration pending             - List migrations not yet applied")
	fmt.Println("  go run ./cmd/migration help                - Show this help")
	fmt.Println("\nExamples:")
	fmt.Println("  go run ./cmd/migration create \"add move history\"")
	fmt.Println("  go run ./cmd/migration migrate -db data/termitaire.db")
}

func createNewMigration(migrationsDir, description string) {
	filePath, err := migrations.CreateMigration(migrationsDir, description)
	if err != nil {
		log.Fatalf("Error creating migration: %v", err)
	}

	// Add helpful SQLite examples to the migration file
	addSQLiteExamples(filePath)

	fmt.Printf("Created migration file: %s\n", filePath)
	fmt.Println("Edit this file to add your database schema changes.")
}

func addSQLiteExamples(filePath string) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("Error reading migration file: %v", err)
	}

	examples := `
-- SQLite Examples:

-- Add a column to the games table
-- ALTER TABLE games ADD COLUMN moves INTEGER DEFAULT 0;

-- Create an index
-- CREATE INDEX IF NOT EXISTS idx_games_column ON games(column_name);

-- Your migration SQL goes below this line:

`

	if err := os.WriteFile(filePath, append(content, examples...), 0644); err != nil {
		log.Fatalf("Error writing to migration file: %v", err)
	}
}

func openMigrator(dbPath, migrationsDir string) (*sql.DB, *migrations.Migrator) {
	// Ensure database directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		log.Fatalf("Error creating database directory: %v", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	var source fs.FS = migrations.Embedded()
	if migrationsDir != "" {
		source = os.DirFS(migrationsDir)
	}

	return db, migrations.NewMigrator(db, source)
}

func applyMigrations(dbPath, migrationsDir string) {
	db, migrator := openMigrator(dbPath, migrationsDir)
	defer db.Close()

	if err := migrator.MigrateUp(); err != nil {
		log.Fatalf("Error applying migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}

func listPending(dbPath, migrationsDir string) {
	db, migrator := openMigrator(dbPath, migrationsDir)
	defer db.Close()

	pending, err := migrator.Pending()
	if err != nil {
		log.Fatalf("Error listing migrations: %v", err)
	}

	if len(pending) == 0 {
		fmt.Println("No pending migrations.")
		return
	}
	for _, m := range pending {
		fmt.Printf("%s  %s\n", m.Version, m.Description)
	}
}
