// Package sqlite opens the relational store holding the catalog, users,
// recipes, and saved grocery lists.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

// Store wraps the sqlite connection pool.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path, applies pragmas, and runs
// the schema migration.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	// SQLite performs best with a single write connection. WAL enables concurrent readers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// DB returns the underlying *sql.DB for the repositories.
func (s *Store) DB() *sql.DB { return s.db }

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sqlite: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS items (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			store       TEXT NOT NULL,
			price       REAL NOT NULL CHECK (price >= 0),
			ingredients TEXT NOT NULL DEFAULT '[]',
			calories    INTEGER NOT NULL DEFAULT 0,
			category    TEXT NOT NULL DEFAULT '',
			embedding   BLOB
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_store ON items(store)`,
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			first_name    TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			allergies     TEXT NOT NULL DEFAULT '[]',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS recipes (
			id               TEXT PRIMARY KEY,
			user_id          TEXT NOT NULL DEFAULT '',
			name             TEXT NOT NULL,
			ingredients      TEXT NOT NULL DEFAULT '[]',
			instructions     TEXT NOT NULL DEFAULT '[]',
			cooking_time_min INTEGER NOT NULL DEFAULT 0,
			servings         INTEGER NOT NULL DEFAULT 0,
			diets            TEXT NOT NULL DEFAULT '[]',
			allergies        TEXT NOT NULL DEFAULT '[]',
			created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_name ON recipes(name)`,
		`CREATE TABLE IF NOT EXISTS grocery_lists (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			list_name  TEXT NOT NULL DEFAULT '',
			payload    TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_grocery_lists_user ON grocery_lists(user_id)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
