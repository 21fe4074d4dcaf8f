package database

import (
	"database/sql"
	"sync"

	"github.com/pkg/errors"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps the sqlite database holding all bot state. Every operation
// takes the store mutex for its duration; callers must never perform
// network calls while inside a store operation.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (or creates) the state database at path and ensures the
// schema exists. This is the only store failure that should be treated
// as fatal, and only at startup.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database %s", path)
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) createTables() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS currency_alert (
			id              INTEGER PRIMARY KEY,
			channel         TEXT NOT NULL,
			user            TEXT NOT NULL,
			from_currency   TEXT NOT NULL,
			from_amount     REAL,
			comparison      TEXT NOT NULL,
			to_currency     TEXT NOT NULL,
			to_amount       REAL
		)`,
		`CREATE INDEX IF NOT EXISTS i_alert_channel ON currency_alert (channel)`,
		`CREATE TABLE IF NOT EXISTS karma (
			id              INTEGER PRIMARY KEY,
			name            TEXT NOT NULL,
			counter         INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS i_karma_name ON karma (name)`,
		`CREATE TABLE IF NOT EXISTS seen (
			id              INTEGER PRIMARY KEY,
			channel         TEXT NOT NULL,
			user            TEXT NOT NULL,
			last_said       TEXT NOT NULL,
			last_seen       INTEGER,
			last_private    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS i_seen_user ON seen (user)`,
		`CREATE TABLE IF NOT EXISTS metrics (
			metric_name     TEXT NOT NULL PRIMARY KEY,
			metric_value    REAL NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Wrap(err, "failed to create schema")
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
