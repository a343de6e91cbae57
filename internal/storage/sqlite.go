// Package storage keeps config maps in a SQLite database through the pure-Go
// modernc.org/sqlite driver.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Store is an open config database.
type Store struct {
	db *sql.DB
}

// Row is one stored config entry. Kind is the value's kind tag and Value
// its textual form.
type Row struct {
	Key   string
	Kind  string
	Value string
}

// Open opens the database at path, creating it and its parent directory
// when missing. A leading ~ is the user's home directory.
func Open(path string) (*Store, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	// One connection keeps ReplaceAll and readers from locking each other out.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := db.Ping(); err != nil {
		return nil, errors.Join(fmt.Errorf("storage: ping %s: %w", path, err), db.Close())
	}
	if err := s.migrate(); err != nil {
		return nil, errors.Join(fmt.Errorf("storage: migrate %s: %w", path, err), db.Close())
	}
	return s, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: expand %s: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS config_entries (
			key TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			value TEXT NOT NULL,
			position INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_config_entries_position ON config_entries(position);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ReplaceAll swaps the stored entries for rows in a single transaction.
// Row order is preserved.
func (s *Store) ReplaceAll(rows []Row) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if _, err = tx.Exec("DELETE FROM config_entries"); err != nil {
		return fmt.Errorf("storage: clear entries: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO config_entries (key, kind, value, position) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err = stmt.Exec(r.Key, r.Kind, r.Value, i); err != nil {
			return fmt.Errorf("storage: save %q: %w", r.Key, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit: %w", err)
	}
	return nil
}

// All retrieves every stored entry in insertion order.
func (s *Store) All() ([]Row, error) {
	rows, err := s.db.Query(
		`SELECT key, kind, value
		 FROM config_entries
		 ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query entries: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Key, &r.Kind, &r.Value); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}
