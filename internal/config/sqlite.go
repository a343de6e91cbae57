package config

import (
	"fmt"
	"os"

	"github.com/johnlesterdev/babylon/internal/storage"
)

// sqliteFormat keeps the map in a SQLite database through the storage
// package. The whole map is replaced in one transaction on write.
type sqliteFormat struct{}

func (sqliteFormat) load(path string) (*Map, error) {
	// storage.Open would create a missing database.
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	store, err := storage.Open(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	rows, err := store.All()
	if err != nil {
		return nil, err
	}

	m := NewMap()
	for _, r := range rows {
		kind, err := ParseKind(r.Kind)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", r.Key, err)
		}
		v, err := ParseValue(kind, r.Value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", r.Key, err)
		}
		if err := m.Add(r.Key, v); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (sqliteFormat) write(m *Map, path string) error {
	store, err := storage.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries := m.Entries()
	rows := make([]storage.Row, len(entries))
	for i, e := range entries {
		rows[i] = storage.Row{
			Key:   e.Key,
			Kind:  e.Value.Kind().String(),
			Value: e.Value.String(),
		}
	}
	return store.ReplaceAll(rows)
}
