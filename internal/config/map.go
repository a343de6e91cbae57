// Package config is the engine's key/value settings store. A Map holds
// tagged scalar values (bool, int, float, string) under unique string keys
// and can be persisted to text, YAML or SQLite files.
//
// A Map is not safe for concurrent use.
package config

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("config: key not found")
	ErrDuplicateKey = errors.New("config: duplicate key")
	ErrEmptyKey     = errors.New("config: empty key")
	ErrNilValue     = errors.New("config: nil value")
	ErrMalformed    = errors.New("config: malformed file")
)

// Entry is one key and its value.
type Entry struct {
	Key   string
	Value Value
}

// Set replaces the entry's value, changing its kind if needed.
func (e *Entry) Set(v Value) error {
	if v == nil {
		return ErrNilValue
	}
	e.Value = v
	return nil
}

// Map is an insertion-ordered collection of entries looked up by linear
// scan. Entry pointers returned by Get stay valid while the map is alive.
type Map struct {
	entries []*Entry
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{}
}

// Destroy drops every entry. It is safe on a nil map and may be called more
// than once.
func (m *Map) Destroy() {
	if m == nil {
		return
	}
	for i := range m.entries {
		m.entries[i] = nil
	}
	m.entries = nil
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a snapshot of the entries in insertion order.
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, len(m.entries))
	for i, e := range m.entries {
		out[i] = *e
	}
	return out
}

// Get returns the entry for key.
func (m *Map) Get(key string) (*Entry, bool) {
	if m == nil {
		return nil, false
	}
	for _, e := range m.entries {
		if e.Key == key {
			return e, true
		}
	}
	return nil, false
}

// Add appends a new entry. Keys are unique: adding an existing key fails
// with ErrDuplicateKey and leaves the map unchanged.
func (m *Map) Add(key string, v Value) error {
	if key == "" {
		return ErrEmptyKey
	}
	if v == nil {
		return ErrNilValue
	}
	if _, ok := m.Get(key); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	m.entries = append(m.entries, &Entry{Key: key, Value: v})
	return nil
}

// Update replaces the value stored under key.
func (m *Map) Update(key string, v Value) error {
	e, ok := m.Get(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return e.Set(v)
}

// Set updates key if present and adds it otherwise.
func (m *Map) Set(key string, v Value) error {
	if e, ok := m.Get(key); ok {
		return e.Set(v)
	}
	return m.Add(key, v)
}

// Bool returns the bool stored under key, or def if it is absent or holds
// another kind.
func (m *Map) Bool(key string, def bool) bool {
	if e, ok := m.Get(key); ok {
		if v, ok := e.Value.(Bool); ok {
			return bool(v)
		}
	}
	return def
}

// Int returns the int stored under key, or def.
func (m *Map) Int(key string, def int) int {
	if e, ok := m.Get(key); ok {
		if v, ok := e.Value.(Int); ok {
			return int(v)
		}
	}
	return def
}

// Float returns the float stored under key, or def. Int values are widened.
func (m *Map) Float(key string, def float64) float64 {
	if e, ok := m.Get(key); ok {
		switch v := e.Value.(type) {
		case Float:
			return float64(v)
		case Int:
			return float64(v)
		}
	}
	return def
}

// String returns the string stored under key, or def.
func (m *Map) String(key string, def string) string {
	if e, ok := m.Get(key); ok {
		if v, ok := e.Value.(String); ok {
			return string(v)
		}
	}
	return def
}
