package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// format is an on-disk encoding of a Map.
type format interface {
	load(path string) (*Map, error)
	write(m *Map, path string) error
}

// formatFor picks the encoding from the file extension: .yaml/.yml for
// YAML, .db/.sqlite for SQLite, the line-based text format otherwise.
func formatFor(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlFormat{}
	case ".db", ".sqlite", ".sqlite3":
		return sqliteFormat{}
	default:
		return textFormat{}
	}
}

// LoadFile reads a map from path. It never returns nil: a missing or
// malformed file yields an empty map together with the error.
func LoadFile(path string) (*Map, error) {
	m, err := formatFor(path).load(path)
	if err != nil {
		return NewMap(), fmt.Errorf("config: cannot load %s: %w", path, err)
	}
	return m, nil
}

// WriteFile stores m at path. Text and YAML files are written to a temporary
// file and renamed into place, so a failed write leaves any previous file
// intact.
func WriteFile(m *Map, path string) error {
	if m == nil {
		m = NewMap()
	}
	if err := formatFor(path).write(m, path); err != nil {
		return fmt.Errorf("config: cannot write %s: %w", path, err)
	}
	return nil
}

func readWith(path string, decode func(io.Reader) (*Map, error)) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f)
}

// writeAtomic writes through a temp file in the target directory and renames
// it over path.
func writeAtomic(path string, encode func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := encode(tmp); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
