// Package util provides small string, path and timing helpers shared by the
// engine packages.
package util

import (
	"errors"
	"os"
	"strings"
)

// Separator is the platform path separator used by Join.
const Separator = os.PathSeparator

// Join concatenates two path segments with exactly one separator between
// them, whichever side already supplies it. An empty segment yields the other
// segment unchanged.
func Join(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}

	aSep := a[len(a)-1] == Separator
	bSep := b[0] == Separator

	switch {
	case aSep && bSep:
		return a + b[1:]
	case aSep || bSep:
		return a + b
	default:
		return a + string(Separator) + b
	}
}

// ArgvJoin joins argv[start:] with sep. A start outside the slice yields an
// empty string.
func ArgvJoin(argv []string, sep string, start int) string {
	if start < 0 || start >= len(argv) {
		return ""
	}
	return strings.Join(argv[start:], sep)
}

// MakeDir creates path and any missing parents. A directory that already
// exists is not an error.
func MakeDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	return nil
}
