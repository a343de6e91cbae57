package config

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// textFormat stores one entry per line as key=<kind>:<value>. String values
// are Go-quoted; blank lines and lines starting with '#' are ignored.
//
//	window.title=string:"Babylon"
//	window.width=int:640
//	game.vsync=bool:true
type textFormat struct{}

func (textFormat) load(path string) (*Map, error) {
	return readWith(path, DecodeText)
}

func (textFormat) write(m *Map, path string) error {
	return writeAtomic(path, func(w io.Writer) error {
		return EncodeText(w, m)
	})
}

// DecodeText parses the text format.
func DecodeText(r io.Reader) (*Map, error) {
	m := NewMap()
	sc := bufio.NewScanner(r)
	// Lines grow with the value; EncodeText puts no bound on strings.
	sc.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, rest, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: line %d: expected key=<kind>:<value>", ErrMalformed, lineNo)
		}

		tag, raw, ok := strings.Cut(strings.TrimSpace(rest), ":")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: missing kind tag", ErrMalformed, lineNo)
		}
		kind, err := ParseKind(tag)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		if kind == KindString {
			unq, err := strconv.Unquote(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: string value must be quoted", ErrMalformed, lineNo)
			}
			raw = unq
		}

		v, err := ParseValue(kind, raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := m.Add(key, v); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// EncodeText writes m in the text format.
func EncodeText(w io.Writer, m *Map) error {
	bw := bufio.NewWriter(w)
	for _, e := range m.Entries() {
		if strings.ContainsAny(e.Key, "=\n\r") || strings.HasPrefix(strings.TrimSpace(e.Key), "#") ||
			strings.TrimSpace(e.Key) != e.Key {
			return fmt.Errorf("key %q cannot be stored in a text config", e.Key)
		}

		raw := e.Value.String()
		if e.Value.Kind() == KindString {
			raw = strconv.Quote(raw)
		}
		if _, err := fmt.Fprintf(bw, "%s=%s:%s\n", e.Key, e.Value.Kind(), raw); err != nil {
			return err
		}
	}
	return bw.Flush()
}
