package logger

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultFormat renders time, level, source file and message.
const DefaultFormat = "%s - [%s:%s]: %s"

const (
	maxTimeSize    = 64
	maxHeaderSize  = 64
	maxMessageSize = 1024

	// MaxLineSize is the largest rendered line, newline included.
	MaxLineSize = maxTimeSize + maxHeaderSize + maxMessageSize

	timeLayout = "15:04:05"
	slotCount  = 4
)

// validateFormat checks that format has exactly one string verb per slot.
// Only %s, %v and %q with flags, width and precision are accepted; '*' and
// explicit argument indexes would change how many arguments are consumed.
func validateFormat(format string) error {
	verbs := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			continue
		}
		for i < len(format) && strings.IndexByte("+-# 0123456789.", format[i]) >= 0 {
			i++
		}
		if i >= len(format) {
			return fmt.Errorf("%w: dangling %% in %q", ErrInvalidFormat, format)
		}
		switch format[i] {
		case 's', 'v', 'q':
			verbs++
		default:
			return fmt.Errorf("%w: unsupported verb %q in %q", ErrInvalidFormat, format[i], format)
		}
	}

	if verbs != slotCount {
		return fmt.Errorf("%w: %q has %d verbs, want %d", ErrInvalidFormat, format, verbs, slotCount)
	}
	return nil
}

// render substitutes the four slots and terminates the line. The second
// result reports whether the line had to be cut to MaxLineSize.
func render(format, ts string, level Level, file, msg string) (string, bool) {
	line := fmt.Sprintf(format, ts, level.String(), file, msg)
	line = strings.TrimSuffix(line, "\n")

	truncated := false
	if len(line) > MaxLineSize-1 {
		cut := MaxLineSize - 1
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		line = line[:cut]
		truncated = true
	}
	return line + "\n", truncated
}
