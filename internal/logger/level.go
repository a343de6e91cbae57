package logger

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Level is the severity of a log line. Lines below the logger's threshold are
// dropped.
type Level int32

const (
	Debug Level = iota
	Info
	Warn
	Error
)

// String returns the name printed in the level slot of a line.
func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l >= Debug && l <= Error
}

// ParseLevel converts a level name such as "debug" or "WARN" into a Level.
func ParseLevel(s string) (Level, error) {
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return Info, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}

	switch lvl {
	case log.DebugLevel:
		return Debug, nil
	case log.InfoLevel:
		return Info, nil
	case log.WarnLevel:
		return Warn, nil
	case log.ErrorLevel:
		return Error, nil
	default:
		return Info, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}
