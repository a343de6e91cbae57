// Package logger implements the engine logger: a level threshold, a four
// slot line template (time, level, source file, message) and up to two sinks,
// a console writer and an append-mode log file.
//
// A Logger is safe for concurrent use. Every operation takes the same mutex,
// except the level check at the top of Log, which reads the threshold
// atomically and may see a value that is about to change.
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

var (
	ErrInvalidLevel  = errors.New("logger: invalid level")
	ErrInvalidFormat = errors.New("logger: invalid format")
)

// Logger writes formatted lines to a console sink and an optional file sink.
// The zero value is not usable; create one with New.
type Logger struct {
	level atomic.Int32

	mu          sync.Mutex
	initialized bool
	format      string
	console     io.Writer
	file        *os.File
	filePath    string

	diag *log.Logger
	now  func() time.Time
}

// Option configures a Logger at construction.
type Option func(*Logger)

// WithDiagnostics redirects the logger's own warnings (failed file opens,
// truncated lines, rejected settings). They go to standard error by default.
func WithDiagnostics(w io.Writer) Option {
	return func(l *Logger) {
		l.diag = newDiag(w)
	}
}

// WithClock replaces the time source used for the time slot.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		l.now = now
	}
}

// New creates a logger. It bootstraps itself with defaults (INFO, the default
// format, standard output, no file) on first use.
func New(opts ...Option) *Logger {
	l := &Logger{
		diag: newDiag(os.Stderr),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.level.Store(int32(Info))
	return l
}

func newDiag(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "logger",
	})
}

// bootstrapLocked installs the defaults once per lifecycle.
func (l *Logger) bootstrapLocked() {
	if l.initialized {
		return
	}
	l.level.Store(int32(Info))
	l.format = DefaultFormat
	l.console = os.Stdout
	l.file = nil
	l.filePath = ""
	l.initialized = true
	l.diag.Debug("core initialized", "console", "stdout")
}

// Init bootstraps the logger if needed and applies a new configuration.
//
// A nil console falls back to standard output. A non-empty filePath is opened
// for appending; if that fails the logger keeps logging to the console only.
// An invalid level falls back to INFO and a warning line is logged. An empty
// format selects DefaultFormat, as does a format without exactly four verbs.
func (l *Logger) Init(console io.Writer, filePath string, level Level, format string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.bootstrapLocked()
	l.diag.Debug("reconfiguring", "file", filePath, "level", level, "format", format)

	badLevel := !level.Valid()
	if badLevel {
		l.level.Store(int32(Info))
	} else {
		l.level.Store(int32(level))
	}

	if console == nil {
		console = os.Stdout
	}
	l.console = console

	l.format = DefaultFormat
	if format != "" {
		if err := validateFormat(format); err != nil {
			l.diag.Warn("rejected log format, using default", "error", err)
		} else {
			l.format = format
		}
	}

	l.closeFileLocked()
	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			l.diag.Warn("cannot open log file, file logging disabled", "path", filePath, "error", err)
		} else {
			l.file = f
			l.filePath = filePath
			l.diag.Debug("log file opened", "path", filePath)
		}
	}

	if badLevel {
		l.writeLocked(Warn, "logger", fmt.Sprintf("invalid log level %d, using %s", int32(level), Info))
	}
}

// SetLevel changes the threshold. An invalid level is rejected and the
// current threshold is kept.
func (l *Logger) SetLevel(level Level) error {
	if !level.Valid() {
		l.diag.Error("level not changed", "level", int32(level))
		return fmt.Errorf("%w: %d", ErrInvalidLevel, int32(level))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.bootstrapLocked()
	prev := Level(l.level.Load())
	l.level.Store(int32(level))
	l.diag.Debug("level changed", "from", prev, "to", level)
	return nil
}

// SetFormat replaces the line template. An empty format restores
// DefaultFormat. A format that does not have exactly four verbs is rejected
// and the current template is kept.
func (l *Logger) SetFormat(format string) error {
	if format == "" {
		format = DefaultFormat
	}
	if err := validateFormat(format); err != nil {
		l.diag.Error("format not changed", "error", err)
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.bootstrapLocked()
	l.format = format
	l.diag.Debug("format changed", "format", format)
	return nil
}

// Level returns the current threshold.
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// Format returns the current line template.
func (l *Logger) Format() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.bootstrapLocked()
	return l.format
}

// IsFullyInitialized reports whether the logger is configured with both a
// console and a file sink.
func (l *Logger) IsFullyInitialized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.initialized && l.console != nil && l.file != nil
}

// Log formats a message and writes one line to every active sink. file fills
// the source-file slot of the template.
func (l *Logger) Log(level Level, file, format string, args ...any) {
	if level < Level(l.level.Load()) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.bootstrapLocked()
	l.writeLocked(level, file, fmt.Sprintf(format, args...))
}

// Debugf logs at DEBUG with the caller's source file.
func (l *Logger) Debugf(format string, args ...any) {
	l.logCaller(Debug, format, args...)
}

// Infof logs at INFO with the caller's source file.
func (l *Logger) Infof(format string, args ...any) {
	l.logCaller(Info, format, args...)
}

// Warnf logs at WARN with the caller's source file.
func (l *Logger) Warnf(format string, args ...any) {
	l.logCaller(Warn, format, args...)
}

// Errorf logs at ERROR with the caller's source file.
func (l *Logger) Errorf(format string, args ...any) {
	l.logCaller(Error, format, args...)
}

func (l *Logger) logCaller(level Level, format string, args ...any) {
	if level < Level(l.level.Load()) {
		return
	}
	l.Log(level, callerFile(3), format, args...)
}

// callerFile returns "dir/file.go" for the frame skip levels up.
func callerFile(skip int) string {
	_, path, _, ok := runtime.Caller(skip)
	if !ok {
		return "???"
	}
	return filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path))
}

func (l *Logger) writeLocked(level Level, file, msg string) {
	if l.console == nil && l.file == nil {
		l.diag.Error("no active output sinks")
		return
	}

	line, truncated := render(l.format, l.now().Format(timeLayout), level, file, msg)
	if truncated {
		l.diag.Warn("log line truncated", "limit", MaxLineSize)
	}

	if l.console != nil {
		l.emit(l.console, line)
	}
	if l.file != nil {
		l.emit(l.file, line)
	}
}

type syncer interface{ Sync() error }

type flusher interface{ Flush() error }

func (l *Logger) emit(w io.Writer, line string) {
	if _, err := io.WriteString(w, line); err != nil {
		l.diag.Error("sink write failed", "error", err)
		return
	}
	flush(w)
}

func flush(w io.Writer) {
	switch s := w.(type) {
	case flusher:
		//nolint:errcheck // Best-effort flush
		s.Flush()
	case *os.File:
		// Sync fails on terminals and pipes; only regular files need it.
		if s != os.Stdout && s != os.Stderr {
			//nolint:errcheck // Best-effort flush
			s.Sync()
		}
	case syncer:
		//nolint:errcheck // Best-effort flush
		s.Sync()
	}
}

func (l *Logger) closeFileLocked() {
	if l.file == nil {
		return
	}
	if err := l.file.Sync(); err != nil {
		l.diag.Debug("log file sync failed", "path", l.filePath, "error", err)
	}
	if err := l.file.Close(); err != nil {
		l.diag.Warn("log file close failed", "path", l.filePath, "error", err)
	}
	l.file = nil
	l.filePath = ""
}

// Destroy flushes and closes the sinks and returns the logger to its
// uninitialized state. The next call bootstraps it again. Destroy is
// idempotent.
func (l *Logger) Destroy() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return
	}

	l.closeFileLocked()
	if l.console != nil {
		flush(l.console)
	}
	l.console = nil
	l.format = ""
	l.initialized = false
	l.diag.Debug("shut down")
}
