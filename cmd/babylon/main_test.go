package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnlesterdev/babylon/internal/config"
	"github.com/johnlesterdev/babylon/internal/engine"
	"github.com/johnlesterdev/babylon/internal/game"
	"github.com/johnlesterdev/babylon/internal/logger"
	"github.com/johnlesterdev/babylon/internal/platform/tui"
)

// quitPlatform opens a terminal window fed with a single quit key.
func quitPlatform() game.Platform {
	return tui.NewPlatform(
		tui.WithInput(strings.NewReader("q")),
		tui.WithOutput(io.Discard),
	)
}

func testApp(t *testing.T) (*app, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	displayFile, err := os.Create(filepath.Join(t.TempDir(), "display"))
	require.NoError(t, err)
	t.Cleanup(func() { displayFile.Close() })

	return &app{
		stdout:      stdout,
		stderr:      stderr,
		baseDir:     t.TempDir(),
		newPlatform: quitPlatform,
		display:     tui.NewDisplay(displayFile),
	}, stdout, stderr
}

func newQuietLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	l := logger.New(logger.WithDiagnostics(io.Discard))
	l.Init(out, "", logger.Info, "")
	t.Cleanup(l.Destroy)
	return l, out
}

func assertUntouched(t *testing.T, a *app) {
	t.Helper()
	entries, err := os.ReadDir(a.baseDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "paths must not be created")
}

func TestHelp(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {"--help"}, {"extra", "--help"}, {"--help", "--version"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			a, stdout, _ := testApp(t)

			code := execute(args, a)
			assert.Equal(t, 0, code)
			assert.Equal(t, helpText(), stdout.String())
			assert.True(t, strings.HasPrefix(stdout.String(), "Usage: babylon [options]\n"))
			assertUntouched(t, a)
		})
	}
}

func TestVersion(t *testing.T) {
	for _, args := range [][]string{{"-v"}, {"--version"}, {"arg", "-v"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			a, stdout, _ := testApp(t)

			code := execute(args, a)
			assert.Equal(t, 0, code)
			assert.Equal(t, "Babylon v0.1.1\nWritten by: JohnLesterDev\n", stdout.String())
			assertUntouched(t, a)
		})
	}
}

func TestRunQuitsImmediately(t *testing.T) {
	a, stdout, stderr := testApp(t)

	screen := &bytes.Buffer{}
	a.newPlatform = func() game.Platform {
		return tui.NewPlatform(
			tui.WithInput(strings.NewReader("q")),
			tui.WithOutput(screen),
		)
	}

	code := execute([]string{"--unknown-flag"}, a)
	require.Equal(t, 0, code)

	assert.Empty(t, stdout.String())
	assert.NotContains(t, screen.String(), "Game initialized.", "log lines stay off the window")
	assert.NotContains(t, screen.String(), "Starting game loop...")

	out := stderr.String()
	assert.Contains(t, out, "Initializing game...")
	assert.Contains(t, out, "Game initialized.")
	assert.Contains(t, out, "Starting game loop...")
	assert.Contains(t, out, "Destroying game...")
	assert.Contains(t, out, "Monitor query failed")

	paths, err := engine.InitPaths(a.baseDir)
	require.NoError(t, err)

	logData, err := os.ReadFile(paths.LogFile())
	require.NoError(t, err)
	assert.Contains(t, string(logData), "Destroying game...")

	settings, err := config.LoadFile(paths.ConfigFile())
	require.NoError(t, err, "defaults written on first run")
	assert.Equal(t, 640, settings.Int(keyWindowWidth, 0))
	assert.Equal(t, "info", settings.String(keyLogLevel, ""))
}

func TestRunUsesSettings(t *testing.T) {
	a, _, stderr := testApp(t)

	paths, err := engine.InitPaths(a.baseDir)
	require.NoError(t, err)

	m := config.NewMap()
	require.NoError(t, m.Add(keyLogLevel, config.String("warn")))
	require.NoError(t, config.WriteFile(m, paths.ConfigFile()))

	require.Equal(t, 0, execute(nil, a))
	assert.NotContains(t, stderr.String(), "Initializing game...", "INFO lines filtered by log.level")
}

func TestRunInitFailure(t *testing.T) {
	a, _, stderr := testApp(t)
	out, err := os.Create(filepath.Join(t.TempDir(), "screen"))
	require.NoError(t, err)
	defer out.Close()

	// A regular file is not a terminal, so the platform refuses to start.
	a.newPlatform = func() game.Platform {
		return tui.NewPlatform(tui.WithOutput(out))
	}

	code := execute(nil, a)
	assert.Equal(t, exitInitFailure, code)
	assert.Contains(t, stderr.String(), "failed to initialize game")
}

func TestLoadSettingsMalformedFile(t *testing.T) {
	a, _, _ := testApp(t)
	paths, err := engine.InitPaths(a.baseDir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(paths.ConfigFile(), []byte("garbage\n"), 0o644))

	log, _ := newQuietLogger(t)
	opts := loadSettings(log, paths)
	assert.Equal(t, game.DefaultOptions(), opts)

	data, err := os.ReadFile(paths.ConfigFile())
	require.NoError(t, err)
	assert.Equal(t, "garbage\n", string(data), "malformed file is left alone")
}

func TestLoadSettingsValues(t *testing.T) {
	a, _, _ := testApp(t)
	paths, err := engine.InitPaths(a.baseDir)
	require.NoError(t, err)

	m := config.NewMap()
	require.NoError(t, m.Add(keyWindowTitle, config.String("Demo")))
	require.NoError(t, m.Add(keyWindowWidth, config.Int(-5)))
	require.NoError(t, m.Add(keyWindowHeight, config.Int(200)))
	require.NoError(t, m.Add(keyGameFPS, config.Int(30)))
	require.NoError(t, config.WriteFile(m, paths.ConfigFile()))

	log, _ := newQuietLogger(t)
	opts := loadSettings(log, paths)
	assert.Equal(t, game.Options{Title: "Demo", Width: 640, Height: 200, TickRate: 30}, opts)
}
