// babylon is the Babylon game engine.
//
// Usage:
//
//	babylon              - Open the game window and run until it is closed
//	babylon -h, --help   - Display the help message
//	babylon -v, --version - Display the version information
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/johnlesterdev/babylon/internal/engine"
	"github.com/johnlesterdev/babylon/internal/game"
	"github.com/johnlesterdev/babylon/internal/monitor"
	"github.com/johnlesterdev/babylon/internal/platform/tui"
)

// exitInitFailure is returned when the game cannot start.
const exitInitFailure = -1

var errGameInit = errors.New("failed to initialize game")

func main() {
	os.Exit(execute(os.Args[1:], defaultApp()))
}

// app holds the collaborators of a run so tests can swap them.
type app struct {
	stdout io.Writer
	stderr io.Writer
	// baseDir overrides the per-user config directory when set.
	baseDir     string
	newPlatform func() game.Platform
	display     monitor.Display
}

func defaultApp() *app {
	return &app{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		newPlatform: func() game.Platform { return tui.NewPlatform() },
		display:     tui.NewDisplay(os.Stdout),
	}
}

func helpText() string {
	return fmt.Sprintf(`Usage: babylon [options]
Description: A game engine written by %[1]s

Options:
  -h, --help     Display this help message
  -v, --version  Display the version information

Written by %[1]s, and built for %[2]s/%[3]s
`, engine.Author, runtime.GOOS, runtime.GOARCH)
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "babylon",
		Short:   "A game engine written by " + engine.Author,
		Version: engine.Version,
		Args:    cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{
			UnknownFlags: true,
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run()
		},
	}

	cmd.SetHelpTemplate(helpText())
	cmd.SetVersionTemplate(engine.VersionText())
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	return cmd
}

// execute runs the root command and maps the outcome to an exit code.
func execute(args []string, a *app) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(a.stderr, err)
		if errors.Is(err, errGameInit) {
			return exitInitFailure
		}
		return 1
	}
	return 0
}
