// main.go - Entry point and dependency injection
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sstent/stravarchive-go/internal/archive"
	"github.com/sstent/stravarchive-go/internal/config"
	"github.com/sstent/stravarchive-go/internal/logging"
)

const usage = `usage: stravarchive <command> [flags]

commands:
  verify [--dir] <dir>                          decode the export and summarize it
  trend --dir --activity --metric [--since --until]
                                                one metric over time for one activity type
  stats --dir                                   totals per activity type
  tracks --dir [--activity] [--limit]           decode the raw track files
`

// errUsage marks a command line problem; the message has already been shown.
var errUsage = errors.New("usage error")

type App struct {
	cfg    *config.Config
	logger *slog.Logger
	loc    *time.Location
	loader *archive.Loader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stravarchive: %v\n", err)
		os.Exit(2)
	}

	app, err := newApp(cfg, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stravarchive: %v\n", err)
		os.Exit(2)
	}
	slog.SetDefault(app.logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := app.run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func newApp(cfg *config.Config, stdout, stderr io.Writer) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Logging, stderr)
	return &App{
		cfg:    cfg,
		logger: logger,
		loc:    loc,
		loader: archive.NewLoader(logger),
		stdout: stdout,
		stderr: stderr,
	}, nil
}

// run dispatches one subcommand and returns the process exit code.
func (app *App) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(app.stderr, usage)
		return 2
	}

	var cmd func(context.Context, []string) (string, error)
	switch args[0] {
	case "verify":
		cmd = app.verify
	case "trend":
		cmd = app.trend
	case "stats":
		cmd = app.stats
	case "tracks":
		cmd = app.tracks
	case "help", "-h", "--help":
		fmt.Fprint(app.stdout, usage)
		return 0
	default:
		fmt.Fprintf(app.stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	dir, err := cmd(ctx, args[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		fmt.Fprintf(app.stdout, "%s: error: %v\n", dir, err)
		return 1
	}
}

// flagSet returns a subcommand flag set with the shared --dir flag.
func (app *App) flagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(app.stderr)
	dir := fs.String("dir", app.cfg.ArchiveDir, "extracted export directory")
	return fs, dir
}

// parseFlags parses args and resolves the archive directory, which may also
// be given as the first positional argument.
func (app *App) parseFlags(fs *flag.FlagSet, dir *string, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", errUsage
	}
	if fs.NArg() > 0 {
		*dir = fs.Arg(0)
	}
	if *dir == "" {
		fmt.Fprintf(app.stderr, "%s: missing archive directory\n", fs.Name())
		fs.Usage()
		return "", errUsage
	}
	return *dir, nil
}
