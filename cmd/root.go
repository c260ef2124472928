// Package cmd implements the CLI command structure for todo.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/manager"
	"github.com/nibzard/todo-go/internal/storage"
	"github.com/nibzard/todo-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// env carries the resolved configuration and I/O for one invocation.
type env struct {
	cfg     *config.Config
	sources *config.ConfigWithSources
	logger  *log.Logger
	fs      afero.Fs
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// Run executes the todo CLI.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	// Determine the subcommand
	subcommand := ""
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	}

	e := &env{
		cfg:     cws.Config,
		sources: cws,
		fs:      afero.NewOsFs(),
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
	}

	// doctor reports invalid configuration instead of refusing to start.
	if subcommand == "doctor" {
		e.logger = logging.Discard()
		return doctorCommand(e, remainingArgs)
	}

	if err := e.cfg.Validate(); err != nil {
		return err
	}
	logger, closer, err := logging.New(logOptions(e.cfg, stderr))
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer closer.Close()
	e.logger = logger
	e.logger.Debug("starting", "command", subcommand, "data_file", e.cfg.DataFile)

	switch subcommand {
	case "":
		if e.cfg.UseTUI() {
			return tuiCommand(ctx, e, remainingArgs)
		}
		return shellCommand(ctx, e, remainingArgs)
	case "shell":
		return shellCommand(ctx, e, remainingArgs)
	case "tui":
		return tuiCommand(ctx, e, remainingArgs)
	case "init":
		return initCommand(e, remainingArgs)
	case "ls", "list":
		return lsCommand(e, remainingArgs)
	case "add":
		return addCommand(e, remainingArgs)
	case "update":
		return updateCommand(e, remainingArgs)
	case "rm", "delete":
		return rmCommand(e, remainingArgs)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// logOptions overlays the configured logging settings on the defaults.
func logOptions(cfg *config.Config, stderr io.Writer) logging.Options {
	opts := logging.DefaultOptions()
	if cfg.LogLevel != "" {
		opts.Level = cfg.LogLevel
	}
	if cfg.LogFormat != "" {
		opts.Format = cfg.LogFormat
	}
	opts.Timestamps = cfg.LogTimestamps
	opts.Caller = cfg.LogCaller
	opts.Dir = cfg.LogDir
	opts.WorkDir = cfg.WorkDir
	if stderr != nil {
		opts.Output = stderr
	}
	return opts
}

// newManager builds the manager over the configured data file.
func (e *env) newManager() *manager.Manager {
	store := storage.New(e.fs, e.cfg.DataFile, storage.Headers, storage.WithLogger(e.logger))
	return manager.New(store, manager.WithLogger(e.logger))
}

func (e *env) uiOptions() []ui.Option {
	return []ui.Option{
		ui.WithCapitalize(e.cfg.CapitalizeNames),
		ui.WithNoColor(e.cfg.NoColor),
		ui.WithLogger(e.logger),
	}
}

// shellCommand runs the numbered menu.
func shellCommand(ctx context.Context, e *env, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	return ui.NewShell(e.newManager(), e.stdin, e.stdout, e.uiOptions()...).Run(ctx)
}

// tuiCommand launches the full-screen browser.
func tuiCommand(ctx context.Context, e *env, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	return ui.RunTUI(ctx, e.newManager(), e.uiOptions()...)
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "todo version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todo - A personal to-do list kept in a CSV file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todo [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  shell               Interactive menu (default command)")
	fmt.Fprintln(w, "  tui                 Full-screen task browser")
	fmt.Fprintln(w, "  init                Create the data file if missing")
	fmt.Fprintln(w, "  ls [-status s]      List tasks (all, done, pending)")
	fmt.Fprintln(w, "  add <name...>       Add a task")
	fmt.Fprintln(w, "  update [-name s] [-finished Y|N] <id>")
	fmt.Fprintln(w, "                      Rename a task or change its status")
	fmt.Fprintln(w, "  rm <id>             Delete a task")
	fmt.Fprintln(w, "  doctor [-v] [file]  Check config and data file validity")
	fmt.Fprintln(w, "  version             Show version information")
	fmt.Fprintln(w, "  help                Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TODO_DATA_FILE, TODO_UI, TODO_CAPITALIZE, TODO_NO_COLOR, NO_COLOR,")
	fmt.Fprintln(w, "  TODO_LOG_LEVEL, TODO_LOG_FORMAT, TODO_LOG_TIMESTAMPS, TODO_LOG_CALLER, TODO_LOG_DIR")
}
