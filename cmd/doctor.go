package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/storage"
	"github.com/nibzard/todo-go/internal/todo"
)

// doctorCommand checks the configuration and the data file.
func doctorCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("todo doctor", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	dataPath := e.cfg.DataFile
	if len(remaining) == 1 {
		dataPath = remaining[0]
		if !filepath.IsAbs(dataPath) && e.cfg.WorkDir != "" {
			dataPath = filepath.Join(e.cfg.WorkDir, dataPath)
		}
	}

	w := e.stdout
	fmt.Fprintln(w, "Todo Doctor")
	fmt.Fprintln(w, "===========")
	fmt.Fprintln(w)

	allOK := true

	// Config values and where they came from
	fmt.Fprintln(w, "Config:")
	if len(e.sources.Files) == 0 {
		fmt.Fprintln(w, "  Files: (none)")
	}
	for _, f := range e.sources.Files {
		fmt.Fprintf(w, "  File: %s\n", f)
	}
	for _, field := range config.Fields() {
		value, _ := e.cfg.Value(field)
		if value == "" {
			value = "(empty)"
		}
		fmt.Fprintf(w, "  %s = %s (%s)\n", field, value, e.sources.Source(field))
	}
	if err := e.cfg.Validate(); err != nil {
		fmt.Fprintf(w, "  ❌ %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ Valid")
	}
	fmt.Fprintln(w)

	// Data file
	fmt.Fprintf(w, "Data file: %s\n", dataPath)
	if !checkDataFile(e, dataPath, *verbose) {
		allOK = false
	}
	fmt.Fprintln(w)

	// Run logs
	if e.cfg.LogDir == "" {
		fmt.Fprintln(w, "Log directory: (disabled)")
	} else {
		logDir, err := logging.FindLogDir(e.cfg.LogDir, e.cfg.WorkDir)
		if err != nil {
			fmt.Fprintf(w, "Log directory: %s\n", e.cfg.LogDir)
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		} else {
			fmt.Fprintf(w, "Log directory: %s\n", logDir)
			runs, err := logging.FindLogRuns(logDir)
			switch {
			case err != nil:
				fmt.Fprintf(w, "  ❌ Error: %v\n", err)
				allOK = false
			case len(runs) == 0:
				fmt.Fprintln(w, "  ⚠️  No runs logged yet")
			default:
				fmt.Fprintf(w, "  ✅ %d run(s), latest %s\n", len(runs), filepath.Base(runs[0]))
			}
		}
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "❌ Some checks failed")
	return errors.New("doctor checks failed")
}

// checkDataFile validates path row by row without creating it.
func checkDataFile(e *env, path string, verbose bool) bool {
	w := e.stdout
	if path == "" {
		fmt.Fprintln(w, "  ❌ Error: no data file configured")
		return false
	}

	info, err := e.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  ⚠️  Not found (will be created on first use)")
			return true
		}
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	}
	if info.IsDir() {
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		return false
	}
	fmt.Fprintln(w, "  ✅ OK")

	rows, err := storage.New(e.fs, path, storage.Headers, storage.WithLogger(e.logger)).ReadAll()
	if err != nil {
		fmt.Fprintf(w, "  ❌ Load error: %v\n", err)
		return false
	}

	result := todo.ValidateRows(rows)
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}
	if !result.Valid {
		fmt.Fprintln(w, "  ❌ Validation failed:")
		for _, err := range result.Errors {
			fmt.Fprintf(w, "     - %v\n", err)
		}
		return false
	}
	fmt.Fprintf(w, "  ✅ Valid (%d rows)\n", result.Rows)

	if verbose {
		tasks, err := todo.FromRows(rows)
		if err != nil {
			fmt.Fprintf(w, "  ❌ Decode error: %v\n", err)
			return false
		}
		for _, t := range tasks {
			fmt.Fprintf(w, "    - [%s] #%d: %s\n", t.Status(), t.ID, t.Name)
		}
	}
	return true
}
