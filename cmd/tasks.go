package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/nibzard/todo-go/internal/manager"
	"github.com/nibzard/todo-go/internal/todo"
	"github.com/nibzard/todo-go/internal/ui"
	"github.com/nibzard/todo-go/internal/utils"
)

// Task status filters for ls.
const (
	statusAll     = "all"
	statusDone    = "done"
	statusPending = "pending"
)

// initCommand creates the data file with its header row if missing.
func initCommand(e *env, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	if err := e.newManager().EnsureStore(); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Data file: %s\n", e.cfg.DataFile)
	return nil
}

// lsCommand lists tasks, optionally filtered by status.
func lsCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	status := fs.String("status", statusAll, "Filter by status: all, done, pending")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	keep, err := statusFilter(*status)
	if err != nil {
		return err
	}

	tasks, err := e.newManager().ListAll()
	if err != nil {
		return err
	}

	shown := 0
	for _, t := range tasks {
		if !keep(t) {
			continue
		}
		fmt.Fprintln(e.stdout, ui.FormatTask(t))
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(e.stdout, "No tasks found.")
	}
	return nil
}

func statusFilter(status string) (func(todo.Task) bool, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case statusAll, "":
		return func(todo.Task) bool { return true }, nil
	case statusDone:
		return func(t todo.Task) bool { return t.Finished }, nil
	case statusPending:
		return func(t todo.Task) bool { return !t.Finished }, nil
	default:
		return nil, fmt.Errorf("invalid status %q: must be one of %s, %s, %s", status, statusAll, statusDone, statusPending)
	}
}

// addCommand adds a task named by the joined arguments.
func addCommand(e *env, args []string) error {
	name := utils.NormalizeName(strings.Join(args, " "), e.cfg.CapitalizeNames)
	if name == "" {
		return manager.ErrEmptyName
	}
	task, err := e.newManager().Add(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Added #%d: %s\n", task.ID, task.Name)
	return nil
}

// updateCommand renames a task or changes its finished flag.
func updateCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	name := fs.String("name", "", "New task name")
	finished := fs.String("finished", "", "New status: Y or N")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: todo update [-name NAME] [-finished Y|N] <id>")
	}
	id, err := utils.ParseID(fs.Arg(0))
	if err != nil {
		return err
	}

	var opts manager.UpdateOptions
	visited := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })
	if visited["name"] {
		n := utils.NormalizeName(*name, e.cfg.CapitalizeNames)
		if n == "" {
			return manager.ErrEmptyName
		}
		opts.Name = &n
	}
	if visited["finished"] {
		flagValue, ok := utils.ParseFlag(*finished)
		if !ok {
			return fmt.Errorf("invalid -finished value %q: must be Y or N", *finished)
		}
		opts.Finished = &flagValue
	}
	if opts.Name == nil && opts.Finished == nil {
		return fmt.Errorf("nothing to update: pass -name or -finished")
	}

	task, found, err := e.newManager().Update(id, opts)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("task %d: %w", id, manager.ErrNotFound)
	}
	fmt.Fprintf(e.stdout, "Updated #%d: %s [%s]\n", task.ID, task.Name, task.Status())
	return nil
}

// rmCommand deletes a task by ID.
func rmCommand(e *env, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: todo rm <id>")
	}
	id, err := utils.ParseID(args[0])
	if err != nil {
		return err
	}
	deleted, err := e.newManager().Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("task %d: %w", id, manager.ErrNotFound)
	}
	fmt.Fprintf(e.stdout, "Deleted #%d\n", id)
	return nil
}
