// Package ui provides the interactive front ends: the numbered menu shell
// and the optional full-screen TUI.
package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/todo-go/internal/manager"
	"github.com/nibzard/todo-go/internal/todo"
	"github.com/nibzard/todo-go/internal/utils"
)

// Manager is the task API driven by the shell and the TUI.
type Manager interface {
	EnsureStore() error
	ListAll() ([]todo.Task, error)
	Add(name string) (todo.Task, error)
	Update(id int, opts manager.UpdateOptions) (todo.Task, bool, error)
	Delete(id int) (bool, error)
}

const (
	banner    = "--- Personal TO-DO App ---"
	listTitle = "--- Your Tasks ---"
	separator = "------------------"
)

var menuItems = []string{
	"1. Create/Check DB file",
	"2. List all tasks",
	"3. Add a new task",
	"4. Update a task",
	"5. Delete a task",
	"6. Exit",
}

// Shell is the numbered-menu interactive loop.
type Shell struct {
	mgr  Manager
	in   io.Reader
	out  io.Writer
	st   styles
	opts options

	lines <-chan inputLine
}

// NewShell creates a shell reading choices from in and writing to out.
func NewShell(mgr Manager, in io.Reader, out io.Writer, opts ...Option) *Shell {
	o := applyOptions(opts)
	return &Shell{
		mgr:  mgr,
		in:   in,
		out:  out,
		st:   newStyles(out, o.noColor),
		opts: o,
	}
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
// End of input is a normal exit; cancellation returns ctx.Err().
func (s *Shell) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	s.lines = scanLines(s.in, done)

	s.println("")
	s.println(s.st.title.Render(banner))

	for {
		s.showMenu()
		choice, err := s.prompt(ctx, "Enter your choice [1-6]: ")
		if err != nil {
			return endOfInput(err)
		}

		var actionErr error
		switch choice {
		case "1":
			s.handleCreate()
		case "2":
			s.handleList()
		case "3":
			actionErr = s.handleAdd(ctx)
		case "4":
			actionErr = s.handleUpdate(ctx)
		case "5":
			actionErr = s.handleDelete(ctx)
		case "6":
			s.println("Exiting application. Goodbye!")
			return nil
		default:
			s.println(s.st.warning.Render("Invalid choice, please try again."))
		}
		if actionErr != nil {
			return endOfInput(actionErr)
		}
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Shell) showMenu() {
	s.println("")
	s.println("Menu:")
	for _, item := range menuItems {
		s.println(item)
	}
}

func (s *Shell) handleCreate() {
	if err := s.mgr.EnsureStore(); err != nil {
		s.fail("create", err)
		return
	}
	s.println(s.st.success.Render("-> Database file checked/created successfully."))
}

func (s *Shell) handleList() {
	s.println("")
	s.println(s.st.title.Render(listTitle))
	tasks, err := s.mgr.ListAll()
	if err != nil {
		s.fail("list", err)
	} else if len(tasks) == 0 {
		s.println("No tasks found.")
	} else {
		for _, t := range tasks {
			s.println(formatTask(s.st, t))
		}
	}
	s.println(s.st.subtle.Render(separator))
}

func (s *Shell) handleAdd(ctx context.Context) error {
	raw, err := s.prompt(ctx, "Enter task name: ")
	if err != nil {
		return err
	}
	name := utils.NormalizeName(raw, s.opts.capitalize)
	if name == "" {
		s.println(s.st.warning.Render("Task name cannot be empty."))
		return nil
	}

	task, err := s.mgr.Add(name)
	if err != nil {
		s.fail("add", err)
		return nil
	}
	s.println(s.st.success.Render(fmt.Sprintf("-> Task '#%d: %s' added successfully.", task.ID, task.Name)))
	return nil
}

func (s *Shell) handleUpdate(ctx context.Context) error {
	id, ok, err := s.promptID(ctx, "Enter the ID of the task to update: ")
	if err != nil || !ok {
		return err
	}

	var opts manager.UpdateOptions

	rawName, err := s.prompt(ctx, "Enter new name (or press Enter to skip): ")
	if err != nil {
		return err
	}
	if name := utils.NormalizeName(rawName, s.opts.capitalize); name != "" {
		opts.Name = &name
	}

	rawStatus, err := s.prompt(ctx, "Enter new status (Y/N) (or press Enter to skip): ")
	if err != nil {
		return err
	}
	if finished, ok := utils.ParseFlag(rawStatus); ok {
		opts.Finished = &finished
	}

	_, found, err := s.mgr.Update(id, opts)
	switch {
	case err != nil:
		s.fail("update", err)
	case !found:
		s.notFound(id)
	default:
		s.println(s.st.success.Render(fmt.Sprintf("-> Task ID: %d updated successfully.", id)))
	}
	return nil
}

func (s *Shell) handleDelete(ctx context.Context) error {
	id, ok, err := s.promptID(ctx, "Enter the ID of the task to delete: ")
	if err != nil || !ok {
		return err
	}

	deleted, err := s.mgr.Delete(id)
	switch {
	case err != nil:
		s.fail("delete", err)
	case !deleted:
		s.notFound(id)
	default:
		s.println(s.st.success.Render(fmt.Sprintf("-> Task no. %d deleted successfully.", id)))
	}
	return nil
}

// promptID reads a task ID. ok is false when the input was not a number;
// the user has already been told.
func (s *Shell) promptID(ctx context.Context, label string) (id int, ok bool, err error) {
	raw, err := s.prompt(ctx, label)
	if err != nil {
		return 0, false, err
	}
	id, perr := utils.ParseID(raw)
	if perr != nil {
		s.println(s.st.warning.Render("Invalid ID. Please enter a number."))
		return 0, false, nil
	}
	return id, true, nil
}

func (s *Shell) notFound(id int) {
	s.println(s.st.err.Render(fmt.Sprintf("-> Error: Task with ID: %d not found.", id)))
}

func (s *Shell) fail(op string, err error) {
	s.opts.logger.Error("operation failed", "op", op, "err", err)
	s.println(s.st.err.Render("-> Error: " + err.Error()))
}

// prompt prints label and waits for the next input line.
func (s *Shell) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(s.out, label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case in, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		if in.err != nil {
			return "", in.err
		}
		return in.text, nil
	}
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

// inputLine is one line of input without its line ending, or the read error
// that ended the input.
type inputLine struct {
	text string
	err  error
}

// scanLines feeds lines from r until EOF, a read error or until done is
// closed. Lines have no length limit. A final line without a newline is
// still delivered.
func scanLines(r io.Reader, done <-chan struct{}) <-chan inputLine {
	ch := make(chan inputLine)
	go func() {
		defer close(ch)
		br := bufio.NewReader(r)
		for {
			text, err := br.ReadString('\n')
			if text != "" {
				text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
				select {
				case ch <- inputLine{text: text}:
				case <-done:
					return
				}
			}
			if err == nil {
				continue
			}
			if !errors.Is(err, io.EOF) {
				select {
				case ch <- inputLine{err: fmt.Errorf("read input: %w", err)}:
				case <-done:
				}
			}
			return
		}
	}()
	return ch
}
