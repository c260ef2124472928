package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/todo-go/internal/manager"
	"github.com/nibzard/todo-go/internal/todo"
	"github.com/nibzard/todo-go/internal/utils"
)

// RunTUI starts the full-screen task browser.
func RunTUI(ctx context.Context, mgr Manager, opts ...Option) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(mgr, os.Stdout, applyOptions(opts))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiMode int

const (
	modeBrowse tuiMode = iota
	modeAdd
	modeRename
)

type tuiModel struct {
	mgr      Manager
	st       styles
	opts     options
	tasks    []todo.Task
	cursor   int
	mode     tuiMode
	input    textinput.Model
	status   string
	isErr    bool
	showHelp bool
}

func newTUIModel(mgr Manager, out io.Writer, opts options) *tuiModel {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 50
	return &tuiModel{
		mgr:   mgr,
		st:    newStyles(out, opts.noColor),
		opts:  opts,
		input: ti,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode != modeBrowse {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.mode != modeBrowse {
		return m.updateInput(key)
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case " ", "space", "x":
		m.toggle()
	case "a":
		m.mode = modeAdd
		m.input.Placeholder = "Task name"
		m.input.SetValue("")
		return m, m.input.Focus()
	case "e":
		task, ok := m.current()
		if !ok {
			return m, nil
		}
		m.mode = modeRename
		m.input.Placeholder = "New name"
		m.input.SetValue(task.Name)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case "d":
		m.delete()
	case "r", "f5":
		m.refresh()
	case "?", "h":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *tuiModel) updateInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.closeInput()
		return m, nil
	case "enter":
		value := m.input.Value()
		mode := m.mode
		m.closeInput()
		if mode == modeAdd {
			m.add(value)
		} else {
			m.rename(value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m *tuiModel) closeInput() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.SetValue("")
}

func (m *tuiModel) current() (todo.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return todo.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *tuiModel) refresh() {
	tasks, err := m.mgr.ListAll()
	if err != nil {
		m.setError("list", err)
		m.tasks = nil
		m.cursor = 0
		return
	}
	m.tasks = tasks
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) add(raw string) {
	name := utils.NormalizeName(raw, m.opts.capitalize)
	if name == "" {
		m.setStatus("Task name cannot be empty.", true)
		return
	}
	task, err := m.mgr.Add(name)
	if err != nil {
		m.setError("add", err)
		return
	}
	m.refresh()
	m.cursor = len(m.tasks) - 1
	m.setStatus(fmt.Sprintf("Added #%d: %s", task.ID, task.Name), false)
}

func (m *tuiModel) rename(raw string) {
	task, ok := m.current()
	if !ok {
		return
	}
	name := utils.NormalizeName(raw, m.opts.capitalize)
	if name == "" {
		m.setStatus("Task name cannot be empty.", true)
		return
	}
	m.apply(task.ID, manager.UpdateOptions{Name: &name}, "Renamed")
}

func (m *tuiModel) toggle() {
	task, ok := m.current()
	if !ok {
		return
	}
	finished := !task.Finished
	verb := "Reopened"
	if finished {
		verb = "Finished"
	}
	m.apply(task.ID, manager.UpdateOptions{Finished: &finished}, verb)
}

func (m *tuiModel) apply(id int, opts manager.UpdateOptions, verb string) {
	updated, found, err := m.mgr.Update(id, opts)
	switch {
	case err != nil:
		m.setError("update", err)
	case !found:
		m.setStatus(fmt.Sprintf("Task with ID: %d not found.", id), true)
	default:
		m.setStatus(fmt.Sprintf("%s #%d: %s", verb, updated.ID, updated.Name), false)
	}
	m.refresh()
}

func (m *tuiModel) delete() {
	task, ok := m.current()
	if !ok {
		return
	}
	deleted, err := m.mgr.Delete(task.ID)
	switch {
	case err != nil:
		m.setError("delete", err)
	case !deleted:
		m.setStatus(fmt.Sprintf("Task with ID: %d not found.", task.ID), true)
	default:
		m.setStatus(fmt.Sprintf("Deleted #%d: %s", task.ID, task.Name), false)
	}
	m.refresh()
}

func (m *tuiModel) setStatus(msg string, isErr bool) {
	m.status = msg
	m.isErr = isErr
}

func (m *tuiModel) setError(op string, err error) {
	m.opts.logger.Error("operation failed", "op", op, "err", err)
	m.setStatus("Error: "+err.Error(), true)
}

func (m *tuiModel) View() string {
	var b strings.Builder
	m.writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		m.writeFooter(&b)
		return b.String()
	}

	m.writeTasks(&b)

	if m.mode != modeBrowse {
		label := "Add task"
		if m.mode == modeRename {
			label = "Rename task"
		}
		b.WriteString(label + "\n")
		b.WriteString(m.st.inputBox.Render(m.input.View()))
		b.WriteString("\n\n")
	}

	if m.status != "" {
		style := m.st.success
		if m.isErr {
			style = m.st.err
		}
		b.WriteString(style.Render(m.status) + "\n\n")
	}

	m.writeFooter(&b)
	return b.String()
}

func (m *tuiModel) writeTitle(b *strings.Builder) {
	done := 0
	for _, t := range m.tasks {
		if t.Finished {
			done++
		}
	}
	b.WriteString(m.st.title.Render("Personal TO-DO"))
	b.WriteString(m.st.subtle.Render(fmt.Sprintf("  %d tasks, %d done", len(m.tasks), done)))
	b.WriteString("\n\n")
}

func (m *tuiModel) writeTasks(b *strings.Builder) {
	if len(m.tasks) == 0 {
		b.WriteString("  No tasks found.\n\n")
		return
	}
	for i, t := range m.tasks {
		line := formatTask(m.st, t)
		if i == m.cursor {
			b.WriteString(m.st.selected.Render("> ") + line + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  up, k        Move up\n")
	b.WriteString("  down, j      Move down\n")
	b.WriteString("  space, x     Toggle finished\n")
	b.WriteString("  a            Add a task\n")
	b.WriteString("  e            Rename the selected task\n")
	b.WriteString("  d            Delete the selected task\n")
	b.WriteString("  r, F5        Refresh\n")
	b.WriteString("  ?, h         Toggle this help screen\n")
	b.WriteString("  q, ctrl+c    Quit\n\n")
}

func (m *tuiModel) writeFooter(b *strings.Builder) {
	if m.mode != modeBrowse {
		b.WriteString(m.st.subtle.Render("enter to save | esc to cancel") + "\n")
		return
	}
	b.WriteString(m.st.subtle.Render("? for help | q to quit") + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
