// Package manager implements the task operations on top of the row store.
//
// Every operation reads the whole collection from the store. Mutations
// rewrite the whole collection; nothing is cached between calls.
package manager

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/storage"
	"github.com/nibzard/todo-go/internal/todo"
)

var (
	// ErrNotFound is wrapped by callers that must turn a missing task into an error.
	ErrNotFound = errors.New("task not found")

	// ErrEmptyName is returned when a task name is blank.
	ErrEmptyName = errors.New("task name cannot be empty")

	// ErrIDExhausted is returned by Add when the highest stored ID is math.MaxInt.
	ErrIDExhausted = errors.New("no task id left above the current maximum")
)

// Store is the row storage the manager works on.
type Store interface {
	EnsureExists() error
	ReadAll() ([]storage.Row, error)
	WriteAll(rows []storage.Row) error
}

// Manager runs list/add/update/delete against a Store.
type Manager struct {
	store  Store
	logger *log.Logger
	now    func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates a manager over store.
func New(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// UpdateOptions selects the fields Update changes. Nil fields are left as is.
type UpdateOptions struct {
	Name     *string
	Finished *bool
}

// EnsureStore creates the data file if it is missing.
func (m *Manager) EnsureStore() error {
	if err := m.store.EnsureExists(); err != nil {
		return fmt.Errorf("ensure store: %w", err)
	}
	return nil
}

// ListAll returns every task in stored order. A malformed row aborts the
// listing with a wrapped *todo.ParseError.
func (m *Manager) ListAll() ([]todo.Task, error) {
	rows, err := m.store.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	tasks, err := todo.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

// Add creates a pending task named name with the next free ID.
func (m *Manager) Add(name string) (todo.Task, error) {
	if strings.TrimSpace(name) == "" {
		return todo.Task{}, ErrEmptyName
	}

	tasks, err := m.ListAll()
	if err != nil {
		return todo.Task{}, err
	}

	maxID := todo.MaxID(tasks)
	if maxID == math.MaxInt {
		return todo.Task{}, ErrIDExhausted
	}

	task := todo.Task{
		ID:        maxID + 1,
		Name:      name,
		Finished:  false,
		CreatedAt: m.now().Truncate(time.Second),
	}
	tasks = append(tasks, task)

	if err := m.save(tasks); err != nil {
		return todo.Task{}, err
	}
	m.logger.Debug("task added", "id", task.ID, "name", task.Name)
	return task, nil
}

// Update applies opts to the first task with id. found is false, with a nil
// error, when no such task exists.
func (m *Manager) Update(id int, opts UpdateOptions) (task todo.Task, found bool, err error) {
	if opts.Name != nil && strings.TrimSpace(*opts.Name) == "" {
		return todo.Task{}, false, ErrEmptyName
	}

	tasks, err := m.ListAll()
	if err != nil {
		return todo.Task{}, false, err
	}

	idx := todo.Find(tasks, id)
	if idx < 0 {
		m.logger.Debug("update target missing", "id", id)
		return todo.Task{}, false, nil
	}

	if opts.Name != nil {
		tasks[idx].Name = *opts.Name
	}
	if opts.Finished != nil {
		tasks[idx].Finished = *opts.Finished
	}

	if err := m.save(tasks); err != nil {
		return todo.Task{}, true, err
	}
	m.logger.Debug("task updated", "id", id, "name", tasks[idx].Name, "finished", tasks[idx].Finished)
	return tasks[idx], true, nil
}

// Delete removes the task with id. It reports false, and leaves the store
// untouched, when no such task exists.
func (m *Manager) Delete(id int) (bool, error) {
	tasks, err := m.ListAll()
	if err != nil {
		return false, err
	}

	kept := make([]todo.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		m.logger.Debug("delete target missing", "id", id)
		return false, nil
	}

	if err := m.save(kept); err != nil {
		return false, err
	}
	m.logger.Debug("task deleted", "id", id)
	return true, nil
}

func (m *Manager) save(tasks []todo.Task) error {
	if err := m.store.WriteAll(todo.ToRows(tasks)); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
