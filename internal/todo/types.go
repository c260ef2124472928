// Package todo defines the task record and its row representation.
package todo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/todo-go/internal/storage"
)

// TimeLayout is the fixed created_at format (24-hour clock, local time).
const TimeLayout = "2006-01-02 15:04:05"

// Completion flags as stored in the finished column.
const (
	FlagFinished = "Y"
	FlagPending  = "N"
)

// Row field names.
const (
	FieldID        = "id"
	FieldName      = "name"
	FieldFinished  = "finished"
	FieldCreatedAt = "created_at"
)

// Task represents a single to-do item.
type Task struct {
	ID        int
	Name      string
	Finished  bool
	CreatedAt time.Time
}

// Status returns "Done" or "Pending".
func (t Task) Status() string {
	if t.Finished {
		return "Done"
	}
	return "Pending"
}

func (t Task) String() string {
	return fmt.Sprintf("Task(id=%d, name='%s', status='%s', created='%s')",
		t.ID, t.Name, t.Status(), t.CreatedAt.Format("2006-01-02 15:04"))
}

// ToRow converts the task to its stored row form.
func (t Task) ToRow() storage.Row {
	finished := FlagPending
	if t.Finished {
		finished = FlagFinished
	}
	return storage.Row{
		FieldID:        strconv.Itoa(t.ID),
		FieldName:      t.Name,
		FieldFinished:  finished,
		FieldCreatedAt: t.CreatedAt.Format(TimeLayout),
	}
}

// ParseError reports a stored row field that could not be decoded.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// FromRow decodes a stored row. Any finished value other than "Y" reads as
// not finished.
func FromRow(row storage.Row) (Task, error) {
	rawID := row[FieldID]
	id, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil {
		return Task{}, &ParseError{Field: FieldID, Value: rawID, Err: err}
	}

	rawCreated := row[FieldCreatedAt]
	created, err := time.ParseInLocation(TimeLayout, rawCreated, time.Local)
	if err != nil {
		return Task{}, &ParseError{Field: FieldCreatedAt, Value: rawCreated, Err: err}
	}

	return Task{
		ID:        id,
		Name:      row[FieldName],
		Finished:  row[FieldFinished] == FlagFinished,
		CreatedAt: created,
	}, nil
}

// FromRows decodes rows in order, stopping at the first malformed row.
func FromRows(rows []storage.Row) ([]Task, error) {
	tasks := make([]Task, 0, len(rows))
	for i, row := range rows {
		task, err := FromRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// ToRows encodes tasks in order.
func ToRows(tasks []Task) []storage.Row {
	rows := make([]storage.Row, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, t.ToRow())
	}
	return rows
}

// MaxID returns the largest task ID, or 0 for an empty slice.
func MaxID(tasks []Task) int {
	maxID := 0
	for _, t := range tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID
}

// Find returns the index of the first task with id, or -1.
func Find(tasks []Task, id int) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
