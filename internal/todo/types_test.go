package todo

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/todo-go/internal/storage"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tm, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return tm
}

func TestToRow(t *testing.T) {
	task := Task{
		ID:        12,
		Name:      "Buy milk",
		Finished:  true,
		CreatedAt: mustTime(t, "2024-05-06 07:08:09"),
	}

	row := task.ToRow()
	want := storage.Row{
		"id":         "12",
		"name":       "Buy milk",
		"finished":   "Y",
		"created_at": "2024-05-06 07:08:09",
	}
	for k, v := range want {
		if row[k] != v {
			t.Errorf("%s: got %q, want %q", k, row[k], v)
		}
	}

	task.Finished = false
	if got := task.ToRow()["finished"]; got != "N" {
		t.Errorf("finished: got %q, want N", got)
	}
}

func TestRoundTrip(t *testing.T) {
	tasks := []Task{
		{ID: 1, Name: "Buy milk", Finished: false, CreatedAt: mustTime(t, "2024-01-01 00:00:00")},
		{ID: 2, Name: "Comma, separated", Finished: true, CreatedAt: mustTime(t, "2024-12-31 23:59:59")},
		{ID: 999, Name: `Quote "this"`, Finished: false, CreatedAt: time.Now().Truncate(time.Second)},
		{ID: 3, Name: "Ünïcödé ✓", Finished: true, CreatedAt: mustTime(t, "2000-02-29 12:30:45")},
	}

	for _, want := range tasks {
		t.Run(strconv.Itoa(want.ID), func(t *testing.T) {
			got, err := FromRow(want.ToRow())
			if err != nil {
				t.Fatalf("FromRow: %v", err)
			}
			if got.ID != want.ID || got.Name != want.Name || got.Finished != want.Finished {
				t.Errorf("got %v, want %v", got, want)
			}
			if !got.CreatedAt.Equal(want.CreatedAt) {
				t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, want.CreatedAt)
			}
		})
	}
}

func TestFromRow(t *testing.T) {
	tests := []struct {
		name     string
		row      storage.Row
		wantErr  bool
		errField string
		wantID   int
		finished bool
	}{
		{
			name:   "valid pending",
			row:    storage.Row{"id": "1", "name": "A", "finished": "N", "created_at": "2024-01-01 10:00:00"},
			wantID: 1,
		},
		{
			name:     "valid finished",
			row:      storage.Row{"id": "2", "name": "B", "finished": "Y", "created_at": "2024-01-01 10:00:00"},
			wantID:   2,
			finished: true,
		},
		{
			name:   "id with surrounding space",
			row:    storage.Row{"id": " 3 ", "name": "C", "finished": "N", "created_at": "2024-01-01 10:00:00"},
			wantID: 3,
		},
		{
			name:   "unknown flag reads as not finished",
			row:    storage.Row{"id": "4", "name": "D", "finished": "yes", "created_at": "2024-01-01 10:00:00"},
			wantID: 4,
		},
		{
			name:   "lowercase y reads as not finished",
			row:    storage.Row{"id": "5", "name": "E", "finished": "y", "created_at": "2024-01-01 10:00:00"},
			wantID: 5,
		},
		{
			name:     "non-integer id",
			row:      storage.Row{"id": "abc", "name": "F", "finished": "N", "created_at": "2024-01-01 10:00:00"},
			wantErr:  true,
			errField: "id",
		},
		{
			name:     "empty id",
			row:      storage.Row{"id": "", "name": "G", "finished": "N", "created_at": "2024-01-01 10:00:00"},
			wantErr:  true,
			errField: "id",
		},
		{
			name:     "timestamp without seconds",
			row:      storage.Row{"id": "8", "name": "H", "finished": "N", "created_at": "2024-01-01 10:00"},
			wantErr:  true,
			errField: "created_at",
		},
		{
			name:     "iso timestamp",
			row:      storage.Row{"id": "9", "name": "I", "finished": "N", "created_at": "2024-01-01T10:00:00Z"},
			wantErr:  true,
			errField: "created_at",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromRow(tt.row)
			if tt.wantErr {
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("expected *ParseError, got %v", err)
				}
				if pe.Field != tt.errField {
					t.Errorf("ParseError.Field: got %q, want %q", pe.Field, tt.errField)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromRow: %v", err)
			}
			if got.ID != tt.wantID {
				t.Errorf("ID: got %d, want %d", got.ID, tt.wantID)
			}
			if got.Finished != tt.finished {
				t.Errorf("Finished: got %v, want %v", got.Finished, tt.finished)
			}
		})
	}
}

func TestFromRowsStopsAtFirstBadRow(t *testing.T) {
	rows := []storage.Row{
		{"id": "1", "name": "A", "finished": "N", "created_at": "2024-01-01 10:00:00"},
		{"id": "x", "name": "B", "finished": "N", "created_at": "2024-01-01 10:00:00"},
		{"id": "3", "name": "C", "finished": "N", "created_at": "2024-01-01 10:00:00"},
	}

	_, err := FromRows(rows)
	if err == nil {
		t.Fatal("expected error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected wrapped *ParseError, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "row 2:") {
		t.Errorf("expected row number in error, got %q", err.Error())
	}
}

func TestMaxIDAndFind(t *testing.T) {
	tasks := []Task{{ID: 3}, {ID: 7}, {ID: 5}}

	if got := MaxID(tasks); got != 7 {
		t.Errorf("MaxID: got %d, want 7", got)
	}
	if got := MaxID(nil); got != 0 {
		t.Errorf("MaxID(nil): got %d, want 0", got)
	}
	if got := Find(tasks, 5); got != 2 {
		t.Errorf("Find(5): got %d, want 2", got)
	}
	if got := Find(tasks, 4); got != -1 {
		t.Errorf("Find(4): got %d, want -1", got)
	}
}

func TestString(t *testing.T) {
	task := Task{ID: 1, Name: "Buy milk", CreatedAt: mustTime(t, "2024-01-01 09:30:15")}
	want := "Task(id=1, name='Buy milk', status='Pending', created='2024-01-01 09:30')"
	if got := task.String(); got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
}
