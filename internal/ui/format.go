package ui

import (
	"fmt"

	"github.com/nibzard/todo-go/internal/todo"
)

const (
	markDone    = "✓"
	markPending = "✗"

	dateLayout = "2006-01-02"
)

// FormatTask renders t as "[✓] #1: Buy milk (Created: 2024-01-01)".
func FormatTask(t todo.Task) string {
	return taskLine(mark(t), t)
}

func formatTask(st styles, t todo.Task) string {
	m := st.pending.Render(markPending)
	if t.Finished {
		m = st.done.Render(markDone)
	}
	return taskLine(m, t)
}

func mark(t todo.Task) string {
	if t.Finished {
		return markDone
	}
	return markPending
}

func taskLine(mark string, t todo.Task) string {
	return fmt.Sprintf("[%s] #%d: %s (Created: %s)", mark, t.ID, t.Name, t.CreatedAt.Format(dateLayout))
}
