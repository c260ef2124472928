package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	colorPrimary   = lipgloss.Color("205")
	colorSecondary = lipgloss.Color("241")
	colorSuccess   = lipgloss.Color("42")
	colorError     = lipgloss.Color("160")
	colorWarning   = lipgloss.Color("214")
)

// styles is the palette bound to one output. A writer that is not a
// terminal, or noColor, renders every style as plain text.
type styles struct {
	title    lipgloss.Style
	subtle   lipgloss.Style
	success  lipgloss.Style
	err      lipgloss.Style
	warning  lipgloss.Style
	done     lipgloss.Style
	pending  lipgloss.Style
	selected lipgloss.Style
	inputBox lipgloss.Style
}

func newStyles(out io.Writer, noColor bool) styles {
	r := lipgloss.NewRenderer(out)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		title:    r.NewStyle().Foreground(colorPrimary).Bold(true),
		subtle:   r.NewStyle().Foreground(colorSecondary),
		success:  r.NewStyle().Foreground(colorSuccess),
		err:      r.NewStyle().Foreground(colorError),
		warning:  r.NewStyle().Foreground(colorWarning),
		done:     r.NewStyle().Foreground(colorSuccess),
		pending:  r.NewStyle().Foreground(colorError),
		selected: r.NewStyle().Foreground(colorPrimary).Bold(true),
		inputBox: r.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorSecondary).
			Padding(0, 1),
	}
}
