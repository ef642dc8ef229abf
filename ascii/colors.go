// Package ascii provides terminal styles with semantic names so they
// can be grouped in themes.
package ascii

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

const (
	Red     = lipgloss.Color("9")
	Gray    = lipgloss.Color("8")
	Orange  = lipgloss.Color("208")
	Gray245 = lipgloss.Color("245")
	Purple  = lipgloss.Color("99")
	Pink    = lipgloss.Color("127")
)

// Theme defines semantic style mappings
type Theme struct {
	// Diagnostics
	Error lipgloss.Style
	Muted lipgloss.Style // secondary/dimmed text

	// Command dumps
	Operator lipgloss.Style
	Operand  lipgloss.Style
	Literal  lipgloss.Style
	Comment  lipgloss.Style
}

// DefaultTheme renders for standard output, colors are dropped when
// it isn't a terminal.
var DefaultTheme = NewTheme(lipgloss.DefaultRenderer())

// NewTheme creates the default color mapping bound to `r`
func NewTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Error: r.NewStyle().Foreground(Red).Bold(true),
		Muted: r.NewStyle().Foreground(Gray),

		Operator: r.NewStyle().Foreground(Purple).Bold(true),
		Operand:  r.NewStyle().Foreground(Pink).Bold(true),
		Literal:  r.NewStyle().Foreground(Gray245),
		Comment:  r.NewStyle().Foreground(Orange),
	}
}

// ThemeFor creates the default theme for output written to `w`
func ThemeFor(w io.Writer) Theme {
	return NewTheme(lipgloss.NewRenderer(w))
}
