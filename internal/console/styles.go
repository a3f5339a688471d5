package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles are bound to the console's writer, so output to a file or a buffer
// carries no escape codes.
type styles struct {
	rule    lipgloss.Style
	accent  lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	dim     lipgloss.Style
	option  lipgloss.Style
	welcome lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	purple := lipgloss.Color("135")

	return styles{
		rule:    r.NewStyle().Bold(true).Foreground(purple),
		accent:  r.NewStyle().Bold(true).Foreground(purple),
		err:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("214")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("241")),
		option:  r.NewStyle().Bold(true),
		welcome: r.NewStyle().Underline(true),
	}
}
