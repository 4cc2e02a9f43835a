package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	current lipgloss.Style
	invalid lipgloss.Style
	dim     lipgloss.Style
	ok      lipgloss.Style
}

// newStyles binds styles to w, so output to a pipe or buffer stays plain.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		current: r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		invalid: r.NewStyle().Foreground(lipgloss.Color("196")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("240")),
		ok:      r.NewStyle().Foreground(lipgloss.Color("42")),
	}
}

func pad(s string, width int) string {
	for w := lipgloss.Width(s); w < width; w++ {
		s += " "
	}
	return s
}
