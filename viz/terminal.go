package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ANSI renders the heatmap for a terminal, one styled cell per token with the
// same background/text colors as the HTML form.
func (h *Heatmap) ANSI() string {
	var sb strings.Builder
	for _, c := range h.Cells {
		style := lipgloss.NewStyle().
			Background(lipgloss.Color(hexString(c.Background))).
			Foreground(lipgloss.Color(hexString(c.Text)))
		sb.WriteString(style.Render(c.Token))
	}
	return sb.String()
}
