package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wilbur182/cutroom/internal/styles"
)

// RenderDivider renders the horizontal rule separating the viewer pane
// from the timeline strip.
func RenderDivider(width int) string {
	if width < 1 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(styles.BorderNormal).
		Render(strings.Repeat("─", width))
}
