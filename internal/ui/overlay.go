package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wilbur182/cutroom/internal/keymap"
	"github.com/wilbur182/cutroom/internal/markdown"
	"github.com/wilbur182/cutroom/internal/styles"
)

// HelpContent builds the help overlay markdown from the live bindings,
// so user overrides show up in the table.
func HelpContent(entries []keymap.Entry) string {
	var sb strings.Builder
	sb.WriteString("# cutroom\n\n")
	sb.WriteString("| key | action |\n|-----|--------|\n")
	for _, e := range entries {
		keys := make([]string, len(e.Keys))
		for i, k := range e.Keys {
			keys[i] = "`" + k + "`"
		}
		fmt.Fprintf(&sb, "| %s | %s |\n", strings.Join(keys, " "), e.Name)
	}
	return sb.String()
}

// RenderHelp renders the key binding overlay centered in the viewport.
func RenderHelp(r *markdown.Renderer, entries []keymap.Entry, width, height int) string {
	contentWidth := width - 10
	if contentWidth > 56 {
		contentWidth = 56
	}
	if contentWidth < 20 {
		contentWidth = 20
	}

	lines := r.RenderContent(HelpContent(entries), contentWidth)
	box := styles.ModalBox.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// RenderPrompt renders a modal input box, used by go-to-frame.
func RenderPrompt(title, inputView string, width, height int) string {
	body := styles.ModalTitle.Render(title) + "\n" + inputView
	box := styles.ModalBox.Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
