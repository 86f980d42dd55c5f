package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/wilbur182/cutroom/internal/styles"
)

// StatusBarParams configures the single-line status bar.
type StatusBarParams struct {
	Mode     string // mode chip text: PLAY, PAUSE, GOTO
	Playing  bool   // highlights the mode chip
	Timecode string
	Frame    int    // current frame, zero-based
	Total    int    // total frames in the sequence
	Quality  string // quality of the frame on screen: "high", "low", or ""
	Spinner  string // pre-rendered spinner view, empty when idle
	Stats    string // pre-formatted cache stats, empty when hidden
	Warmth   string // pre-rendered preload progress bar, empty when warm
	Toast    string // transient notice
	Width    int
}

// RenderStatusBar renders the bottom status line: mode and transport
// position on the left, notices and cache telemetry on the right.
// Output never exceeds Width visible columns.
func RenderStatusBar(p StatusBarParams) string {
	if p.Width < 1 {
		return ""
	}

	chip := styles.StatusChip
	if p.Playing {
		chip = styles.StatusChipAlert
	}

	var left strings.Builder
	left.WriteString(chip.Render(p.Mode))
	left.WriteString(styles.StatusBar.Render(" "))
	left.WriteString(styles.Timecode.Render(p.Timecode))
	if p.Total > 0 {
		left.WriteString(styles.StatusBar.Render(fmt.Sprintf(" %d/%d", p.Frame+1, p.Total)))
	}
	switch p.Quality {
	case "high":
		left.WriteString(styles.StatusBar.Render(" "))
		left.WriteString(styles.QualityHigh.Render("●high"))
	case "low":
		left.WriteString(styles.StatusBar.Render(" "))
		left.WriteString(styles.QualityLow.Render("◐low"))
	}
	if p.Spinner != "" {
		left.WriteString(styles.StatusBar.Render(" "))
		left.WriteString(p.Spinner)
	}

	var right []string
	if p.Toast != "" {
		right = append(right, styles.Title.Render(p.Toast))
	}
	if p.Warmth != "" {
		right = append(right, p.Warmth)
	}
	if p.Stats != "" {
		right = append(right, styles.Muted.Render(p.Stats))
	}
	rightStr := strings.Join(right, styles.StatusBar.Render("  "))

	leftW := ansi.StringWidth(left.String())
	rightW := ansi.StringWidth(rightStr)
	gap := p.Width - leftW - rightW
	if gap < 1 {
		gap = 1
	}

	line := left.String() + styles.StatusBar.Render(strings.Repeat(" ", gap)) + rightStr
	if ansi.StringWidth(line) > p.Width {
		line = ansi.Truncate(line, p.Width, "…")
	}
	return line
}
