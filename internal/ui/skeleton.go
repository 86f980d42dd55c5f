package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wilbur182/cutroom/internal/styles"
)

// SkeletonTickMsg advances the shimmer animation frame.
type SkeletonTickMsg time.Time

// SkeletonTickInterval is the shimmer animation frame rate.
const SkeletonTickInterval = 80 * time.Millisecond

// Skeleton is the animated placeholder drawn in the viewer while the
// playhead frame is still rendering: a dim block the size of the
// missing image with a bright band sweeping across it.
type Skeleton struct {
	frame    int
	shimmerW int // width of the bright band
}

// NewSkeleton creates a skeleton placeholder.
func NewSkeleton() Skeleton {
	return Skeleton{shimmerW: 6}
}

// Advance moves the shimmer band one step.
func (s *Skeleton) Advance() {
	s.frame++
}

// SkeletonTick schedules the next shimmer animation frame.
func SkeletonTick() tea.Cmd {
	return tea.Tick(SkeletonTickInterval, func(t time.Time) tea.Msg {
		return SkeletonTickMsg(t)
	})
}

// View renders the placeholder block. Each row shifts the band slightly
// so the sweep runs diagonally, like a sheen over the missing frame.
func (s Skeleton) View(width, height int) string {
	if width < 4 || height < 1 {
		return ""
	}

	dim := lipgloss.NewStyle().Foreground(styles.TextSubtle)
	bright := lipgloss.NewStyle().Foreground(styles.TextMuted)

	cycle := width + s.shimmerW*2
	start := s.frame % cycle

	var sb strings.Builder
	for row := 0; row < height; row++ {
		sb.WriteString(s.shimmerRow(width, start+row*2, cycle, dim, bright))
		if row < height-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (s Skeleton) shimmerRow(width, pos, cycle int, dim, bright lipgloss.Style) string {
	pos = pos % cycle

	var parts []string
	inBand := false
	segStart := 0
	for col := 0; col <= width; col++ {
		dist := col - (pos - s.shimmerW)
		nowInBand := dist >= 0 && dist < s.shimmerW && col < width

		if col == width || nowInBand != inBand {
			if n := col - segStart; n > 0 {
				if inBand {
					parts = append(parts, bright.Render(strings.Repeat("▒", n)))
				} else {
					parts = append(parts, dim.Render(strings.Repeat("░", n)))
				}
			}
			segStart = col
			inBand = nowInBand
		}
	}
	return strings.Join(parts, "")
}
