package ui

import (
	"strings"

	"github.com/wilbur182/cutroom/internal/render"
	"github.com/wilbur182/cutroom/internal/styles"
)

// HeatParams configures the cache heat strip under the timeline.
type HeatParams struct {
	TotalFrames   int
	Current       int // playhead frame, keeps the window aligned with the timeline
	FramesPerCell int
	Width         int
	Quality       func(frame int) (render.Quality, bool) // cache residency lookup
}

// RenderHeatStrip renders one cell per timeline column showing what
// the cache holds there: full block for high quality, shaded for
// low-quality previews, faint for misses. A cell spanning several
// frames shows the best quality present.
func RenderHeatStrip(params HeatParams) string {
	if params.Width <= LabelWidth || params.Quality == nil {
		return ""
	}
	fpc := params.FramesPerCell
	if fpc < 1 {
		fpc = 1
	}
	cells := params.Width - LabelWidth
	start := stripWindow(params.TotalFrames, params.Current, fpc, cells)

	var sb strings.Builder
	sb.WriteString(styles.TrackLabel.Render(padLabel("heat")))
	for i := 0; i < cells; i++ {
		frame := start + i*fpc
		if frame >= params.TotalFrames {
			sb.WriteString(" ")
			continue
		}

		best, found := render.QualityLow, false
		for f := frame; f < frame+fpc && f < params.TotalFrames; f++ {
			if q, ok := params.Quality(f); ok {
				found = true
				if q > best {
					best = q
				}
			}
		}
		switch {
		case !found:
			sb.WriteString(styles.HeatMiss.Render("░"))
		case best == render.QualityHigh:
			sb.WriteString(styles.HeatHigh.Render("█"))
		default:
			sb.WriteString(styles.HeatLow.Render("▓"))
		}
	}
	return sb.String()
}
