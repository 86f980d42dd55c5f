package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/wilbur182/cutroom/internal/styles"
	"github.com/wilbur182/cutroom/internal/timeline"
)

// LabelWidth is the column reserved for track labels on strip rows.
const LabelWidth = 5

// TimelineParams configures the timeline strip rendering.
type TimelineParams struct {
	Seq           *timeline.Sequence
	Current       int // playhead frame
	FramesPerCell int // zoom level; larger means more frames per column
	Width         int // total columns available
}

// RenderTimeline renders a frame ruler plus one row per track. Shots
// appear as blocks of their name's first rune, alternating background
// per shot so adjacent shots stay distinguishable. When the sequence
// does not fit, the window centers on the playhead.
func RenderTimeline(params TimelineParams) string {
	if params.Seq == nil || params.Width <= LabelWidth {
		return ""
	}
	fpc := params.FramesPerCell
	if fpc < 1 {
		fpc = 1
	}
	cells := params.Width - LabelWidth
	total := params.Seq.TotalFrames()
	start := stripWindow(total, params.Current, fpc, cells)

	var rows []string
	rows = append(rows, rulerRow(total, params.Current, start, fpc, cells))
	for _, tr := range params.Seq.Tracks {
		rows = append(rows, trackRow(tr, params.Current, start, fpc, cells))
	}
	return strings.Join(rows, "\n")
}

// rulerRow renders tick marks with the playhead position.
func rulerRow(total, current, start, fpc, cells int) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", LabelWidth))
	for i := 0; i < cells; i++ {
		frame := start + i*fpc
		switch {
		case current >= frame && current < frame+fpc:
			sb.WriteString(styles.Playhead.Render("▼"))
		case frame >= total:
			sb.WriteString(" ")
		case (frame/fpc)%10 == 0:
			sb.WriteString(styles.Ruler.Render("╷"))
		default:
			sb.WriteString(styles.Ruler.Render("·"))
		}
	}
	return sb.String()
}

// trackRow renders one track's shots across the visible window.
func trackRow(tr timeline.Track, current, start, fpc, cells int) string {
	var sb strings.Builder
	sb.WriteString(styles.TrackLabel.Render(padLabel(tr.Name)))

	for i := 0; i < cells; i++ {
		frame := start + i*fpc
		shotIdx := -1
		for si, sh := range tr.Shots {
			if sh.Contains(frame) {
				shotIdx = si
				break
			}
		}

		atPlayhead := current >= frame && current < frame+fpc
		if shotIdx < 0 {
			if atPlayhead {
				sb.WriteString(styles.Playhead.Render("│"))
			} else {
				sb.WriteString(styles.Subtle.Render("·"))
			}
			continue
		}

		ch := shotRune(tr.Shots[shotIdx].Name)
		style := styles.ShotEven
		if shotIdx%2 == 1 {
			style = styles.ShotOdd
		}
		if tr.Muted {
			style = styles.ShotMuted
		}
		if atPlayhead {
			style = styles.Playhead
		}
		sb.WriteString(style.Render(ch))
	}
	return sb.String()
}

// padLabel truncates or pads a track name to the label column.
func padLabel(name string) string {
	out := runewidth.Truncate(name, LabelWidth-1, "…")
	return out + strings.Repeat(" ", LabelWidth-runewidth.StringWidth(out))
}

// shotRune picks the block character for a shot.
func shotRune(name string) string {
	for _, r := range name {
		return string(r)
	}
	return "▪"
}

// stripWindow returns the first visible frame for a strip of the given
// cell count, centering the playhead when the sequence overflows.
func stripWindow(totalFrames, current, fpc, cells int) int {
	if cells < 1 || fpc < 1 {
		return 0
	}
	totalCells := (totalFrames + fpc - 1) / fpc
	if totalCells <= cells {
		return 0
	}
	startCell := current/fpc - cells/2
	maxStart := totalCells - cells
	if startCell > maxStart {
		startCell = maxStart
	}
	if startCell < 0 {
		startCell = 0
	}
	return startCell * fpc
}

// FrameAtCell maps a strip column back to the frame it shows, using
// the same window math as RenderTimeline. Columns in the label gutter
// or past the last frame report -1.
func FrameAtCell(totalFrames, current, framesPerCell, width, col int) int {
	if totalFrames < 1 || width <= LabelWidth || col < LabelWidth || col >= width {
		return -1
	}
	fpc := framesPerCell
	if fpc < 1 {
		fpc = 1
	}
	cells := width - LabelWidth
	start := stripWindow(totalFrames, current, fpc, cells)
	frame := start + (col-LabelWidth)*fpc
	if frame >= totalFrames {
		return -1
	}
	return frame
}

// FitFramesPerCell returns the zoom level at which the whole sequence
// fits the strip.
func FitFramesPerCell(totalFrames, width int) int {
	cells := width - LabelWidth
	if cells < 1 || totalFrames < 1 {
		return 1
	}
	fpc := (totalFrames + cells - 1) / cells
	if fpc < 1 {
		fpc = 1
	}
	return fpc
}
