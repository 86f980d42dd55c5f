package ui

import (
	"strings"
	"testing"

	"github.com/wilbur182/cutroom/internal/render"
	"github.com/wilbur182/cutroom/internal/timeline"
)

func stripSequence() *timeline.Sequence {
	return &timeline.Sequence{
		Name: "strip", FPS: 24, Width: 64, Height: 36,
		Tracks: []timeline.Track{
			{Name: "bg", Shots: []timeline.Shot{
				{Name: "alpha", Start: 0, Duration: 10},
				{Name: "beta", Start: 10, Duration: 10},
			}},
			{Name: "fg", Shots: []timeline.Shot{
				{Name: "title", Start: 5, Duration: 10},
			}},
		},
	}
}

// One ruler row plus one row per track.
func TestRenderTimeline_RowLayout(t *testing.T) {
	out := RenderTimeline(TimelineParams{
		Seq: stripSequence(), Current: 5, FramesPerCell: 1, Width: LabelWidth + 20,
	})

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d rows, want ruler + 2 tracks", len(lines))
	}
	if !strings.Contains(lines[0], "▼") {
		t.Error("ruler row missing playhead marker")
	}
	if !strings.Contains(lines[1], "aaaa") {
		t.Errorf("bg row missing alpha shot block: %q", lines[1])
	}
	if !strings.Contains(lines[1], "bbbb") {
		t.Errorf("bg row missing beta shot block: %q", lines[1])
	}
	if !strings.Contains(lines[2], "tttt") {
		t.Errorf("fg row missing title shot block: %q", lines[2])
	}
	if !strings.Contains(lines[1], "bg") || !strings.Contains(lines[2], "fg") {
		t.Error("track labels missing")
	}
}

// Gaps between shots render as faint dots.
func TestRenderTimeline_GapCells(t *testing.T) {
	out := RenderTimeline(TimelineParams{
		Seq: stripSequence(), Current: 0, FramesPerCell: 1, Width: LabelWidth + 20,
	})

	fgRow := strings.Split(out, "\n")[2]
	// Frames 0-4 on the fg track precede the title shot.
	if !strings.Contains(fgRow, "····") {
		t.Errorf("fg row missing gap cells: %q", fgRow)
	}
}

// The window slides to keep the playhead visible.
func TestStripWindow(t *testing.T) {
	tests := []struct {
		total, current, fpc, cells int
		want                       int
	}{
		{200, 100, 1, 20, 90},  // centered
		{200, 0, 1, 20, 0},     // clamped at start
		{200, 197, 1, 20, 180}, // clamped at end
		{20, 10, 1, 20, 0},     // everything fits
		{200, 100, 2, 20, 80},  // zoomed out, still centered
	}
	for _, tt := range tests {
		got := stripWindow(tt.total, tt.current, tt.fpc, tt.cells)
		if got != tt.want {
			t.Errorf("stripWindow(%d, %d, %d, %d) = %d, want %d",
				tt.total, tt.current, tt.fpc, tt.cells, got, tt.want)
		}
	}
}

// Clicked columns map back to the frames the strip drew there.
func TestFrameAtCell(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		current int
		fpc     int
		width   int
		col     int
		want    int
	}{
		{"first strip column", 20, 0, 1, LabelWidth + 20, LabelWidth, 0},
		{"mid strip", 20, 0, 1, LabelWidth + 20, LabelWidth + 7, 7},
		{"label gutter", 20, 0, 1, LabelWidth + 20, 2, -1},
		{"past the end", 10, 0, 1, LabelWidth + 20, LabelWidth + 15, -1},
		{"zoomed out", 40, 0, 2, LabelWidth + 20, LabelWidth + 3, 6},
		{"centered window", 200, 100, 1, LabelWidth + 20, LabelWidth, 90},
	}
	for _, tt := range tests {
		if got := FrameAtCell(tt.total, tt.current, tt.fpc, tt.width, tt.col); got != tt.want {
			t.Errorf("%s: FrameAtCell = %d, want %d", tt.name, got, tt.want)
		}
	}
}

// FitFramesPerCell chooses the smallest zoom that shows everything.
func TestFitFramesPerCell(t *testing.T) {
	if got := FitFramesPerCell(240, LabelWidth+80); got != 3 {
		t.Errorf("FitFramesPerCell(240, 85) = %d, want 3", got)
	}
	if got := FitFramesPerCell(10, LabelWidth+80); got != 1 {
		t.Errorf("short sequence fpc = %d, want 1", got)
	}
	if got := FitFramesPerCell(0, LabelWidth+80); got != 1 {
		t.Errorf("empty sequence fpc = %d, want 1", got)
	}
}

// Track labels truncate to the label column with an ellipsis.
func TestPadLabel(t *testing.T) {
	if got := padLabel("bg"); got != "bg   " {
		t.Errorf("padLabel(bg) = %q", got)
	}
	got := padLabel("background")
	if !strings.HasSuffix(got, " ") || !strings.Contains(got, "…") {
		t.Errorf("padLabel(background) = %q, want truncated with ellipsis", got)
	}
}

// The heat strip shows the best cached quality per column.
func TestRenderHeatStrip(t *testing.T) {
	cached := map[int]render.Quality{
		0: render.QualityHigh,
		1: render.QualityHigh,
		2: render.QualityLow,
	}
	out := RenderHeatStrip(HeatParams{
		TotalFrames:   10,
		Current:       0,
		FramesPerCell: 1,
		Width:         LabelWidth + 10,
		Quality: func(f int) (render.Quality, bool) {
			q, ok := cached[f]
			return q, ok
		},
	})

	if !strings.Contains(out, "██▓") {
		t.Errorf("heat strip missing quality blocks: %q", out)
	}
	if n := strings.Count(out, "░"); n != 7 {
		t.Errorf("heat strip has %d miss cells, want 7: %q", n, out)
	}
	if !strings.Contains(out, "heat") {
		t.Errorf("heat strip missing label: %q", out)
	}
}

// Zoomed-out cells aggregate to the best quality in their span.
func TestRenderHeatStrip_Aggregates(t *testing.T) {
	cached := map[int]render.Quality{
		0: render.QualityHigh,
		1: render.QualityLow,
		2: render.QualityLow,
	}
	out := RenderHeatStrip(HeatParams{
		TotalFrames:   10,
		Current:       0,
		FramesPerCell: 2,
		Width:         LabelWidth + 5,
		Quality: func(f int) (render.Quality, bool) {
			q, ok := cached[f]
			return q, ok
		},
	})

	if !strings.Contains(out, "█▓░░░") {
		t.Errorf("aggregated strip = %q, want block, shade, then misses", out)
	}
}

// A missing lookup function renders nothing.
func TestRenderHeatStrip_NoLookup(t *testing.T) {
	if out := RenderHeatStrip(HeatParams{TotalFrames: 10, Width: 40}); out != "" {
		t.Errorf("strip without lookup = %q, want empty", out)
	}
}
