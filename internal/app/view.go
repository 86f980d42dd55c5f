package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/wilbur182/cutroom/internal/timeline"
	"github.com/wilbur182/cutroom/internal/ui"
)

// View renders the full screen: viewer pane, timeline strip, optional
// heat strip, and status bar. Help and the goto prompt replace the
// screen while open.
func (m Model) View() string {
	if !m.ready {
		return ""
	}
	if m.showHelp {
		return ui.RenderHelp(m.md, m.keymap.Entries(), m.width, m.height)
	}
	if m.gotoActive {
		return ui.RenderPrompt("go to frame", m.gotoInput.View(), m.width, m.height)
	}

	viewerH, _, _ := m.paneHeights()

	sections := []string{
		m.renderViewer(viewerH),
		ui.RenderDivider(m.width),
		ui.RenderTimeline(ui.TimelineParams{
			Seq:           m.seq,
			Current:       m.frame,
			FramesPerCell: m.framesPerCell,
			Width:         m.width,
		}),
	}
	if m.showHeat {
		sections = append(sections, ui.RenderHeatStrip(ui.HeatParams{
			TotalFrames:   m.totalFrames(),
			Current:       m.frame,
			FramesPerCell: m.framesPerCell,
			Width:         m.width,
			Quality:       m.engine.Cached,
		}))
	}
	sections = append(sections, m.renderStatusBar())
	return strings.Join(sections, "\n")
}

// paneHeights splits the screen rows between the viewer and the strips
// below it. One row each goes to the divider and the status bar.
func (m Model) paneHeights() (viewerH, timelineH, heatH int) {
	timelineH = 1 + len(m.seq.Tracks)
	if m.showHeat {
		heatH = 1
	}
	viewerH = m.height - 1 - 1 - timelineH - heatH
	if viewerH < 1 {
		viewerH = 1
	}
	return viewerH, timelineH, heatH
}

// renderViewer draws the last committed frame centered in the pane.
// While scrubbing, the previous image stays up instead of flashing
// blank; the status bar spinner signals the pending render. Only when
// nothing is displayable does the shimmer skeleton take the frame's
// place, sized to the footprint the image will occupy.
func (m Model) renderViewer(height int) string {
	var frame string
	if m.current != nil {
		frame = ui.RenderFrame(ui.ViewerParams{
			Img:     m.current.Img,
			MaxCols: m.width,
			MaxRows: height,
		})
	}
	if frame == "" {
		cols, rows := ui.FrameCells(m.seq.Width, m.seq.Height, m.width, height)
		frame = m.skeleton.View(cols, rows)
	}
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, frame)
}

func (m Model) renderStatusBar() string {
	mode := "PAUSE"
	if m.playing {
		mode = "PLAY"
	}

	quality := ""
	if m.current != nil && m.current.Frame == m.frame {
		quality = m.current.Quality.String()
	}

	spin := ""
	if m.rendering() {
		spin = m.spinner.View()
	}

	stats := ""
	warmth := ""
	if m.showStats {
		st := m.engine.Stats()
		stats = fmt.Sprintf("cache %d/%d", st.Size, st.MaxSize)
		if st.AvgRenderTime > 0 {
			stats += fmt.Sprintf("  avg %s", st.AvgRenderTime.Round(time.Millisecond))
		}
		if r := m.warmthRatio(); r < 1 {
			warmth = m.warmth.ViewAs(r)
		}
	}

	return ui.RenderStatusBar(ui.StatusBarParams{
		Mode:     mode,
		Playing:  m.playing,
		Timecode: timeline.Timecode(m.frame, m.seq.FPS),
		Frame:    m.frame,
		Total:    m.totalFrames(),
		Quality:  quality,
		Spinner:  spin,
		Stats:    stats,
		Warmth:   warmth,
		Toast:    m.statusMsg,
		Width:    m.width,
	})
}
