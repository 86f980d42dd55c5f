package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/cutroom/internal/keymap"
	"github.com/wilbur182/cutroom/internal/mouse"
	"github.com/wilbur182/cutroom/internal/render"
	"github.com/wilbur182/cutroom/internal/timeline"
	"github.com/wilbur182/cutroom/internal/ui"
)

// Update handles messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	nm, ok := next.(Model)
	if !ok {
		return next, cmd
	}
	// Whenever the viewer has nothing displayable, the shimmer loop
	// runs; the tick handler winds it down once a frame lands.
	if nm.ready && nm.current == nil && !nm.shimmering {
		nm.shimmering = true
		cmd = tea.Batch(cmd, ui.SkeletonTick())
	}
	return nm, cmd
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case playTickMsg:
		return m.handlePlayTick()

	case frameReadyMsg:
		return m.handleFrameReady(msg)

	case assetsChangedMsg:
		return m.handleAssetsChanged(msg)

	case toastExpiredMsg:
		m.clearToast()
		return m, nil

	case updateAvailableMsg:
		return m, m.showToast("update available: " + msg.latest)

	case ui.SkeletonTickMsg:
		if m.current != nil {
			m.shimmering = false
			return m, nil
		}
		m.skeleton.Advance()
		return m, ui.SkeletonTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other component messages reach the prompt here.
	if m.gotoActive {
		var cmd tea.Cmd
		m.gotoInput, cmd = m.gotoInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height

	fit := ui.FitFramesPerCell(m.totalFrames(), m.width)
	if m.framesPerCell < 1 || m.framesPerCell > fit {
		m.framesPerCell = fit
	}
	m.layoutHits()

	if !m.ready {
		m.ready = true
		m.engine.PreloadFrames(m.frame, render.QualityLow, m.renderer.Render)
		return m, m.requestFrame(m.frame, render.QualityHigh)
	}
	return m, nil
}

// layoutHits registers the seekable strip rows for the current screen
// size. The strips sit between the divider row and the status bar.
func (m *Model) layoutHits() {
	m.hits.HitMap.Clear()
	viewerH, timelineH, heatH := m.paneHeights()
	m.hits.HitMap.AddRect("timeline", 0, viewerH+1, m.width, timelineH, nil)
	if heatH > 0 {
		m.hits.HitMap.AddRect("heat", 0, viewerH+1+timelineH, m.width, heatH, nil)
	}
}

// handleMouse turns seek and step gestures into scrubs. Any gesture on
// the strips takes over the transport, so playback pauses first.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.ready || m.showHelp || m.gotoActive {
		return m, nil
	}

	switch g := m.hits.Handle(msg); g.Type {
	case mouse.GestureSeek:
		if f := ui.FrameAtCell(m.totalFrames(), m.frame, m.framesPerCell, m.width, g.X); f >= 0 {
			m.playing = false
			m.scrubTo(f)
		}
	case mouse.GestureStep:
		m.playing = false
		m.scrubTo(m.frame + g.Delta)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays swallow input before the keymap sees it.
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.gotoActive {
		return m.handleGotoKey(msg)
	}

	switch m.keymap.Handle(msg) {
	case keymap.ActionQuit:
		return m.quit()

	case keymap.ActionPlayToggle:
		return m.togglePlayback()

	case keymap.ActionStepBack:
		m.scrubTo(m.frame - 1)
	case keymap.ActionStepForward:
		m.scrubTo(m.frame + 1)
	case keymap.ActionJumpBack:
		m.scrubTo(m.frame - jumpFrames)
	case keymap.ActionJumpForward:
		m.scrubTo(m.frame + jumpFrames)
	case keymap.ActionGoStart:
		m.scrubTo(0)
	case keymap.ActionGoEnd:
		m.scrubTo(m.totalFrames() - 1)

	case keymap.ActionGoto:
		m.playing = false
		m.gotoActive = true
		m.gotoInput.SetValue("")
		return m, m.gotoInput.Focus()

	case keymap.ActionCopyTimecode:
		return m.copyTimecode()

	case keymap.ActionRerender:
		return m.rerenderCurrent()

	case keymap.ActionInvalidateAll:
		return m.invalidateAll()

	case keymap.ActionToggleStats:
		m.showStats = !m.showStats

	case keymap.ActionZoomIn:
		m.setZoom(m.framesPerCell / 2)
	case keymap.ActionZoomOut:
		m.setZoom(m.framesPerCell * 2)

	case keymap.ActionHelp:
		m.showHelp = true
	}
	return m, nil
}

func (m Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.gotoActive = false
		m.gotoInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.gotoActive = false
		m.gotoInput.Blur()
		return m.commitGoto()
	}
	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

// commitGoto parses the 1-based frame number typed into the prompt and
// scrubs there.
func (m Model) commitGoto() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.gotoInput.Value())
	if raw == "" {
		return m, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return m, m.showToast(fmt.Sprintf("not a frame number: %s", raw))
	}
	m.scrubTo(n - 1)
	return m, nil
}

func (m Model) togglePlayback() (tea.Model, tea.Cmd) {
	if m.totalFrames() < 1 {
		return m, nil
	}
	m.playing = !m.playing
	if m.playing {
		return m, playTick(m.seq.FPS)
	}
	// Pausing is a rest point: upgrade the parked frame to sharp.
	return m, m.requestFrame(m.frame, render.QualityHigh)
}

func (m Model) handlePlayTick() (tea.Model, tea.Cmd) {
	if !m.playing {
		return m, nil
	}
	total := m.totalFrames()
	if total < 1 {
		m.playing = false
		return m, nil
	}

	m.frame = (m.frame + 1) % total
	m.engine.PreloadFrames(m.frame, render.QualityLow, m.renderer.Render)
	return m, tea.Batch(
		m.requestFrame(m.frame, render.QualityLow),
		playTick(m.seq.FPS),
	)
}

func (m Model) handleFrameReady(msg frameReadyMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{listenFrames(m.frames)}

	// Results for an old epoch or an abandoned position are stale.
	if msg.epoch != m.epoch || msg.frame != m.frame {
		return m, tea.Batch(cmds...)
	}

	if !msg.ok {
		// During playback a miss just means the next tick paints instead.
		if !m.playing {
			cmds = append(cmds, m.showToast("render failed"))
		}
		return m, tea.Batch(cmds...)
	}

	m.current = msg.img

	// A settled low-quality result at rest starts the sharp upgrade and
	// the neighborhood preload.
	if msg.quality == render.QualityLow && !m.playing {
		m.engine.PreloadFrames(m.frame, render.QualityLow, m.renderer.Render)
		cmds = append(cmds, m.requestFrame(m.frame, render.QualityHigh))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleAssetsChanged(msg assetsChangedMsg) (tea.Model, tea.Cmd) {
	if m.watcher == nil {
		return m, nil
	}
	cmds := []tea.Cmd{listenAssets(m.watcher)}

	dirty := false
	for _, name := range msg {
		changed, err := m.library.Reload(name)
		if err != nil {
			m.log.Warn("asset reload failed", "asset", name, "error", err)
			continue
		}
		if !changed {
			continue
		}
		for _, span := range m.seq.AssetSpans(name) {
			m.engine.InvalidateRange(span.From, span.To)
			if span.From <= m.frame && m.frame <= span.To {
				dirty = true
			}
		}
	}

	if dirty {
		m.epoch++
		m.current = nil
		cmds = append(cmds,
			m.requestFrame(m.frame, render.QualityHigh),
			m.showToast("assets reloaded"),
		)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) copyTimecode() (tea.Model, tea.Cmd) {
	tc := timeline.Timecode(m.frame, m.seq.FPS)
	if err := clipboard.WriteAll(tc); err != nil {
		m.log.Warn("clipboard write failed", "error", err)
		return m, m.showToast("clipboard unavailable")
	}
	return m, m.showToast("copied " + tc)
}

// rerenderCurrent drops the playhead frame from the cache and renders
// it fresh, superseding any in-flight render of the same frame.
func (m Model) rerenderCurrent() (tea.Model, tea.Cmd) {
	m.engine.InvalidateRange(m.frame, m.frame)
	m.epoch++
	m.current = nil
	return m, m.requestFrame(m.frame, render.QualityHigh)
}

func (m Model) invalidateAll() (tea.Model, tea.Cmd) {
	m.engine.InvalidateAll()
	m.epoch++
	m.current = nil
	return m, tea.Batch(
		m.requestFrame(m.frame, render.QualityHigh),
		m.showToast("cache cleared"),
	)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.watcher != nil {
		m.watcher.Stop()
	}
	m.engine.Close()
	return m, tea.Quit
}

// setZoom clamps the frames-per-cell scale between single-frame cells
// and whole-sequence fit.
func (m *Model) setZoom(fpc int) {
	fit := ui.FitFramesPerCell(m.totalFrames(), m.width)
	if fpc < 1 {
		fpc = 1
	}
	if fpc > fit {
		fpc = fit
	}
	m.framesPerCell = fpc
}
