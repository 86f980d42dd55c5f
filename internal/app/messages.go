package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/cutroom/internal/assets"
	"github.com/wilbur182/cutroom/internal/compositor"
	"github.com/wilbur182/cutroom/internal/render"
	"github.com/wilbur182/cutroom/internal/version"
)

// playTickMsg advances the playhead during playback.
type playTickMsg time.Time

// playTick schedules the next playback step at the sequence frame rate.
func playTick(fps int) tea.Cmd {
	if fps < 1 {
		fps = 24
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return playTickMsg(t)
	})
}

// toastExpiredMsg prompts the model to clear an expired toast.
type toastExpiredMsg time.Time

func toastTick(after time.Duration) tea.Cmd {
	return tea.Tick(after, func(t time.Time) tea.Msg {
		return toastExpiredMsg(t)
	})
}

// frameReadyMsg carries a finished render back into the update loop.
// ok mirrors the engine contract: false means the render failed, timed
// out, or was superseded, and there is nothing to display.
type frameReadyMsg struct {
	frame   int
	quality render.Quality
	img     *compositor.Frame
	ok      bool
	epoch   int
}

// assetsChangedMsg lists asset names whose files changed on disk.
type assetsChangedMsg []string

// updateAvailableMsg reports that a newer release is published.
type updateAvailableMsg struct {
	latest string
}

// checkUpdate looks for a newer release, consulting the on-disk cache
// before going to the network.
func checkUpdate(current string) tea.Cmd {
	return func() tea.Msg {
		if entry, err := version.LoadCache(); err == nil && version.IsCacheValid(entry, current) {
			if entry.HasUpdate {
				return updateAvailableMsg{latest: entry.LatestVersion}
			}
			return nil
		}

		res := version.Check(current)
		if res.Error != nil || res.LatestVersion == "" {
			return nil
		}
		_ = version.SaveCache(&version.CacheEntry{
			LatestVersion:  res.LatestVersion,
			CurrentVersion: current,
			CheckedAt:      time.Now(),
			HasUpdate:      res.HasUpdate,
		})
		if res.HasUpdate {
			return updateAvailableMsg{latest: res.LatestVersion}
		}
		return nil
	}
}

// listenFrames delivers one frame result from ch. The handler re-arms
// it after each delivery.
func listenFrames(ch chan frameReadyMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// listenAssets delivers one batch of asset change events.
func listenAssets(w *assets.Watcher) tea.Cmd {
	ch := w.Events()
	return func() tea.Msg {
		names, ok := <-ch
		if !ok {
			return nil
		}
		return assetsChangedMsg(names)
	}
}

// deliverFrame hands a result to the update loop without ever blocking
// a render goroutine. Dropping on a full channel only costs a repaint;
// the next request paints the frame again.
func deliverFrame(ch chan frameReadyMsg, msg frameReadyMsg) {
	select {
	case ch <- msg:
	default:
	}
}

// requestFrame renders one frame through the cache. The engine call
// blocks, so it runs in a command goroutine and reports on the frame
// channel.
func (m Model) requestFrame(frame int, quality render.Quality) tea.Cmd {
	eng, fn, ch, epoch := m.engine, m.renderer.Render, m.frames, m.epoch
	return func() tea.Msg {
		img, ok := eng.GetFrame(frame, quality, fn)
		deliverFrame(ch, frameReadyMsg{frame: frame, quality: quality, img: img, ok: ok, epoch: epoch})
		return nil
	}
}

// scrubTo moves the playhead and schedules the debounced low-quality
// repaint that rapid scrubbing coalesces into. Preloading waits until
// the debounced result lands, so holding an arrow key does not spawn a
// preload sweep per repeat.
func (m *Model) scrubTo(frame int) {
	m.frame = m.clampFrame(frame)
	ch, epoch, f := m.frames, m.epoch, m.frame
	m.engine.DebouncedUpdate(f, render.QualityLow, m.renderer.Render, func(img *compositor.Frame, ok bool) {
		deliverFrame(ch, frameReadyMsg{frame: f, quality: render.QualityLow, img: img, ok: ok, epoch: epoch})
	})
}
