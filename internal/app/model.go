// Package app is the root Bubble Tea model wiring the timeline,
// render engine, asset library, and views into the editor.
package app

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/cutroom/internal/assets"
	"github.com/wilbur182/cutroom/internal/compositor"
	"github.com/wilbur182/cutroom/internal/config"
	"github.com/wilbur182/cutroom/internal/keymap"
	"github.com/wilbur182/cutroom/internal/markdown"
	"github.com/wilbur182/cutroom/internal/mouse"
	"github.com/wilbur182/cutroom/internal/render"
	"github.com/wilbur182/cutroom/internal/styles"
	"github.com/wilbur182/cutroom/internal/timeline"
	"github.com/wilbur182/cutroom/internal/ui"
)

const (
	jumpFrames    = 10
	toastDuration = 2 * time.Second
)

// Model is the root Bubble Tea model for the cutroom application.
type Model struct {
	// Wiring
	cfg      *config.Config
	keymap   *keymap.Registry
	seq      *timeline.Sequence
	library  *assets.Library
	watcher  *assets.Watcher // nil when watching is disabled
	engine   *render.Engine[*compositor.Frame]
	renderer *compositor.Renderer
	md       *markdown.Renderer
	log      *slog.Logger

	// Frame results cross from render goroutines into the update loop
	// through this channel; a listen command re-arms per delivery.
	frames chan frameReadyMsg

	// Seekable screen rows; rebuilt on resize.
	hits *mouse.Handler

	// Transport state
	frame   int // playhead position
	playing bool
	epoch   int // bumped whenever cached pixels stop being trustworthy

	currentVersion string

	// Displayed frame
	current *compositor.Frame

	// UI state
	width, height int
	ready         bool
	showHelp      bool
	showStats     bool
	showHeat      bool
	framesPerCell int
	gotoActive    bool
	gotoInput     textinput.Model
	spinner       spinner.Model
	warmth        progress.Model
	skeleton      ui.Skeleton
	shimmering    bool // skeleton tick loop is armed

	// Status/toast messages
	statusMsg    string
	statusExpiry time.Time
}

// New creates the application model. The watcher may be nil when asset
// watching is disabled.
func New(cfg *config.Config, seq *timeline.Sequence, lib *assets.Library, watcher *assets.Watcher, km *keymap.Registry, currentVersion string, log *slog.Logger) Model {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	engine := render.New[*compositor.Frame](cfg.Cache.EngineOptions(), log)
	renderer := compositor.NewRenderer(seq, lib, cfg.Cache.LowQualityScale, log)

	input := textinput.New()
	input.Placeholder = "frame"
	input.Prompt = "> "
	input.CharLimit = 8
	input.Width = 10

	return Model{
		cfg:            cfg,
		keymap:         km,
		seq:            seq,
		library:        lib,
		watcher:        watcher,
		engine:         engine,
		renderer:       renderer,
		currentVersion: currentVersion,
		md:             markdown.NewRenderer(),
		log:            log,
		frames:         make(chan frameReadyMsg, 16),
		hits:           mouse.NewHandler(),

		showStats: cfg.UI.ShowStats,
		showHeat:  cfg.UI.ShowHeat,
		gotoInput: input,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(styles.Muted),
		),
		warmth: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(12),
			progress.WithoutPercentage(),
		),
		skeleton: ui.NewSkeleton(),
	}
}

// Init initializes the model and returns initial commands.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		listenFrames(m.frames),
		m.spinner.Tick,
	}
	if m.watcher != nil {
		cmds = append(cmds, listenAssets(m.watcher))
	}
	if m.currentVersion != "" {
		cmds = append(cmds, checkUpdate(m.currentVersion))
	}
	return tea.Batch(cmds...)
}

// Engine exposes the render engine so shutdown can close it.
func (m Model) Engine() *render.Engine[*compositor.Frame] {
	return m.engine
}

// Frame returns the playhead position.
func (m Model) Frame() int {
	return m.frame
}

// Playing reports whether playback is running.
func (m Model) Playing() bool {
	return m.playing
}

func (m Model) totalFrames() int {
	return m.seq.TotalFrames()
}

// rendering reports whether the playhead frame still lacks pixels on
// screen. Derived rather than stored so it can never go stale.
func (m Model) rendering() bool {
	return m.current == nil || m.current.Frame != m.frame
}

// showToast displays a temporary status message and returns the tick
// that will clear it.
func (m *Model) showToast(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusExpiry = time.Now().Add(toastDuration)
	return toastTick(toastDuration)
}

// clearToast clears any expired toast message.
func (m *Model) clearToast() {
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
	}
}

// clampFrame bounds a frame number to the sequence.
func (m Model) clampFrame(frame int) int {
	total := m.totalFrames()
	if total < 1 {
		return 0
	}
	if frame < 0 {
		return 0
	}
	if frame >= total {
		return total - 1
	}
	return frame
}

// warmthRatio is the cached share of the preload window around the
// playhead, at any quality.
func (m Model) warmthRatio() float64 {
	radius := m.cfg.Cache.Radius
	if radius < 1 {
		return 1
	}
	from := m.frame - radius
	if from < 0 {
		from = 0
	}
	to := m.frame + radius
	if last := m.totalFrames() - 1; to > last {
		to = last
	}
	if to < from {
		return 1
	}
	cached := 0
	for f := from; f <= to; f++ {
		if _, ok := m.engine.Cached(f); ok {
			cached++
		}
	}
	return float64(cached) / float64(to-from+1)
}
