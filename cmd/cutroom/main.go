package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/wilbur182/cutroom/internal/app"
	"github.com/wilbur182/cutroom/internal/assets"
	"github.com/wilbur182/cutroom/internal/community"
	"github.com/wilbur182/cutroom/internal/config"
	"github.com/wilbur182/cutroom/internal/keymap"
	"github.com/wilbur182/cutroom/internal/project"
	"github.com/wilbur182/cutroom/internal/styles"
)

// Version is set at build time via ldflags
var Version = ""

var (
	projectPath  = flag.String("project", "cutroom.db", "path to the project file")
	configPath   = flag.String("config", "", "path to config file")
	assetsDir    = flag.String("assets", "", "asset directory (overrides config)")
	debugFlag    = flag.Bool("debug", false, "enable debug logging")
	versionFlag  = flag.Bool("version", false, "print version and exit")
	shortVersion = flag.Bool("v", false, "print version and exit (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *shortVersion {
		fmt.Printf("cutroom version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	// The editor takes over the whole screen; a pipe makes no sense.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "cutroom requires an interactive terminal")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *assetsDir != "" {
		cfg.Assets.Dir = *assetsDir
	}

	// Logging goes to a file; stdout belongs to the TUI.
	logger, closeLog := setupLogger(*debugFlag)
	defer closeLog()

	// Bundled terminal schemes register alongside the built-in themes,
	// so "nord" or "gruvbox-dark" work straight from the config.
	for _, th := range community.Themes() {
		styles.RegisterTheme(th)
	}
	if !styles.IsValidTheme(cfg.UI.Theme) {
		logger.Warn("unknown theme, using default", "theme", cfg.UI.Theme)
		cfg.UI.Theme = "default"
	}
	styles.ApplyThemeWithOverrides(cfg.UI.Theme, cfg.UI.ThemeOverrides)

	km := keymap.NewRegistry()
	if err := km.ApplyOverrides(cfg.Keymap.Overrides); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid keymap override: %v\n", err)
		os.Exit(1)
	}

	store, err := project.Open(*projectPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open project: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	seq, err := store.LoadSequence()
	if errors.Is(err, project.ErrNoSequence) {
		seq = project.Demo()
		if err := store.SaveSequence(seq); err != nil {
			logger.Warn("could not save demo sequence", "error", err)
		}
		logger.Info("seeded new project with demo sequence", "path", *projectPath)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load project: %v\n", err)
		os.Exit(1)
	}

	// The asset directory is relative to the project file. A missing
	// directory is fine; procedural assets need no files.
	dir := cfg.Assets.Dir
	if dir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(filepath.Dir(*projectPath), dir)
	}
	if info, statErr := os.Stat(dir); dir != "" && (statErr != nil || !info.IsDir()) {
		logger.Debug("asset directory not found", "dir", dir)
		dir = ""
	}

	lib, err := assets.NewLibrary(dir, cfg.Assets.CacheSize, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create asset library: %v\n", err)
		os.Exit(1)
	}

	var watcher *assets.Watcher
	if cfg.Assets.Watch && dir != "" {
		watcher, err = assets.NewWatcher(dir, logger)
		if err != nil {
			logger.Warn("asset watching disabled", "error", err)
			watcher = nil
		}
	}

	currentVersion := effectiveVersion(Version)
	model := app.New(cfg, seq, lib, watcher, km, currentVersion, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	final, runErr := p.Run()
	if m, ok := final.(app.Model); ok {
		m.Engine().Close()
	}
	if watcher != nil {
		watcher.Stop()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", runErr)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// setupLogger opens the log file under the config directory. When that
// fails the logger discards instead of writing over the TUI.
func setupLogger(debugMode bool) (*slog.Logger, func()) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	path := config.LogPath()
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return slog.New(slog.DiscardHandler), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return slog.New(slog.DiscardHandler), func() {}
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision != "" {
		ver := "devel+" + revision
		if len(ver) > 20 {
			ver = ver[:20]
		}
		if dirty {
			ver += "+dirty"
		}
		return ver
	}
	return "devel"
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cutroom [options]\n\n")
		fmt.Fprintf(os.Stderr, "A terminal video sequence editor.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}
