package config

import (
	"time"

	"github.com/wilbur182/cutroom/internal/render"
)

// Config is the root configuration structure.
type Config struct {
	Cache  CacheConfig  `json:"cache"`
	Assets AssetsConfig `json:"assets"`
	UI     UIConfig     `json:"ui"`
	Keymap KeymapConfig `json:"keymap"`
}

// CacheConfig tunes the frame cache and render scheduling.
type CacheConfig struct {
	Radius          int           `json:"radius"`          // frames preloaded on each side of the playhead
	MaxEntries      int           `json:"maxEntries"`      // cached frames before LRU eviction
	LowQualityScale float64       `json:"lowQualityScale"` // preview resolution as a fraction of full
	DebounceDelay   time.Duration `json:"debounceDelay"`   // quiet period before a scrub request renders
	RenderTimeout   time.Duration `json:"renderTimeout"`   // per-frame render deadline
}

// AssetsConfig configures the asset library.
type AssetsConfig struct {
	Dir       string `json:"dir"`       // asset directory, relative to the project file
	Watch     bool   `json:"watch"`     // reload frames when asset files change
	CacheSize int    `json:"cacheSize"` // decoded images kept in memory
}

// UIConfig configures UI appearance.
type UIConfig struct {
	Theme     string `json:"theme"`
	ShowStats bool   `json:"showStats"` // cache statistics in the status bar
	ShowHeat  bool   `json:"showHeat"`  // cached-frame strip under the timeline

	// ThemeOverrides replaces individual palette colors on top of the
	// selected theme, keyed by color name (e.g. "playhead": "#FF0000").
	ThemeOverrides map[string]string `json:"themeOverrides,omitempty"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Radius:          30,
			MaxEntries:      120,
			LowQualityScale: 0.25,
			DebounceDelay:   150 * time.Millisecond,
			RenderTimeout:   5 * time.Second,
		},
		Assets: AssetsConfig{
			Dir:       "assets",
			Watch:     true,
			CacheSize: 64,
		},
		UI: UIConfig{
			Theme:     "default",
			ShowStats: true,
			ShowHeat:  true,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Cache.Radius < 0 {
		c.Cache.Radius = 30
	}
	if c.Cache.MaxEntries <= 0 {
		c.Cache.MaxEntries = 120
	}
	if c.Cache.LowQualityScale <= 0 || c.Cache.LowQualityScale > 1 {
		c.Cache.LowQualityScale = 0.25
	}
	if c.Cache.DebounceDelay < 0 {
		c.Cache.DebounceDelay = 150 * time.Millisecond
	}
	if c.Cache.RenderTimeout <= 0 {
		c.Cache.RenderTimeout = 5 * time.Second
	}
	if c.Assets.CacheSize <= 0 {
		c.Assets.CacheSize = 64
	}
	return nil
}

// EngineOptions converts the cache section into engine options.
func (c CacheConfig) EngineOptions() render.Options {
	return render.Options{
		CacheRadius:     c.Radius,
		MaxCacheSize:    c.MaxEntries,
		LowQualityScale: c.LowQualityScale,
		DebounceDelay:   c.DebounceDelay,
		RenderTimeout:   c.RenderTimeout,
	}
}
