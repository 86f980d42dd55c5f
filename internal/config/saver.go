package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Cache  saveCacheConfig  `json:"cache"`
	Assets saveAssetsConfig `json:"assets"`
	UI     saveUIConfig     `json:"ui"`
	Keymap KeymapConfig     `json:"keymap"`
}

type saveCacheConfig struct {
	Radius          *int     `json:"radius,omitempty"`
	MaxEntries      *int     `json:"maxEntries,omitempty"`
	LowQualityScale *float64 `json:"lowQualityScale,omitempty"`
	DebounceDelay   string   `json:"debounceDelay,omitempty"`
	RenderTimeout   string   `json:"renderTimeout,omitempty"`
}

type saveAssetsConfig struct {
	Dir       string `json:"dir,omitempty"`
	Watch     *bool  `json:"watch,omitempty"`
	CacheSize *int   `json:"cacheSize,omitempty"`
}

type saveUIConfig struct {
	Theme          string            `json:"theme,omitempty"`
	ShowStats      *bool             `json:"showStats,omitempty"`
	ShowHeat       *bool             `json:"showHeat,omitempty"`
	ThemeOverrides map[string]string `json:"themeOverrides,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Cache: saveCacheConfig{
			Radius:          &cfg.Cache.Radius,
			MaxEntries:      &cfg.Cache.MaxEntries,
			LowQualityScale: &cfg.Cache.LowQualityScale,
			DebounceDelay:   cfg.Cache.DebounceDelay.String(),
			RenderTimeout:   cfg.Cache.RenderTimeout.String(),
		},
		Assets: saveAssetsConfig{
			Dir:       cfg.Assets.Dir,
			Watch:     &cfg.Assets.Watch,
			CacheSize: &cfg.Assets.CacheSize,
		},
		UI: saveUIConfig{
			Theme:          cfg.UI.Theme,
			ShowStats:      &cfg.UI.ShowStats,
			ShowHeat:       &cfg.UI.ShowHeat,
			ThemeOverrides: cfg.UI.ThemeOverrides,
		},
		Keymap: cfg.Keymap,
	}
}

// applySaveConfig merges a parsed file onto cfg. Absent fields keep
// their current values.
func applySaveConfig(cfg *Config, sc saveConfig) error {
	if sc.Cache.Radius != nil {
		cfg.Cache.Radius = *sc.Cache.Radius
	}
	if sc.Cache.MaxEntries != nil {
		cfg.Cache.MaxEntries = *sc.Cache.MaxEntries
	}
	if sc.Cache.LowQualityScale != nil {
		cfg.Cache.LowQualityScale = *sc.Cache.LowQualityScale
	}
	if sc.Cache.DebounceDelay != "" {
		d, err := time.ParseDuration(sc.Cache.DebounceDelay)
		if err != nil {
			return fmt.Errorf("parse debounceDelay: %w", err)
		}
		cfg.Cache.DebounceDelay = d
	}
	if sc.Cache.RenderTimeout != "" {
		d, err := time.ParseDuration(sc.Cache.RenderTimeout)
		if err != nil {
			return fmt.Errorf("parse renderTimeout: %w", err)
		}
		cfg.Cache.RenderTimeout = d
	}
	if sc.Assets.Dir != "" {
		cfg.Assets.Dir = sc.Assets.Dir
	}
	if sc.Assets.Watch != nil {
		cfg.Assets.Watch = *sc.Assets.Watch
	}
	if sc.Assets.CacheSize != nil {
		cfg.Assets.CacheSize = *sc.Assets.CacheSize
	}
	if sc.UI.Theme != "" {
		cfg.UI.Theme = sc.UI.Theme
	}
	if sc.UI.ShowStats != nil {
		cfg.UI.ShowStats = *sc.UI.ShowStats
	}
	if sc.UI.ShowHeat != nil {
		cfg.UI.ShowHeat = *sc.UI.ShowHeat
	}
	if sc.UI.ThemeOverrides != nil {
		cfg.UI.ThemeOverrides = sc.UI.ThemeOverrides
	}
	if sc.Keymap.Overrides != nil {
		cfg.Keymap.Overrides = sc.Keymap.Overrides
	}
	return nil
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cutroom", "config.json")
}

// LogPath returns the full path to the debug log file.
func LogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cutroom", "cutroom.log")
}

// Load reads the config from the default path. A missing file yields
// the defaults.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config from path, merging it onto the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var sc saveConfig
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := applySaveConfig(cfg, sc); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to ~/.config/cutroom/config.json
func Save(cfg *Config) error {
	return SaveTo(cfg, ConfigPath())
}

// SaveTo writes the config to an explicit path.
func SaveTo(cfg *Config, path string) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	sc := toSaveConfig(cfg)
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
