package styles

import (
	"regexp"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// themeMu protects access to themeRegistry and currentTheme for thread safety
var themeMu sync.RWMutex

// hexColorRegex validates hex color codes (#RRGGBB or #RRGGBBAA with alpha)
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)

// ColorPalette holds all theme colors
type ColorPalette struct {
	// Brand colors
	Primary string `json:"primary"`
	Accent  string `json:"accent"`

	// Status colors
	Success string `json:"success"`
	Warning string `json:"warning"`
	Error   string `json:"error"`
	Info    string `json:"info"`

	// Text colors
	TextPrimary   string `json:"textPrimary"`
	TextSecondary string `json:"textSecondary"`
	TextMuted     string `json:"textMuted"`
	TextSubtle    string `json:"textSubtle"`

	// Background colors
	BgPrimary   string `json:"bgPrimary"`
	BgSecondary string `json:"bgSecondary"`
	BgTertiary  string `json:"bgTertiary"`

	// Border colors
	BorderNormal string `json:"borderNormal"`
	BorderActive string `json:"borderActive"`

	// Timeline colors
	Playhead string `json:"playhead"` // playhead marker
	ShotEven string `json:"shotEven"` // alternating shot block backgrounds
	ShotOdd  string `json:"shotOdd"`

	// Cache heat strip colors (miss reuses TextSubtle)
	HeatHigh string `json:"heatHigh"` // frame cached at high quality
	HeatLow  string `json:"heatLow"`  // frame cached at low quality only

	// Third-party theme names
	MarkdownTheme string `json:"markdownTheme"` // Glamour theme name
}

// Theme represents a complete theme configuration
type Theme struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Colors      ColorPalette `json:"colors"`
}

// Built-in themes
var (
	// DefaultTheme is the standard dark theme
	DefaultTheme = Theme{
		Name:        "default",
		DisplayName: "Default Dark",
		Colors: ColorPalette{
			Primary: "#7C3AED", // Purple
			Accent:  "#F59E0B", // Amber

			Success: "#10B981", // Green
			Warning: "#F59E0B", // Amber
			Error:   "#EF4444", // Red
			Info:    "#3B82F6", // Blue

			TextPrimary:   "#F9FAFB",
			TextSecondary: "#9CA3AF",
			TextMuted:     "#6B7280",
			TextSubtle:    "#4B5563",

			BgPrimary:   "#111827",
			BgSecondary: "#1F2937",
			BgTertiary:  "#374151",

			BorderNormal: "#374151",
			BorderActive: "#7C3AED",

			Playhead: "#EF4444",
			ShotEven: "#1E3A5F",
			ShotOdd:  "#3B2F5E",

			HeatHigh: "#10B981",
			HeatLow:  "#F59E0B",

			MarkdownTheme: "dark",
		},
	}

	// DraculaTheme is a Dracula-inspired dark theme with vibrant colors
	DraculaTheme = Theme{
		Name:        "dracula",
		DisplayName: "Dracula",
		Colors: ColorPalette{
			Primary: "#BD93F9", // Purple
			Accent:  "#FFB86C", // Orange

			Success: "#50FA7B", // Green
			Warning: "#FFB86C", // Orange
			Error:   "#FF5555", // Red
			Info:    "#8BE9FD", // Cyan

			TextPrimary:   "#F8F8F2",
			TextSecondary: "#BFBFBF",
			TextMuted:     "#6272A4",
			TextSubtle:    "#44475A",

			BgPrimary:   "#282A36",
			BgSecondary: "#343746",
			BgTertiary:  "#44475A",

			BorderNormal: "#44475A",
			BorderActive: "#BD93F9",

			Playhead: "#FF5555",
			ShotEven: "#3A3C4E",
			ShotOdd:  "#2E3040",

			HeatHigh: "#50FA7B",
			HeatLow:  "#FFB86C",

			MarkdownTheme: "dracula",
		},
	}

	// NoirTheme is a low-saturation grayscale theme
	NoirTheme = Theme{
		Name:        "noir",
		DisplayName: "Noir",
		Colors: ColorPalette{
			Primary: "#A3A3A3",
			Accent:  "#D4D4D4",

			Success: "#D1D5DB",
			Warning: "#9CA3AF",
			Error:   "#F87171", // errors still stand out
			Info:    "#A3A3A3",

			TextPrimary:   "#FAFAFA",
			TextSecondary: "#A3A3A3",
			TextMuted:     "#737373",
			TextSubtle:    "#525252",

			BgPrimary:   "#0A0A0A",
			BgSecondary: "#171717",
			BgTertiary:  "#262626",

			BorderNormal: "#404040",
			BorderActive: "#A3A3A3",

			Playhead: "#F87171",
			ShotEven: "#1F1F1F",
			ShotOdd:  "#2E2E2E",

			HeatHigh: "#D4D4D4",
			HeatLow:  "#737373",

			MarkdownTheme: "dark",
		},
	}
)

// themeRegistry holds all available themes
var themeRegistry = map[string]Theme{
	"default": DefaultTheme,
	"dracula": DraculaTheme,
	"noir":    NoirTheme,
}

// currentTheme tracks the active theme name
var currentTheme = "default"
var currentThemeValue = DefaultTheme

// IsValidHexColor checks if a string is a valid hex color code (#RRGGBB or #RRGGBBAA)
func IsValidHexColor(hex string) bool {
	return hexColorRegex.MatchString(hex)
}

// IsValidTheme checks if a theme name exists in the registry
func IsValidTheme(name string) bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	_, ok := themeRegistry[name]
	return ok
}

// GetTheme returns a theme by name, or the default theme if not found
func GetTheme(name string) Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if theme, ok := themeRegistry[name]; ok {
		return theme
	}
	return DefaultTheme
}

// GetCurrentTheme returns the currently active theme
func GetCurrentTheme() Theme {
	themeMu.RLock()
	theme := currentThemeValue
	themeMu.RUnlock()
	return theme
}

// GetCurrentThemeName returns the name of the currently active theme
func GetCurrentThemeName() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// ListThemes returns the names of all available themes in sorted order
func ListThemes() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterTheme adds a custom theme to the registry
func RegisterTheme(theme Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	themeRegistry[theme.Name] = theme
}

// ApplyTheme applies a theme by name, updating all style variables
func ApplyTheme(name string) {
	theme := GetTheme(name)
	ApplyThemeColors(theme)
	themeMu.Lock()
	currentTheme = name
	themeMu.Unlock()
}

// ApplyThemeWithOverrides applies a theme with color overrides from config
func ApplyThemeWithOverrides(name string, overrides map[string]string) {
	theme := GetTheme(name)

	if overrides != nil {
		applyOverrides(&theme.Colors, overrides)
	}

	ApplyThemeColors(theme)
	themeMu.Lock()
	currentTheme = name
	themeMu.Unlock()
}

// applyOverrides applies color overrides to a palette.
// Delegates to applySingleOverride which validates hex colors.
func applyOverrides(palette *ColorPalette, overrides map[string]string) {
	for key, value := range overrides {
		applySingleOverride(palette, key, value)
	}
}

// applySingleOverride applies a single string override.
// Color values must be valid hex colors (#RRGGBB). Invalid colors are silently ignored.
func applySingleOverride(palette *ColorPalette, key, value string) {
	// markdownTheme is a name, not a color
	isThemeName := key == "markdownTheme"
	if !isThemeName && !IsValidHexColor(value) {
		return // Skip invalid hex color
	}

	switch key {
	case "primary":
		palette.Primary = value
	case "accent":
		palette.Accent = value
	case "success":
		palette.Success = value
	case "warning":
		palette.Warning = value
	case "error":
		palette.Error = value
	case "info":
		palette.Info = value
	case "textPrimary":
		palette.TextPrimary = value
	case "textSecondary":
		palette.TextSecondary = value
	case "textMuted":
		palette.TextMuted = value
	case "textSubtle":
		palette.TextSubtle = value
	case "bgPrimary":
		palette.BgPrimary = value
	case "bgSecondary":
		palette.BgSecondary = value
	case "bgTertiary":
		palette.BgTertiary = value
	case "borderNormal":
		palette.BorderNormal = value
	case "borderActive":
		palette.BorderActive = value
	case "playhead":
		palette.Playhead = value
	case "shotEven":
		palette.ShotEven = value
	case "shotOdd":
		palette.ShotOdd = value
	case "heatHigh":
		palette.HeatHigh = value
	case "heatLow":
		palette.HeatLow = value
	case "markdownTheme":
		palette.MarkdownTheme = value
	}
}

// Color variables updated by ApplyThemeColors.
var (
	Primary lipgloss.Color
	Accent  lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color
	TextSubtle    lipgloss.Color

	BgPrimary   lipgloss.Color
	BgSecondary lipgloss.Color
	BgTertiary  lipgloss.Color

	BorderNormal lipgloss.Color
	BorderActive lipgloss.Color

	PlayheadColor lipgloss.Color
	ShotEvenColor lipgloss.Color
	ShotOddColor  lipgloss.Color
	HeatHighColor lipgloss.Color
	HeatLowColor  lipgloss.Color

	// CurrentMarkdownTheme is the glamour style name for the active theme
	CurrentMarkdownTheme string
)

// Style variables rebuilt whenever the theme changes.
var (
	// Text styles
	Title     lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Subtle    lipgloss.Style
	ErrorText lipgloss.Style

	// Status bar styles
	StatusBar       lipgloss.Style
	StatusChip      lipgloss.Style
	StatusChipAlert lipgloss.Style
	Timecode        lipgloss.Style
	QualityHigh     lipgloss.Style
	QualityLow      lipgloss.Style
	KeyHint         lipgloss.Style

	// Timeline styles
	TrackLabel lipgloss.Style
	ShotEven   lipgloss.Style
	ShotOdd    lipgloss.Style
	ShotMuted  lipgloss.Style
	Playhead   lipgloss.Style
	Ruler      lipgloss.Style

	// Cache heat strip styles
	HeatHigh lipgloss.Style
	HeatLow  lipgloss.Style
	HeatMiss lipgloss.Style

	// Modal styles
	ModalBox    lipgloss.Style
	ModalTitle  lipgloss.Style
	PromptLabel lipgloss.Style
)

func init() {
	ApplyThemeColors(DefaultTheme)
}

// ApplyThemeColors updates all style package variables from a theme.
//
// IMPORTANT: This function is NOT thread-safe for concurrent reads.
// It must only be called during initialization, before the TUI starts.
// The TUI's single-threaded Bubble Tea model ensures safe access after init.
func ApplyThemeColors(theme Theme) {
	c := theme.Colors

	Primary = lipgloss.Color(c.Primary)
	Accent = lipgloss.Color(c.Accent)

	Success = lipgloss.Color(c.Success)
	Warning = lipgloss.Color(c.Warning)
	Error = lipgloss.Color(c.Error)
	Info = lipgloss.Color(c.Info)

	TextPrimary = lipgloss.Color(c.TextPrimary)
	TextSecondary = lipgloss.Color(c.TextSecondary)
	TextMuted = lipgloss.Color(c.TextMuted)
	TextSubtle = lipgloss.Color(c.TextSubtle)

	BgPrimary = lipgloss.Color(c.BgPrimary)
	BgSecondary = lipgloss.Color(c.BgSecondary)
	BgTertiary = lipgloss.Color(c.BgTertiary)

	BorderNormal = lipgloss.Color(c.BorderNormal)
	BorderActive = lipgloss.Color(c.BorderActive)

	PlayheadColor = lipgloss.Color(c.Playhead)
	ShotEvenColor = lipgloss.Color(c.ShotEven)
	ShotOddColor = lipgloss.Color(c.ShotOdd)
	HeatHighColor = lipgloss.Color(c.HeatHigh)
	HeatLowColor = lipgloss.Color(c.HeatLow)

	CurrentMarkdownTheme = c.MarkdownTheme

	themeMu.Lock()
	currentThemeValue = theme
	themeMu.Unlock()

	rebuildStyles()
}

// rebuildStyles recreates all lipgloss styles with current colors
func rebuildStyles() {
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Body = lipgloss.NewStyle().
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Subtle = lipgloss.NewStyle().
		Foreground(TextSubtle)

	ErrorText = lipgloss.NewStyle().
		Foreground(Error)

	StatusBar = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgSecondary)

	StatusChip = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	StatusChipAlert = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Primary).
		Padding(0, 1).
		Bold(true)

	Timecode = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	QualityHigh = lipgloss.NewStyle().
		Foreground(Success)

	QualityLow = lipgloss.NewStyle().
		Foreground(Warning)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	TrackLabel = lipgloss.NewStyle().
		Foreground(TextMuted)

	ShotEven = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(ShotEvenColor)

	ShotOdd = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(ShotOddColor)

	ShotMuted = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary)

	Playhead = lipgloss.NewStyle().
		Foreground(PlayheadColor).
		Bold(true)

	Ruler = lipgloss.NewStyle().
		Foreground(TextSubtle)

	HeatHigh = lipgloss.NewStyle().
		Foreground(HeatHighColor)

	HeatLow = lipgloss.NewStyle().
		Foreground(HeatLowColor)

	HeatMiss = lipgloss.NewStyle().
		Foreground(TextSubtle)

	ModalBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderActive).
		Background(BgSecondary).
		Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true).
		MarginBottom(1)

	PromptLabel = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
}

// GetMarkdownTheme returns the current markdown rendering theme name
func GetMarkdownTheme() string {
	return CurrentMarkdownTheme
}
