// Package community bundles well-known terminal color schemes and
// converts them onto the editor palette, so cutroom can match the rest
// of a user's terminal setup.
package community

import (
	"strconv"
	"strings"

	"github.com/wilbur182/cutroom/internal/styles"
)

// CommunityScheme represents a color scheme in Windows Terminal JSON format.
type CommunityScheme struct {
	Name                string `json:"name"`
	Black               string `json:"black"`
	Red                 string `json:"red"`
	Green               string `json:"green"`
	Yellow              string `json:"yellow"`
	Blue                string `json:"blue"`
	Purple              string `json:"purple"`
	Cyan                string `json:"cyan"`
	White               string `json:"white"`
	BrightBlack         string `json:"brightBlack"`
	BrightRed           string `json:"brightRed"`
	BrightGreen         string `json:"brightGreen"`
	BrightYellow        string `json:"brightYellow"`
	BrightBlue          string `json:"brightBlue"`
	BrightPurple        string `json:"brightPurple"`
	BrightCyan          string `json:"brightCyan"`
	BrightWhite         string `json:"brightWhite"`
	Background          string `json:"background"`
	Foreground          string `json:"foreground"`
	CursorColor         string `json:"cursorColor"`
	SelectionBackground string `json:"selectionBackground"`
}

// Theme converts the scheme onto the editor palette. Terminal schemes
// carry no editor-specific colors, so the mapping leans on ANSI
// conventions: green for fully cached, yellow for warming, the cursor
// color doubling as the playhead.
func (s *CommunityScheme) Theme() styles.Theme {
	playhead := s.CursorColor
	if playhead == "" {
		playhead = s.Red
	}
	selection := s.SelectionBackground
	if selection == "" {
		selection = s.BrightBlack
	}

	return styles.Theme{
		Name:        Slug(s.Name),
		DisplayName: s.Name,
		Colors: styles.ColorPalette{
			Primary: s.Purple,
			Accent:  s.Yellow,

			Success: s.Green,
			Warning: s.Yellow,
			Error:   s.Red,
			Info:    s.Blue,

			TextPrimary:   s.Foreground,
			TextSecondary: s.White,
			TextMuted:     s.BrightBlack,
			TextSubtle:    s.Black,

			BgPrimary:   s.Background,
			BgSecondary: s.Black,
			BgTertiary:  s.BrightBlack,

			BorderNormal: s.BrightBlack,
			BorderActive: s.Purple,

			Playhead: playhead,
			ShotEven: selection,
			ShotOdd:  s.Black,

			HeatHigh: s.Green,
			HeatLow:  s.Yellow,

			MarkdownTheme: markdownThemeFor(s.Background),
		},
	}
}

// Slug turns a scheme display name into a theme registry key.
func Slug(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}

// markdownThemeFor picks the glamour style by background luminance.
func markdownThemeFor(background string) string {
	r, g, b, ok := parseHex(background)
	if !ok {
		return "dark"
	}
	// Rec. 601 luma.
	if (299*r+587*g+114*b)/1000 > 128 {
		return "light"
	}
	return "dark"
}

func parseHex(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16), int(v >> 8 & 0xFF), int(v & 0xFF), true
}
