package community

import "testing"

func TestSchemeCount(t *testing.T) {
	if got := SchemeCount(); got != 6 {
		t.Errorf("SchemeCount() = %d, want 6", got)
	}
}

func TestListSchemes(t *testing.T) {
	schemes := ListSchemes()
	if len(schemes) == 0 {
		t.Fatal("ListSchemes() returned empty")
	}
	for i := 1; i < len(schemes); i++ {
		if schemes[i] < schemes[i-1] {
			t.Errorf("ListSchemes() not sorted: %s < %s at index %d", schemes[i], schemes[i-1], i)
			break
		}
	}
}

func TestGetScheme(t *testing.T) {
	s := GetScheme("Nord")
	if s == nil {
		t.Fatal("GetScheme('Nord') returned nil")
	}
	if s.Background != "#2e3440" {
		t.Errorf("Nord background = %s, want #2e3440", s.Background)
	}
	if s.Foreground != "#d8dee9" {
		t.Errorf("Nord foreground = %s, want #d8dee9", s.Foreground)
	}
}

func TestGetSchemeNotFound(t *testing.T) {
	if s := GetScheme("nonexistent-theme-xyz"); s != nil {
		t.Error("GetScheme for nonexistent theme should return nil")
	}
}

func TestSchemeFieldsPopulated(t *testing.T) {
	s := GetScheme("Gruvbox Dark")
	if s == nil {
		t.Fatal("GetScheme('Gruvbox Dark') returned nil")
	}
	fields := []struct {
		name, val string
	}{
		{"Black", s.Black},
		{"Red", s.Red},
		{"Green", s.Green},
		{"Blue", s.Blue},
		{"Background", s.Background},
		{"Foreground", s.Foreground},
	}
	for _, f := range fields {
		if f.val == "" {
			t.Errorf("Gruvbox Dark.%s is empty", f.name)
		}
		if len(f.val) != 7 || f.val[0] != '#' {
			t.Errorf("Gruvbox Dark.%s = %q, not valid hex", f.name, f.val)
		}
	}
}

func TestSchemeTheme(t *testing.T) {
	th := GetScheme("Nord").Theme()

	if th.Name != "nord" {
		t.Errorf("theme name = %q, want the slug", th.Name)
	}
	if th.DisplayName != "Nord" {
		t.Errorf("display name = %q, want Nord", th.DisplayName)
	}
	if th.Colors.Playhead != "#d8dee9" {
		t.Errorf("playhead = %s, want the cursor color", th.Colors.Playhead)
	}
	if th.Colors.HeatHigh != "#a3be8c" {
		t.Errorf("heat high = %s, want the scheme green", th.Colors.HeatHigh)
	}
	if th.Colors.BgPrimary != "#2e3440" {
		t.Errorf("background = %s, want the scheme background", th.Colors.BgPrimary)
	}
	if th.Colors.MarkdownTheme != "dark" {
		t.Errorf("markdown theme = %q, want dark", th.Colors.MarkdownTheme)
	}
}

func TestLightSchemeMarkdown(t *testing.T) {
	th := GetScheme("Solarized Light").Theme()
	if th.Colors.MarkdownTheme != "light" {
		t.Errorf("markdown theme = %q, want light for a light background", th.Colors.MarkdownTheme)
	}
}

func TestThemesCoverAllSchemes(t *testing.T) {
	themes := Themes()
	if len(themes) != SchemeCount() {
		t.Fatalf("Themes() returned %d themes for %d schemes", len(themes), SchemeCount())
	}
	for _, th := range themes {
		if th.Name != Slug(th.DisplayName) {
			t.Errorf("theme %q should be keyed by its slug", th.DisplayName)
		}
	}
}
