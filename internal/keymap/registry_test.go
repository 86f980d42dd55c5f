package keymap

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// Default bindings resolve through Handle.
func TestRegistry_DefaultBindings(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		key  tea.KeyMsg
		want Action
	}{
		{tea.KeyMsg{Type: tea.KeySpace}, ActionPlayToggle},
		{tea.KeyMsg{Type: tea.KeyLeft}, ActionStepBack},
		{tea.KeyMsg{Type: tea.KeyRight}, ActionStepForward},
		{tea.KeyMsg{Type: tea.KeyShiftLeft}, ActionJumpBack},
		{tea.KeyMsg{Type: tea.KeyShiftRight}, ActionJumpForward},
		{tea.KeyMsg{Type: tea.KeyHome}, ActionGoStart},
		{tea.KeyMsg{Type: tea.KeyEnd}, ActionGoEnd},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, ActionQuit},
		{runeKey('q'), ActionQuit},
		{runeKey('h'), ActionStepBack},
		{runeKey('l'), ActionStepForward},
		{runeKey('g'), ActionGoto},
		{runeKey('y'), ActionCopyTimecode},
		{runeKey('r'), ActionRerender},
		{runeKey('R'), ActionInvalidateAll},
		{runeKey('s'), ActionToggleStats},
		{runeKey('?'), ActionHelp},
		{runeKey('+'), ActionZoomIn},
		{runeKey('-'), ActionZoomOut},
	}
	for _, tt := range tests {
		if got := r.Handle(tt.key); got != tt.want {
			t.Errorf("Handle(%v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

// Unbound keys resolve to ActionNone.
func TestRegistry_UnboundKey(t *testing.T) {
	r := NewRegistry()
	if got := r.Handle(runeKey('x')); got != ActionNone {
		t.Errorf("Handle(x) = %q, want ActionNone", got)
	}
}

// User overrides bind new keys and shadow default meanings.
func TestRegistry_Overrides(t *testing.T) {
	r := NewRegistry()
	err := r.ApplyOverrides(map[string]string{
		"ctrl+q": "quit",        // extra binding
		"q":      "play-toggle", // shadows the default quit
	})
	if err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}

	if got := r.Lookup("ctrl+q"); got != ActionQuit {
		t.Errorf("Lookup(ctrl+q) = %q, want quit", got)
	}
	if got := r.Lookup("q"); got != ActionPlayToggle {
		t.Errorf("Lookup(q) = %q, want play-toggle after override", got)
	}
}

// Overrides naming unknown actions are rejected.
func TestRegistry_UnknownOverrideAction(t *testing.T) {
	r := NewRegistry()
	if err := r.ApplyOverrides(map[string]string{"x": "explode"}); err == nil {
		t.Error("ApplyOverrides with unknown action succeeded, want error")
	}
}

// KeysFor lists live bindings: defaults minus shadowed, plus overrides.
func TestRegistry_KeysFor(t *testing.T) {
	r := NewRegistry()
	if got := r.KeysFor(ActionQuit); !reflect.DeepEqual(got, []string{"q", "ctrl+c"}) {
		t.Errorf("KeysFor(quit) = %v, want [q ctrl+c]", got)
	}

	if err := r.ApplyOverrides(map[string]string{"q": "play-toggle"}); err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}
	if got := r.KeysFor(ActionQuit); !reflect.DeepEqual(got, []string{"ctrl+c"}) {
		t.Errorf("KeysFor(quit) after shadow = %v, want [ctrl+c]", got)
	}
	if got := r.KeysFor(ActionPlayToggle); !reflect.DeepEqual(got, []string{"space", "q"}) {
		t.Errorf("KeysFor(play-toggle) = %v, want [space q]", got)
	}
}

// Entries cover every action once, in table order.
func TestRegistry_Entries(t *testing.T) {
	r := NewRegistry()
	entries := r.Entries()

	if len(entries) != len(defaults) {
		t.Fatalf("Entries returned %d rows, want %d", len(entries), len(defaults))
	}
	if entries[0].Action != ActionPlayToggle {
		t.Errorf("first entry = %q, want play-toggle", entries[0].Action)
	}
	seen := map[Action]bool{}
	for _, e := range entries {
		if seen[e.Action] {
			t.Errorf("action %q listed twice", e.Action)
		}
		seen[e.Action] = true
		if e.Name == "" {
			t.Errorf("action %q has no name", e.Action)
		}
		if len(e.Keys) == 0 {
			t.Errorf("action %q has no keys", e.Action)
		}
	}
}

// Key events normalize to the strings bindings are written in.
func TestKeyToString(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeySpace}, "space"},
		{runeKey('a'), "a"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Alt: true}, "alt+a"},
		{tea.KeyMsg{Type: tea.KeyLeft}, "left"},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, "ctrl+c"},
		{tea.KeyMsg{Type: tea.KeyShiftLeft}, "shift+left"},
	}
	for _, tt := range tests {
		if got := keyToString(tt.key); got != tt.want {
			t.Errorf("keyToString(%v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
