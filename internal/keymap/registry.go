// Package keymap resolves key presses to editor actions, with user
// overrides layered over the defaults.
package keymap

import (
	"fmt"
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Action identifies an editor operation a key can trigger.
type Action string

const (
	ActionNone          Action = ""
	ActionQuit          Action = "quit"
	ActionPlayToggle    Action = "play-toggle"
	ActionStepBack      Action = "step-back"
	ActionStepForward   Action = "step-forward"
	ActionJumpBack      Action = "jump-back"
	ActionJumpForward   Action = "jump-forward"
	ActionGoStart       Action = "go-start"
	ActionGoEnd         Action = "go-end"
	ActionGoto          Action = "goto"
	ActionCopyTimecode  Action = "copy-timecode"
	ActionRerender      Action = "rerender"
	ActionInvalidateAll Action = "invalidate-all"
	ActionToggleStats   Action = "toggle-stats"
	ActionZoomIn        Action = "zoom-in"
	ActionZoomOut       Action = "zoom-out"
	ActionHelp          Action = "help"
)

// Entry describes one action for the help overlay.
type Entry struct {
	Action Action
	Name   string
	Keys   []string
}

type binding struct {
	action Action
	name   string
	keys   []string
}

// defaults is the canonical binding table; its order drives help output.
var defaults = []binding{
	{ActionPlayToggle, "play / pause", []string{"space"}},
	{ActionStepBack, "step back one frame", []string{"left", "h"}},
	{ActionStepForward, "step forward one frame", []string{"right", "l"}},
	{ActionJumpBack, "jump back ten frames", []string{"shift+left"}},
	{ActionJumpForward, "jump forward ten frames", []string{"shift+right"}},
	{ActionGoStart, "go to first frame", []string{"home", "0"}},
	{ActionGoEnd, "go to last frame", []string{"end", "$"}},
	{ActionGoto, "go to frame...", []string{"g"}},
	{ActionZoomIn, "zoom timeline in", []string{"+", "="}},
	{ActionZoomOut, "zoom timeline out", []string{"-"}},
	{ActionCopyTimecode, "copy timecode", []string{"y"}},
	{ActionRerender, "re-render current frame", []string{"r"}},
	{ActionInvalidateAll, "drop all cached frames", []string{"R"}},
	{ActionToggleStats, "toggle cache stats", []string{"s"}},
	{ActionHelp, "help", []string{"?"}},
	{ActionQuit, "quit", []string{"q", "ctrl+c"}},
}

// Registry manages key bindings and action dispatch.
type Registry struct {
	mu        sync.RWMutex
	bindings  map[string]Action // default key -> action
	overrides map[string]Action // user key -> action, wins over bindings
}

// NewRegistry creates a registry with the default bindings.
func NewRegistry() *Registry {
	r := &Registry{
		bindings:  make(map[string]Action),
		overrides: make(map[string]Action),
	}
	for _, b := range defaults {
		for _, k := range b.keys {
			r.bindings[k] = b.action
		}
	}
	return r
}

// ApplyOverrides installs user-configured bindings. Keys map to action
// names; an override shadows whatever the key meant by default.
func (r *Registry) ApplyOverrides(overrides map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, name := range overrides {
		action := Action(name)
		if !knownAction(action) {
			return fmt.Errorf("keymap: unknown action %q for key %q", name, key)
		}
		r.overrides[key] = action
	}
	return nil
}

// Handle resolves a key event to an action. Returns ActionNone when
// the key is unbound.
func (r *Registry) Handle(key tea.KeyMsg) Action {
	return r.Lookup(keyToString(key))
}

// Lookup resolves a key string to an action, overrides first.
func (r *Registry) Lookup(key string) Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if action, ok := r.overrides[key]; ok {
		return action
	}
	if action, ok := r.bindings[key]; ok {
		return action
	}
	return ActionNone
}

// KeysFor returns the keys currently bound to an action, defaults
// first. Defaults shadowed by an override are excluded.
func (r *Registry) KeysFor(action Action) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var keys []string
	for _, b := range defaults {
		if b.action != action {
			continue
		}
		for _, k := range b.keys {
			if _, shadowed := r.overrides[k]; !shadowed {
				keys = append(keys, k)
			}
		}
	}
	var extra []string
	for k, a := range r.overrides {
		if a == action {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// Entries returns the help table in canonical order.
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, 0, len(defaults))
	for _, b := range defaults {
		entries = append(entries, Entry{
			Action: b.action,
			Name:   b.name,
			Keys:   r.KeysFor(b.action),
		})
	}
	return entries
}

func knownAction(action Action) bool {
	for _, b := range defaults {
		if b.action == action {
			return true
		}
	}
	return false
}

// keyToString converts a tea.KeyMsg to a string representation.
func keyToString(key tea.KeyMsg) string {
	switch key.Type {
	case tea.KeySpace:
		return "space"
	case tea.KeyRunes:
		if key.Alt {
			return "alt+" + string(key.Runes)
		}
		return string(key.Runes)
	default:
		return key.String()
	}
}
