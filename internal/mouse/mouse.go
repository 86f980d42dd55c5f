// Package mouse maps raw terminal mouse events onto editor gestures.
// Views register the rows they draw (timeline strip, heat strip) in a
// HitMap; the Handler folds presses, drags, and wheel movement over
// those regions into seek and step gestures.
package mouse

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Rect is a rectangle in screen cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) falls inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named screen rectangle that reacts to the mouse.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds the clickable regions of the current layout.
type HitMap struct {
	regions []Region
}

// NewHitMap creates an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{regions: make([]Region, 0, 8)}
}

// Clear drops all regions, typically before a relayout.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Add registers a region. Later additions sit on top of earlier ones.
func (h *HitMap) Add(id string, rect Rect, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: rect, Data: data})
}

// AddRect registers a region from bare coordinates.
func (h *HitMap) AddRect(id string, x, y, w, height int, data any) {
	h.Add(id, Rect{X: x, Y: y, W: w, H: height}, data)
}

// Test returns the topmost region containing the cell, or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			return &h.regions[i]
		}
	}
	return nil
}

// Regions returns a copy of the registered regions.
func (h *HitMap) Regions() []Region {
	return append([]Region(nil), h.regions...)
}

// GestureType classifies what the user is doing with the mouse.
type GestureType int

const (
	GestureNone GestureType = iota
	// GestureSeek is a press or drag over a seekable region; X carries
	// the column under the cursor.
	GestureSeek
	// GestureStep is a wheel movement; Delta carries the frame offset.
	GestureStep
)

// Gesture is one classified mouse event.
type Gesture struct {
	Type     GestureType
	RegionID string // region the gesture started in
	X, Y     int
	Delta    int // frames to move for GestureStep
}

// wheelJump is the wheel step size while shift is held.
const wheelJump = 10

// Handler folds raw mouse events into gestures. A press inside a
// region starts a scrub that follows the cursor until release, even
// when motion strays off the region's rows.
type Handler struct {
	HitMap *HitMap

	dragRegion string // non-empty while a scrub drag is live
}

// NewHandler creates a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap()}
}

// Handle classifies one mouse event.
func (h *Handler) Handle(msg tea.MouseMsg) Gesture {
	switch msg.Action {
	case tea.MouseActionPress:
		return h.press(msg)

	case tea.MouseActionMotion:
		if h.dragRegion == "" {
			return Gesture{}
		}
		return Gesture{Type: GestureSeek, RegionID: h.dragRegion, X: msg.X, Y: msg.Y}

	case tea.MouseActionRelease:
		h.dragRegion = ""
	}
	return Gesture{}
}

func (h *Handler) press(msg tea.MouseMsg) Gesture {
	switch msg.Button {
	case tea.MouseButtonLeft:
		region := h.HitMap.Test(msg.X, msg.Y)
		if region == nil {
			return Gesture{}
		}
		h.dragRegion = region.ID
		return Gesture{Type: GestureSeek, RegionID: region.ID, X: msg.X, Y: msg.Y}

	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		return Gesture{Type: GestureStep, Delta: -stepSize(msg), X: msg.X, Y: msg.Y}

	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		return Gesture{Type: GestureStep, Delta: stepSize(msg), X: msg.X, Y: msg.Y}
	}
	return Gesture{}
}

func stepSize(msg tea.MouseMsg) int {
	if msg.Shift {
		return wheelJump
	}
	return 1
}
