// Package timeline holds the sequence data model: tracks stacked
// bottom-up, shots placed on tracks by frame range, and layers
// composited within a shot. The model is plain data; rendering it is
// the compositor's job and caching rendered frames is the engine's.
package timeline

import "sort"

// Sequence is one editable timeline.
type Sequence struct {
	Name   string
	FPS    int
	Width  int
	Height int
	Tracks []Track
}

// Track is a horizontal band of shots. Track 0 composites first, so it
// sits at the bottom of the stack.
type Track struct {
	Name  string
	Muted bool
	Shots []Shot
}

// Shot occupies [Start, Start+Duration) on its track.
type Shot struct {
	Name     string
	Start    int
	Duration int
	Layers   []Layer
}

// Layer places one asset inside a shot. Offsets are in sequence pixels,
// Scale multiplies the asset's native size, Opacity is 0..1.
type Layer struct {
	Asset   string
	Opacity float64
	Scale   float64
	OffsetX int
	OffsetY int
	Hidden  bool
}

// End returns the first frame after the shot.
func (sh Shot) End() int {
	return sh.Start + sh.Duration
}

// Contains reports whether frame falls inside the shot. Start is
// inclusive, End exclusive.
func (sh Shot) Contains(frame int) bool {
	return frame >= sh.Start && frame < sh.End()
}

// TotalFrames returns the sequence length: one past the last frame any
// shot occupies, muted tracks included.
func (s *Sequence) TotalFrames() int {
	total := 0
	for _, tr := range s.Tracks {
		for _, sh := range tr.Shots {
			if sh.End() > total {
				total = sh.End()
			}
		}
	}
	return total
}

// ShotsAt returns the shots covering frame in composite order, bottom
// track first. Muted tracks contribute nothing.
func (s *Sequence) ShotsAt(frame int) []Shot {
	var out []Shot
	for _, tr := range s.Tracks {
		if tr.Muted {
			continue
		}
		for _, sh := range tr.Shots {
			if sh.Contains(frame) {
				out = append(out, sh)
			}
		}
	}
	return out
}

// Span is an inclusive frame range.
type Span struct {
	From int
	To   int
}

// AssetSpans returns the merged frame ranges whose rendered pixels
// depend on the named asset. Hidden layers and muted tracks do not
// affect pixels, so they contribute no span. Used to map an asset
// change to the cache ranges that must be invalidated.
func (s *Sequence) AssetSpans(asset string) []Span {
	var spans []Span
	for _, tr := range s.Tracks {
		if tr.Muted {
			continue
		}
		for _, sh := range tr.Shots {
			if sh.Duration <= 0 {
				continue
			}
			for _, ly := range sh.Layers {
				if ly.Hidden || ly.Asset != asset {
					continue
				}
				spans = append(spans, Span{From: sh.Start, To: sh.End() - 1})
				break
			}
		}
	}
	return mergeSpans(spans)
}

// mergeSpans sorts and coalesces overlapping or adjacent ranges.
func mergeSpans(spans []Span) []Span {
	if len(spans) <= 1 {
		return spans
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].From < spans[j].From })

	out := spans[:1]
	for _, sp := range spans[1:] {
		last := &out[len(out)-1]
		if sp.From <= last.To+1 {
			if sp.To > last.To {
				last.To = sp.To
			}
			continue
		}
		out = append(out, sp)
	}
	return out
}

// Normalize clamps out-of-range layer values in place: opacity to 0..1,
// non-positive scale to 1, negative shot starts and durations to 0.
func (s *Sequence) Normalize() {
	if s.FPS <= 0 {
		s.FPS = 24
	}
	for ti := range s.Tracks {
		for si := range s.Tracks[ti].Shots {
			sh := &s.Tracks[ti].Shots[si]
			if sh.Start < 0 {
				sh.Start = 0
			}
			if sh.Duration < 0 {
				sh.Duration = 0
			}
			for li := range sh.Layers {
				ly := &sh.Layers[li]
				if ly.Opacity < 0 {
					ly.Opacity = 0
				}
				if ly.Opacity > 1 {
					ly.Opacity = 1
				}
				if ly.Scale <= 0 {
					ly.Scale = 1
				}
			}
		}
	}
}
