package render

import "time"

// Stats is a point-in-time snapshot of cache occupancy and timing.
type Stats struct {
	// Size is the number of resident entries.
	Size int
	// MaxSize is the configured entry cap.
	MaxSize int
	// AvgRenderTime is the mean render duration across resident
	// entries. Timings of evicted entries are dropped, not carried.
	AvgRenderTime time.Duration
}

// Stats returns current cache statistics. AvgRenderTime is recomputed
// on demand from what is resident right now.
func (e *Engine[T]) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stats{
		Size:          e.store.len(),
		MaxSize:       e.store.maxSize,
		AvgRenderTime: e.store.avgRenderTime(),
	}
}

// CachedFrames returns the resident frame numbers ordered most to
// least recently used.
func (e *Engine[T]) CachedFrames() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.frames()
}

// Cached reports whether a frame is resident and at what quality,
// without touching its recency. Display code polls this; it must not
// perturb eviction order.
func (e *Engine[T]) Cached(frame int) (Quality, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ent, ok := e.store.peek(frame)
	if !ok {
		return QualityLow, false
	}
	return ent.quality, true
}

// Clear empties the store and cancels every pending render; superseded
// callers observe a miss.
func (e *Engine[T]) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	for _, p := range e.pending {
		p.cancel()
	}
	e.pending = make(map[int]*pendingRender)
	e.store.clear()
}

// InvalidateAll drops every cached entry. Pending renders are cancelled
// too: the shot data they were rendering from is presumed changed, so
// their output is stale before it lands.
func (e *Engine[T]) InvalidateAll() {
	e.Clear()
}

// InvalidateRange drops cached entries with frame in [from, to]
// inclusive and cancels pending renders inside the range, for the same
// staleness reason as InvalidateAll. Renders for frames outside the
// range are untouched.
func (e *Engine[T]) InvalidateRange(from, to int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	if from > to {
		from, to = to, from
	}
	e.store.deleteRange(from, to)
	for frame, p := range e.pending {
		if frame >= from && frame <= to {
			p.cancel()
			delete(e.pending, frame)
		}
	}
}
