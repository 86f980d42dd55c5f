package render

import "time"

// debounceRequest holds the most recent debounced request. Earlier
// requests in the same burst are discarded without rendering.
type debounceRequest[T any] struct {
	frame   int
	quality Quality
	fn      RenderFunc[T]
	cb      func(T, bool)
}

// DebouncedUpdate schedules a render of frame after DebounceDelay of
// quiescence. Each call resets the single shared timer and replaces the
// recorded request, so any burst of calls inside the window collapses
// into exactly one GetFrame, for the last frame requested. cb receives
// the outcome on an internal goroutine; it may be nil.
func (e *Engine[T]) DebouncedUpdate(frame int, quality Quality, fn RenderFunc[T], cb func(T, bool)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	e.debounceNext = &debounceRequest[T]{frame: frame, quality: quality, fn: fn, cb: cb}

	// Reset timer - we wait for a quiet period
	if e.debounceTimer != nil {
		e.debounceTimer.Stop()
	}
	e.debounceTimer = time.AfterFunc(e.opts.DebounceDelay, e.flushDebounce)
}

// flushDebounce runs when the debounce window closes. It issues one
// GetFrame for the surviving request.
func (e *Engine[T]) flushDebounce() {
	e.mu.Lock()
	req := e.debounceNext
	e.debounceNext = nil
	e.debounceTimer = nil
	closed := e.closed
	e.mu.Unlock()

	if closed || req == nil {
		return
	}

	value, ok := e.GetFrame(req.frame, req.quality, req.fn)
	if req.cb != nil {
		req.cb(value, ok)
	}
}
