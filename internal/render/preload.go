package render

// PreloadFrames warms the cache around center without blocking the
// caller. A background goroutine walks the inclusive window
// [max(0, center-CacheRadius), center+CacheRadius] in order, rendering
// each frame not already cached at the requested quality or better.
// Preload renders share the pending-render bookkeeping with direct
// requests, so a playback-driven GetFrame for a frame currently being
// preloaded supersedes the preload's render.
func (e *Engine[T]) PreloadFrames(center int, quality Quality, fn RenderFunc[T]) {
	go e.preload(center, quality, fn)
}

func (e *Engine[T]) preload(center int, quality Quality, fn RenderFunc[T]) {
	from := center - e.opts.CacheRadius
	if from < 0 {
		from = 0
	}
	to := center + e.opts.CacheRadius

	for frame := from; frame <= to; frame++ {
		if e.ctx.Err() != nil {
			return
		}

		e.mu.Lock()
		if e.closed {
			e.mu.Unlock()
			return
		}
		// Non-touching check: a speculative scan must not refresh the
		// recency of frames it happens to pass over.
		ent, ok := e.store.peek(frame)
		_, inFlight := e.pending[frame]
		e.mu.Unlock()
		if ok && ent.quality.Satisfies(quality) {
			continue
		}
		// A frame already rendering is left alone. Supersession runs one
		// way: direct requests replace preloads, never the reverse.
		if inFlight {
			continue
		}

		// Sequential on purpose: one render at a time keeps preloading
		// from saturating the compositor while the user is active.
		e.GetFrame(frame, quality, fn)
	}
}
