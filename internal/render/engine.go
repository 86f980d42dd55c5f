// Package render is the frame cache engine that sits between the
// timeline UI and the compositor. It keeps a bounded LRU store of
// rendered frames, coordinates cancellation and timeouts for in-flight
// renders, coalesces scrub bursts, and preloads the neighborhood
// around the playhead.
package render

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RenderFunc produces the payload for a single frame at the requested
// quality. When ctx is cancelled the render has been superseded, timed
// out, or the engine is shutting down; the result will be discarded, so
// implementations should abort promptly. The function must not retain
// ctx after returning.
type RenderFunc[T any] func(ctx context.Context, frame int, quality Quality) (T, error)

// Options configures an Engine. Construct from DefaultOptions or from
// config; fields are immutable once the engine is created.
type Options struct {
	// CacheRadius is the half-width of the preload window around a
	// focus frame.
	CacheRadius int
	// MaxCacheSize caps the number of resident cache entries.
	MaxCacheSize int
	// LowQualityScale is the resolution factor render functions apply
	// to low-quality output. The engine stores it for its callers but
	// never interprets it.
	LowQualityScale float64
	// DebounceDelay is the quiet period before a DebouncedUpdate fires.
	DebounceDelay time.Duration
	// RenderTimeout bounds a single render call. The deadline fires the
	// same cancellation the render function observes.
	RenderTimeout time.Duration
}

// DefaultOptions returns the tuning used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		CacheRadius:     30,
		MaxCacheSize:    120,
		LowQualityScale: 0.25,
		DebounceDelay:   150 * time.Millisecond,
		RenderTimeout:   5 * time.Second,
	}
}

// withDefaults replaces unusable values with defaults.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.CacheRadius < 0 {
		o.CacheRadius = 0
	}
	if o.MaxCacheSize <= 0 {
		o.MaxCacheSize = d.MaxCacheSize
	}
	if o.LowQualityScale <= 0 || o.LowQualityScale > 1 {
		o.LowQualityScale = d.LowQualityScale
	}
	if o.DebounceDelay <= 0 {
		o.DebounceDelay = d.DebounceDelay
	}
	if o.RenderTimeout <= 0 {
		o.RenderTimeout = d.RenderTimeout
	}
	return o
}

// pendingRender tracks one in-flight render. Identity of the record,
// not the frame number, decides whether a finished render may commit:
// a newer request for the same frame installs a new record and cancels
// this one.
type pendingRender struct {
	cancel context.CancelFunc
}

// Engine is the frame cache engine. It is safe for concurrent use; the
// store and the pending-render table are guarded by a single mutex and
// never exposed for external mutation.
type Engine[T any] struct {
	opts Options
	log  *slog.Logger

	mu      sync.Mutex
	store   *store[T]
	pending map[int]*pendingRender
	closed  bool

	debounceTimer *time.Timer
	debounceNext  *debounceRequest[T]

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates an engine with the given options. A nil logger disables
// logging.
func New[T any](opts Options, log *slog.Logger) *Engine[T] {
	opts = opts.withDefaults()
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine[T]{
		opts:    opts,
		log:     log,
		store:   newStore[T](opts.MaxCacheSize),
		pending: make(map[int]*pendingRender),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Options returns the engine's configuration.
func (e *Engine[T]) Options() Options {
	return e.opts
}

// GetFrame returns the cached payload for frame, rendering it first if
// it is absent or cached below the requested quality. It blocks until
// the render settles. Render failure, timeout, and supersession by a
// newer request for the same frame all collapse to (zero, false); no
// error escapes, so a scrub burst can never take down the caller's
// update loop.
func (e *Engine[T]) GetFrame(frame int, quality Quality, fn RenderFunc[T]) (T, bool) {
	var zero T

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return zero, false
	}
	if ent, ok := e.store.get(frame); ok && ent.quality.Satisfies(quality) {
		e.mu.Unlock()
		return ent.value, true
	}

	// Miss, or a hit below the requested tier. Either way a render must
	// run, and a new request always supersedes one already in flight
	// for this frame: cancel it and take over the pending slot.
	if prev, ok := e.pending[frame]; ok {
		prev.cancel()
	}
	ctx, cancel := context.WithTimeout(e.ctx, e.opts.RenderTimeout)
	p := &pendingRender{cancel: cancel}
	e.pending[frame] = p
	e.mu.Unlock()

	defer cancel()

	type result struct {
		value T
		err   error
	}
	resCh := make(chan result, 1)
	start := time.Now()
	go func() {
		v, err := fn(ctx, frame, quality)
		resCh <- result{value: v, err: err}
	}()

	var res result
	select {
	case res = <-resCh:
	case <-ctx.Done():
		// Timeout, supersession, or engine shutdown. The render keeps
		// running until it observes ctx; its result lands in the
		// buffered channel and is dropped.
		res.err = ctx.Err()
	}
	elapsed := time.Since(start)

	e.mu.Lock()
	defer e.mu.Unlock()

	current := e.pending[frame] == p
	if current {
		delete(e.pending, frame)
	}

	switch {
	case !current:
		// A newer request owns the frame now; only its result may be
		// committed.
		e.log.Debug("render superseded", "frame", frame, "quality", quality.String())
		return zero, false
	case res.err != nil:
		e.log.Debug("render failed", "frame", frame, "quality", quality.String(), "elapsed", elapsed, "err", res.err)
		return zero, false
	}

	e.store.set(entry[T]{frame: frame, value: res.value, quality: quality, renderTime: elapsed})
	return res.value, true
}

// Close cancels every pending render, stops the debounce timer, and
// empties the store. Safe to call more than once; the engine is
// unusable afterwards.
func (e *Engine[T]) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	e.cancel()

	if e.debounceTimer != nil {
		e.debounceTimer.Stop()
		e.debounceTimer = nil
	}
	e.debounceNext = nil
	e.pending = make(map[int]*pendingRender)
	e.store.clear()
}
