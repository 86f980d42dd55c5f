package render

import (
	"container/list"
	"time"
)

// entry is one cached frame render. Entries are immutable once stored;
// a quality upgrade replaces the entry wholesale.
type entry[T any] struct {
	frame      int
	value      T
	quality    Quality
	renderTime time.Duration
}

// store is a bounded frame cache with LRU eviction, a hash map into a
// doubly-linked recency list for O(1) get/set/evict. It is not safe for
// concurrent use; the engine serializes access under its own mutex.
type store[T any] struct {
	maxSize int
	items   map[int]*list.Element
	order   *list.List // front = most recently used
}

func newStore[T any](maxSize int) *store[T] {
	return &store[T]{
		maxSize: maxSize,
		items:   make(map[int]*list.Element),
		order:   list.New(),
	}
}

// get returns the entry for frame and marks it most recently used.
func (s *store[T]) get(frame int) (entry[T], bool) {
	el, ok := s.items[frame]
	if !ok {
		return entry[T]{}, false
	}
	s.order.MoveToFront(el)
	return el.Value.(entry[T]), true
}

// peek returns the entry for frame without updating recency. Used by
// the preloader so speculative scans do not distort eviction order.
func (s *store[T]) peek(frame int) (entry[T], bool) {
	el, ok := s.items[frame]
	if !ok {
		return entry[T]{}, false
	}
	return el.Value.(entry[T]), true
}

// set stores an entry, replacing any existing entry for the same frame,
// then evicts from the cold end until the store is back under capacity.
// Eviction is synchronous with insertion, so the size bound holds when
// set returns no matter the insertion order.
func (s *store[T]) set(e entry[T]) {
	if s.maxSize <= 0 {
		return
	}
	if el, ok := s.items[e.frame]; ok {
		el.Value = e
		s.order.MoveToFront(el)
		return
	}
	s.items[e.frame] = s.order.PushFront(e)
	for len(s.items) > s.maxSize {
		s.evictOldest()
	}
}

// evictOldest drops the least recently used entry.
func (s *store[T]) evictOldest() {
	el := s.order.Back()
	if el == nil {
		return
	}
	e := s.order.Remove(el).(entry[T])
	delete(s.items, e.frame)
}

// delete removes the entry for frame if present.
func (s *store[T]) delete(frame int) bool {
	el, ok := s.items[frame]
	if !ok {
		return false
	}
	s.order.Remove(el)
	delete(s.items, frame)
	return true
}

// deleteRange removes every entry with frame in [from, to] inclusive
// and returns the number removed.
func (s *store[T]) deleteRange(from, to int) int {
	if from > to {
		from, to = to, from
	}
	removed := 0
	for frame := range s.items {
		if frame >= from && frame <= to {
			s.delete(frame)
			removed++
		}
	}
	return removed
}

// clear drops every entry.
func (s *store[T]) clear() {
	s.items = make(map[int]*list.Element)
	s.order.Init()
}

// len returns the resident entry count.
func (s *store[T]) len() int {
	return len(s.items)
}

// frames returns resident frame numbers ordered most to least recent.
func (s *store[T]) frames() []int {
	out := make([]int, 0, len(s.items))
	for el := s.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(entry[T]).frame)
	}
	return out
}

// avgRenderTime returns the mean render duration across resident
// entries. Evicted entries drop out of the average.
func (s *store[T]) avgRenderTime() time.Duration {
	if len(s.items) == 0 {
		return 0
	}
	var total time.Duration
	for el := s.order.Front(); el != nil; el = el.Next() {
		total += el.Value.(entry[T]).renderTime
	}
	return total / time.Duration(len(s.items))
}
