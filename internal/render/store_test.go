package render

import (
	"sort"
	"testing"
	"time"
)

func TestStore_SizeBoundHolds(t *testing.T) {
	// Inserting past capacity evicts synchronously, one per insert
	s := newStore[string](3)

	for frame := 0; frame < 10; frame++ {
		s.set(entry[string]{frame: frame, value: "v", quality: QualityLow})
		if s.len() > 3 {
			t.Fatalf("store grew to %d entries after inserting frame %d", s.len(), frame)
		}
	}

	if s.len() != 3 {
		t.Errorf("expected 3 resident entries, got %d", s.len())
	}
}

func TestStore_EvictsLeastRecentlyUsed(t *testing.T) {
	// The untouched oldest entry goes first
	s := newStore[string](3)
	s.set(entry[string]{frame: 0, value: "a"})
	s.set(entry[string]{frame: 1, value: "b"})
	s.set(entry[string]{frame: 2, value: "c"})

	s.set(entry[string]{frame: 3, value: "d"})

	if _, ok := s.peek(0); ok {
		t.Error("expected frame 0 to be evicted")
	}
	for _, frame := range []int{1, 2, 3} {
		if _, ok := s.peek(frame); !ok {
			t.Errorf("expected frame %d to survive", frame)
		}
	}
}

func TestStore_GetRefreshesRecency(t *testing.T) {
	// A re-accessed entry outlives untouched older neighbors
	s := newStore[string](2)
	s.set(entry[string]{frame: 0, value: "a"})
	s.set(entry[string]{frame: 1, value: "b"})

	if _, ok := s.get(0); !ok {
		t.Fatal("expected frame 0 to be cached")
	}
	s.set(entry[string]{frame: 2, value: "c"})

	if _, ok := s.peek(0); !ok {
		t.Error("expected re-accessed frame 0 to survive eviction")
	}
	if _, ok := s.peek(1); ok {
		t.Error("expected untouched frame 1 to be evicted")
	}
}

func TestStore_PeekDoesNotRefreshRecency(t *testing.T) {
	// peek must leave eviction order alone
	s := newStore[string](2)
	s.set(entry[string]{frame: 0, value: "a"})
	s.set(entry[string]{frame: 1, value: "b"})

	if _, ok := s.peek(0); !ok {
		t.Fatal("expected frame 0 to be cached")
	}
	s.set(entry[string]{frame: 2, value: "c"})

	if _, ok := s.peek(0); ok {
		t.Error("expected peeked frame 0 to still be evicted first")
	}
}

func TestStore_SetReplacesSameFrame(t *testing.T) {
	// A quality upgrade replaces the entry wholesale, not a second slot
	s := newStore[string](5)
	s.set(entry[string]{frame: 4, value: "rough", quality: QualityLow})
	s.set(entry[string]{frame: 4, value: "crisp", quality: QualityHigh})

	if s.len() != 1 {
		t.Fatalf("expected 1 entry after replacement, got %d", s.len())
	}
	e, ok := s.peek(4)
	if !ok {
		t.Fatal("expected frame 4 to be cached")
	}
	if e.value != "crisp" || e.quality != QualityHigh {
		t.Errorf("expected replaced entry (crisp, high), got (%s, %s)", e.value, e.quality)
	}
}

func TestStore_DeleteRange(t *testing.T) {
	// Inclusive range removal leaves the complement untouched
	s := newStore[string](20)
	for frame := 0; frame < 10; frame++ {
		s.set(entry[string]{frame: frame, value: "v"})
	}

	removed := s.deleteRange(3, 7)

	if removed != 5 {
		t.Errorf("expected 5 removals, got %d", removed)
	}
	want := []int{0, 1, 2, 8, 9}
	got := s.frames()
	sort.Ints(got)
	if len(got) != len(want) {
		t.Fatalf("expected frames %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected frames %v, got %v", want, got)
		}
	}
}

func TestStore_DeleteRangeSwappedBounds(t *testing.T) {
	s := newStore[string](20)
	for frame := 0; frame < 5; frame++ {
		s.set(entry[string]{frame: frame, value: "v"})
	}

	if removed := s.deleteRange(3, 1); removed != 3 {
		t.Errorf("expected swapped bounds to remove 3 entries, got %d", removed)
	}
}

func TestStore_Clear(t *testing.T) {
	s := newStore[string](5)
	s.set(entry[string]{frame: 1, value: "a"})
	s.set(entry[string]{frame: 2, value: "b"})

	s.clear()

	if s.len() != 0 {
		t.Errorf("expected empty store, got %d entries", s.len())
	}
	if frames := s.frames(); len(frames) != 0 {
		t.Errorf("expected no resident frames, got %v", frames)
	}
}

func TestStore_AvgRenderTimeDropsEvicted(t *testing.T) {
	// The average covers resident entries only
	s := newStore[string](2)
	s.set(entry[string]{frame: 0, renderTime: 100 * time.Millisecond})
	s.set(entry[string]{frame: 1, renderTime: 20 * time.Millisecond})

	if avg := s.avgRenderTime(); avg != 60*time.Millisecond {
		t.Errorf("expected 60ms average, got %v", avg)
	}

	// Evicts frame 0, the slow one
	s.set(entry[string]{frame: 2, renderTime: 40 * time.Millisecond})

	if avg := s.avgRenderTime(); avg != 30*time.Millisecond {
		t.Errorf("expected 30ms average after eviction, got %v", avg)
	}
}

func TestStore_AvgRenderTimeEmpty(t *testing.T) {
	s := newStore[string](2)
	if avg := s.avgRenderTime(); avg != 0 {
		t.Errorf("expected zero average for empty store, got %v", avg)
	}
}

func TestStore_FramesOrderedByRecency(t *testing.T) {
	s := newStore[string](5)
	s.set(entry[string]{frame: 0})
	s.set(entry[string]{frame: 1})
	s.set(entry[string]{frame: 2})
	s.get(0)

	got := s.frames()
	want := []int{0, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected recency order %v, got %v", want, got)
		}
	}
}
