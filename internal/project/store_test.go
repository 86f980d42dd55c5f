package project

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/wilbur182/cutroom/internal/timeline"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "project.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// A saved sequence loads back identical, layers and all.
func TestStore_SaveLoadRoundtrip(t *testing.T) {
	s := openTestStore(t)

	want := Demo()
	if err := s.SaveSequence(want); err != nil {
		t.Fatalf("SaveSequence: %v", err)
	}

	got, err := s.LoadSequence()
	if err != nil {
		t.Fatalf("LoadSequence: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("loaded sequence differs:\n got %+v\nwant %+v", got, want)
	}
}

// A fresh project file has no sequence yet.
func TestStore_LoadEmptyProject(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.LoadSequence(); !errors.Is(err, ErrNoSequence) {
		t.Errorf("LoadSequence on empty store: err = %v, want ErrNoSequence", err)
	}
}

// Saving again replaces the previous sequence instead of accumulating.
func TestStore_SaveReplacesPrevious(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveSequence(Demo()); err != nil {
		t.Fatalf("first SaveSequence: %v", err)
	}

	next := &timeline.Sequence{
		Name: "recut", FPS: 30, Width: 160, Height: 90,
		Tracks: []timeline.Track{
			{Name: "bg", Shots: []timeline.Shot{
				{Name: "only", Start: 0, Duration: 12, Layers: []timeline.Layer{
					{Asset: "bars", Opacity: 1, Scale: 1},
				}},
			}},
		},
	}
	if err := s.SaveSequence(next); err != nil {
		t.Fatalf("second SaveSequence: %v", err)
	}

	got, err := s.LoadSequence()
	if err != nil {
		t.Fatalf("LoadSequence: %v", err)
	}
	if got.Name != "recut" {
		t.Errorf("Name = %q, want %q", got.Name, "recut")
	}
	if len(got.Tracks) != 1 || len(got.Tracks[0].Shots) != 1 {
		t.Errorf("loaded %d tracks, want the single replacement track", len(got.Tracks))
	}
}

// Data survives closing and reopening the same file.
func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	want := Demo()
	if err := s.SaveSequence(want); err != nil {
		t.Fatalf("SaveSequence: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.LoadSequence()
	if err != nil {
		t.Fatalf("LoadSequence after reopen: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sequence changed across reopen:\n got %+v\nwant %+v", got, want)
	}
}

// An empty path is rejected up front.
func TestStore_OpenEmptyPath(t *testing.T) {
	if _, err := Open("   "); err == nil {
		t.Error("Open with blank path succeeded, want error")
	}
}

// Close tolerates nil receivers so shutdown paths can be unconditional.
func TestStore_CloseNil(t *testing.T) {
	var s *Store
	if err := s.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

// The demo sequence is internally consistent: normalized, non-empty,
// and every asset is procedural so it renders with no files on disk.
func TestDemo_Shape(t *testing.T) {
	seq := Demo()

	if seq.TotalFrames() != 240 {
		t.Errorf("TotalFrames = %d, want 240", seq.TotalFrames())
	}
	if seq.FPS != 24 {
		t.Errorf("FPS = %d, want 24", seq.FPS)
	}
	if len(seq.Tracks) == 0 {
		t.Fatal("demo has no tracks")
	}
	for _, tr := range seq.Tracks {
		for _, sh := range tr.Shots {
			if sh.Duration <= 0 {
				t.Errorf("shot %s has duration %d", sh.Name, sh.Duration)
			}
			if len(sh.Layers) == 0 {
				t.Errorf("shot %s has no layers", sh.Name)
			}
		}
	}
}
