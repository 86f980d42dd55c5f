package assets

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher monitors the asset directory and reports which assets
// changed. Rapid bursts of writes are debounced into one batch so a
// large export touching many files triggers one invalidation sweep.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	rootDir   string
	log       *slog.Logger

	events   chan []string
	stop     chan struct{}
	stopOnce sync.Once

	mu       sync.Mutex
	pending  map[string]struct{}
	debounce *time.Timer
	closed   bool
}

// NewWatcher watches rootDir and its subdirectories.
func NewWatcher(rootDir string, log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsw,
		rootDir:   rootDir,
		log:       log,
		events:    make(chan []string, 8),
		stop:      make(chan struct{}),
		pending:   make(map[string]struct{}),
	}

	// fsnotify doesn't watch subdirs automatically
	if err := w.addRecursive(rootDir); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.run()
	return w, nil
}

// Events returns debounced batches of changed asset names, relative to
// the library root with forward slashes. The channel closes when the
// watcher stops.
func (w *Watcher) Events() <-chan []string {
	return w.events
}

// Stop shuts down the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		w.fsWatcher.Close()
	})
}

// addRecursive adds a directory and all its subdirectories.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil // Skip unreadable subdirectories
		}
		if !d.IsDir() {
			return nil
		}
		// Skip hidden directories (except root)
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(path)
	})
}

// run processes file system events until stopped.
func (w *Watcher) run() {
	defer func() {
		w.mu.Lock()
		w.closed = true
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.mu.Unlock()
		close(w.events)
	}()

	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			// Watch newly created directories (recursively in case of mkdir -p)
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(event.Name)
					continue
				}
			}

			if name, ok := w.assetName(event.Name); ok {
				w.enqueue(name)
			}
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Keep watching through transient errors
		}
	}
}

// assetName converts an absolute event path to a library-relative asset
// name. Hidden files and paths outside the root are dropped.
func (w *Watcher) assetName(path string) (string, bool) {
	rel, err := filepath.Rel(w.rootDir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	if strings.HasPrefix(filepath.Base(rel), ".") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (w *Watcher) enqueue(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.pending[name] = struct{}{}

	// Debounce: wait for the burst to finish before signaling
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(watchDebounce, w.flush)
}

// flush delivers the pending batch. If the consumer is behind, the
// batch is kept and retried so invalidations are not lost.
func (w *Watcher) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || len(w.pending) == 0 {
		return
	}

	batch := make([]string, 0, len(w.pending))
	for name := range w.pending {
		batch = append(batch, name)
	}
	sort.Strings(batch)

	select {
	case w.events <- batch:
		w.pending = make(map[string]struct{})
	default:
		w.log.Debug("asset event channel full, retrying", "pending", len(batch))
		w.debounce = time.AfterFunc(watchDebounce, w.flush)
	}
}
