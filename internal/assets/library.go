// Package assets resolves asset names to decoded images. File assets
// live under a library directory; procedural assets (gradients, bars,
// noise, grids) are generated on demand so demo projects render with
// no files on disk. Decoded images sit in a bounded LRU because a
// scrub across many shots keeps hitting the same few sources.
package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/wilbur182/cutroom/internal/fdmonitor"
)

const defaultCacheSize = 64

// Library loads and caches asset images. Safe for concurrent use.
type Library struct {
	dir string
	log *slog.Logger

	images *lru.Cache[string, image.Image]

	mu     sync.Mutex
	prints map[string]uint64 // xxhash of last loaded content per asset
}

// NewLibrary creates a library rooted at dir. dir may be empty when the
// sequence only uses procedural assets.
func NewLibrary(dir string, cacheSize int, log *slog.Logger) (*Library, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	images, err := lru.New[string, image.Image](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create image cache: %w", err)
	}
	return &Library{
		dir:    dir,
		log:    log,
		images: images,
		prints: make(map[string]uint64),
	}, nil
}

// Dir returns the library root directory.
func (l *Library) Dir() string {
	return l.dir
}

// Get returns the decoded image for an asset name. Procedural names are
// generated; anything else is read from the library directory and
// decoded as PNG or JPEG.
func (l *Library) Get(name string) (image.Image, error) {
	if img, ok := l.images.Get(name); ok {
		return img, nil
	}

	img, print, err := l.load(name)
	if err != nil {
		return nil, err
	}
	l.images.Add(name, img)
	l.mu.Lock()
	l.prints[name] = print
	l.mu.Unlock()
	return img, nil
}

// Fingerprint returns the content hash recorded at last load.
func (l *Library) Fingerprint(name string) (uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	print, ok := l.prints[name]
	return print, ok
}

// Reload re-reads an asset and reports whether its content differs from
// what was last served. Procedural assets never change. A vanished or
// undecodable file counts as changed when it was being served before,
// since frames rendered from it are now stale.
func (l *Library) Reload(name string) (bool, error) {
	if isProcedural(name) {
		return false, nil
	}

	l.mu.Lock()
	old, had := l.prints[name]
	l.mu.Unlock()

	img, print, err := l.load(name)
	if err != nil {
		l.images.Remove(name)
		l.mu.Lock()
		delete(l.prints, name)
		l.mu.Unlock()
		return had, err
	}
	if had && old == print {
		return false, nil
	}

	l.images.Add(name, img)
	l.mu.Lock()
	l.prints[name] = print
	l.mu.Unlock()
	return true, nil
}

// Invalidate drops an asset from the image cache so the next Get
// reloads it from source.
func (l *Library) Invalidate(name string) {
	l.images.Remove(name)
}

func (l *Library) load(name string) (image.Image, uint64, error) {
	if isProcedural(name) {
		img, err := generate(name)
		if err != nil {
			return nil, 0, err
		}
		return img, xxhash.Sum64String(name), nil
	}

	path, err := l.resolve(name)
	if err != nil {
		return nil, 0, err
	}
	fdmonitor.Check(l.log) // rate-limited, warns when descriptors pile up
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read asset %s: %w", name, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("decode asset %s: %w", name, err)
	}
	return img, xxhash.Sum64(data), nil
}

func (l *Library) resolve(name string) (string, error) {
	if l.dir == "" {
		return "", fmt.Errorf("no asset directory configured for %q", name)
	}
	if filepath.IsAbs(name) || strings.Contains(name, "..") {
		return "", fmt.Errorf("asset name %q escapes the library", name)
	}
	return filepath.Join(l.dir, filepath.FromSlash(name)), nil
}
