// Package fdmonitor provides file descriptor monitoring utilities.
// Asset files, the project database, the watcher, and the log file all
// hold descriptors; a leak in the render path shows up here before it
// becomes an open-files error.
package fdmonitor

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

const (
	// DefaultWarningThreshold is the FD count that triggers a warning.
	DefaultWarningThreshold = 200
	// DefaultCriticalThreshold is the FD count that triggers a critical warning.
	DefaultCriticalThreshold = 500
	// MinCheckInterval prevents checking too frequently.
	MinCheckInterval = 10 * time.Second
)

var (
	lastCheck         time.Time
	lastCount         int
	lastCheckMu       sync.Mutex
	warningThreshold  = DefaultWarningThreshold
	criticalThreshold = DefaultCriticalThreshold
)

// SetThresholds configures the warning and critical thresholds.
func SetThresholds(warning, critical int) {
	warningThreshold = warning
	criticalThreshold = critical
}

// Count returns the current number of open file descriptors for this
// process. On platforms other than Linux and macOS it returns -1.
func Count() int {
	if runtime.GOOS != "darwin" && runtime.GOOS != "linux" {
		return -1
	}

	entries, err := os.ReadDir(fdDir())
	if err != nil {
		return -1
	}
	return len(entries)
}

func fdDir() string {
	if runtime.GOOS == "darwin" {
		// On macOS, /dev/fd shows the current process's FDs.
		return "/dev/fd"
	}
	return fmt.Sprintf("/proc/%d/fd", os.Getpid())
}

// Check checks the current FD count and logs a warning if it exceeds
// thresholds. To avoid log spam, checks are rate-limited to
// MinCheckInterval. Returns the current FD count and whether a warning
// was logged.
func Check(logger *slog.Logger) (count int, warned bool) {
	lastCheckMu.Lock()
	defer lastCheckMu.Unlock()

	if time.Since(lastCheck) < MinCheckInterval {
		return lastCount, false
	}

	count = Count()
	if count < 0 {
		return count, false
	}

	lastCheck = time.Now()
	lastCount = count

	if count >= criticalThreshold {
		if logger != nil {
			logger.Warn("critical FD count", "count", count, "threshold", criticalThreshold)
		}
		return count, true
	}
	if count >= warningThreshold {
		if logger != nil {
			logger.Warn("high FD count", "count", count, "threshold", warningThreshold)
		}
		return count, true
	}

	return count, false
}

// DebugInfo returns open descriptors grouped by what they point at.
// On platforms other than Linux and macOS it returns an empty map.
func DebugInfo() map[string]int {
	info := make(map[string]int)

	if runtime.GOOS != "darwin" && runtime.GOOS != "linux" {
		return info
	}

	dir := fdDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return info
	}

	for _, e := range entries {
		target, err := os.Readlink(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}

		var category string
		switch {
		case target == "pipe" || target == "anon_inode:[pipe]":
			category = "pipe"
		case target == "socket" || len(target) > 0 && target[0] == '[':
			category = "socket"
		case isImageExt(filepath.Ext(target)):
			category = "image"
		case filepath.Ext(target) == ".sqlite" || filepath.Ext(target) == ".db":
			category = "database"
		case filepath.Ext(target) == ".log":
			category = "log"
		case isDirectory(target):
			category = "directory"
		default:
			category = "file"
		}
		info[category]++
	}

	return info
}

func isImageExt(ext string) bool {
	return ext == ".png" || ext == ".jpg" || ext == ".jpeg"
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
