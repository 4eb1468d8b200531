// Package watcher reloads tree data when its files change on disk.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/canopy/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultDebounceWindow is the default time window for debouncing file events.
const DefaultDebounceWindow = 100 * time.Millisecond

// Watcher reports changes to a set of files and directories.
// Files are watched through their parent directory so that editors replacing
// the file by rename are noticed.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	debouncer *Debouncer
	files     map[string]bool
	dirs      []string
}

// New creates a Watcher that calls onChange with the changed paths once events
// have settled for window.
func New(logger ports.Logger, window time.Duration, onChange func(paths []string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create file watcher")
	}
	return &Watcher{
		fsWatcher: fsw,
		logger:    logger,
		debouncer: NewDebouncer(window, onChange),
		files:     make(map[string]bool),
	}, nil
}

// Add watches a file or a directory. Directories are watched non-recursively.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve watch path"), "path", path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat watch path"), "path", path)
	}

	target := abs
	if info.IsDir() {
		w.dirs = append(w.dirs, abs)
	} else {
		w.files[abs] = true
		target = filepath.Dir(abs)
	}

	if err := w.fsWatcher.Add(target); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to watch path"), "path", target)
	}
	return nil
}

// Run processes file system events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod || !w.relevant(event.Name) {
				continue
			}
			w.logger.Debug("data changed", "path", event.Name, "op", event.Op.String())
			w.debouncer.Add(event.Name)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

// Close stops watching and flushes pending changes.
func (w *Watcher) Close() error {
	err := w.fsWatcher.Close()
	w.debouncer.Flush()
	return err
}

func (w *Watcher) relevant(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	if w.files[abs] {
		return true
	}
	for _, dir := range w.dirs {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
