package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc reloads one configuration file
type ReloadFunc func() error

// Watcher reloads configuration files when they change on disk.
// Editors often write a file several times per save, so reloads are debounced.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]ReloadFunc // cleaned path -> reload
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
	done    chan struct{}
}

// NewWatcher creates a watcher for the given files. Parent directories are
// watched so that files created after startup are picked up too.
func NewWatcher(files map[string]ReloadFunc, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		files:    make(map[string]ReloadFunc, len(files)),
		debounce: debounce,
		pending:  make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for path, fn := range files {
		clean := filepath.Clean(path)
		w.files[clean] = fn
		dirs[filepath.Dir(clean)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			slog.Debug("config dir not watchable", "dir", dir, "error", err)
		}
	}

	return w, nil
}

// Run processes file events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			w.stopTimers()
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule(filepath.Clean(ev.Name))
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) schedule(path string) {
	fn, ok := w.files[path]
	if !ok {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		if err := fn(); err != nil {
			slog.Error("config reload failed", "path", path, "error", err)
			return
		}
		slog.Debug("config reloaded", "path", path)
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

// Close stops the underlying fsnotify watcher. Run returns once its
// channels close.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Done is closed when Run returns
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}
