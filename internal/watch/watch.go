// Package watch re-runs extraction when models appear in a directory.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Handler processes one changed model file.
type Handler func(path string) error

// Watcher debounces file events per path and hands settled paths to a Handler.
// The handler runs on the Run goroutine, one path at a time.
type Watcher struct {
	dir      string
	debounce time.Duration
	handler  Handler
	log      *zap.Logger

	fs    *fsnotify.Watcher
	ready chan string
	done  chan struct{}

	mu      sync.Mutex
	pending map[string]*time.Timer
	closed  bool
}

// New starts watching dir. Close it, or let Run return, to release the watch.
func New(dir string, debounce time.Duration, handler Handler, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		handler:  handler,
		log:      log,
		fs:       fs,
		ready:    make(chan string, 16),
		done:     make(chan struct{}),
		pending:  make(map[string]*time.Timer),
	}, nil
}

// Run dispatches events until ctx is cancelled or the watcher fails.
// Handler errors are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()
	w.log.Info("watching for models", zap.String("dir", w.dir), zap.Duration("debounce", w.debounce))

	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 && isModel(e.Name) {
				w.schedule(e.Name)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", w.dir, err)

		case path := <-w.ready:
			w.log.Debug("model settled", zap.String("path", path))
			if err := w.handler(path); err != nil {
				w.log.Error("extraction failed", zap.String("path", path), zap.Error(err))
			}
		}
	}
}

// Close stops the underlying watch and any pending timers. Timers that
// already fired give up their path instead of waiting for Run.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()
	return w.fs.Close()
}

// schedule restarts the path's debounce timer.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		select {
		case w.ready <- path:
		case <-w.done:
		}
	})
}

func isModel(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mdl")
}
