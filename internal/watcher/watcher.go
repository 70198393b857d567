// Package watcher monitors the documents directory for new and changed
// files and delivers debounced per-file notifications.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/chays/careerscan/internal/config"
)

// Handler receives the path of a file that settled after the debounce
// interval. It is called from the watcher's event goroutine; long work
// should be handed off.
type Handler func(path string)

// Watcher wraps fsnotify with per-path debouncing. Editors and sync tools
// emit bursts of writes for a single save; the debounce timer collapses a
// burst into one notification after the file goes quiet.
type Watcher struct {
	fsw      *fsnotify.Watcher
	root     string
	debounce time.Duration
	handler  Handler

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a watcher over root. Subdirectories present at start are
// watched recursively; directories created later are added as they appear.
func New(root string, debounce time.Duration, handler Handler) (*Watcher, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create watch directory %s: %w", root, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("cannot create file watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		root:     root,
		debounce: debounce,
		handler:  handler,
		timers:   make(map[string]*time.Timer),
	}

	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run processes events until ctx is cancelled or the watcher closes.
func (w *Watcher) Run(ctx context.Context) error {
	logrus.WithField("path", w.root).Info("watching documents directory")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logrus.WithError(err).Warn("file watcher error")
		}
	}
}

// Close stops the watcher and cancels pending debounce timers.
func (w *Watcher) Close() error {
	w.mu.Lock()
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				logrus.WithError(err).WithField("path", event.Name).Warn("cannot watch new directory")
			}
			return
		}
	}

	ext := strings.ToLower(filepath.Ext(event.Name))
	if !config.IsSupportedExtension(ext) {
		return
	}

	logrus.WithFields(logrus.Fields{"path": event.Name, "op": event.Op.String()}).Debug("file event")
	w.scheduleNotify(event.Name)
}

// scheduleNotify resets the per-path timer so the handler fires only after
// the file has been quiet for the full debounce interval.
func (w *Watcher) scheduleNotify(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, exists := w.timers[path]; exists {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		// The file may have been removed between the event and the timer.
		if _, err := os.Stat(path); err != nil {
			logrus.WithField("path", path).Debug("file gone before processing")
			return
		}
		w.handler(path)
	})
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.fsw.Add(path); err != nil {
				return fmt.Errorf("cannot watch %s: %w", path, err)
			}
		}
		return nil
	})
}
