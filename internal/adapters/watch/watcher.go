// Package watch reports when documents inside a vault change.
//
// Watcher subscribes to every non-hidden directory below the root and
// coalesces bursts of events into a single notification per debounce
// window. It carries no file state: consumers react by running a fresh scan.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"vaultstats/internal/adapters/filesystem"
)

// DefaultDebounce is the quiet period before a change is reported
const DefaultDebounce = 500 * time.Millisecond

// Options configures a Watcher
type Options struct {
	// Debounce coalesces events closer together than this. Zero means DefaultDebounce.
	Debounce time.Duration

	// Match selects the file names that count as documents. Nil matches every file.
	Match func(name string) bool

	// Logger receives watch errors. Nil discards them.
	Logger *slog.Logger
}

// Watcher emits on Changes whenever a matching document is created,
// written, removed or renamed
type Watcher struct {
	fs       *fsnotify.Watcher
	root     string
	debounce time.Duration
	match    func(string) bool
	logger   *slog.Logger

	changes chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a Watcher on root and subscribes to its directory tree
func New(root string, opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fs:       fsw,
		root:     root,
		debounce: opts.Debounce,
		match:    opts.Match,
		logger:   opts.Logger,
		changes:  make(chan struct{}, 1),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.logger == nil {
		w.logger = slog.New(slog.DiscardHandler)
	}

	if err := w.addRecursive(root); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", root, err)
	}
	return w, nil
}

// Changes delivers one value per debounced burst. Pending notifications
// collapse, so a slow reader sees at most one.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run processes events until ctx is done, then closes the watcher
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}

	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, filesystem.HiddenPrefix) {
		return
	}

	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Lstat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			w.schedule()
			return
		}
	}

	// A removed directory cannot be told apart from a removed file
	if w.match != nil && !w.match(name) && !event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}

	w.logger.Debug("vault changed", "path", event.Name, "op", event.Op.String())
	w.schedule()
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.notify)
}

func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	_ = w.fs.Close()
}

// addRecursive subscribes to dir and every non-hidden directory below it
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			w.logger.Warn("skipping unreadable directory", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && strings.HasPrefix(d.Name(), filesystem.HiddenPrefix) {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
}
