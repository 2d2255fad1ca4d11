// Package watch re-runs an action when snapshot files in a directory change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/flagscan/internal/ports"
)

// DefaultDebounce is how long the watcher waits after the last matching
// event before re-running. Dumps are written in several chunks.
const DefaultDebounce = 250 * time.Millisecond

// Action is the work re-run on change.
type Action func(ctx context.Context) error

// Matcher reports whether a base file name is a snapshot.
type Matcher func(name string) bool

// Watcher monitors a directory via fsnotify and runs an Action once at
// startup and again after matching files are created or written.
type Watcher struct {
	dir    string
	match  Matcher
	action Action
	logger ports.Logger
	delay  time.Duration

	mu       sync.Mutex
	debounce *time.Timer
	// counts scheduled and running debounced runs
	pending sync.WaitGroup

	// serializes action runs
	runMu sync.Mutex
}

// New creates a Watcher. A delay of 0 uses DefaultDebounce.
func New(dir string, match Matcher, action Action, logger ports.Logger, delay time.Duration) *Watcher {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Watcher{
		dir:    dir,
		match:  match,
		action: action,
		logger: logger,
		delay:  delay,
	}
}

// Run watches until ctx is canceled. Action failures are logged and do not
// stop the watcher. It returns an error only if the watch cannot be set up.
// A run already in progress when ctx is canceled finishes before Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	defer w.drain()

	w.logger.Info("watching snapshot directory", ports.String("dir", w.dir))
	w.trigger(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name := filepath.Base(event.Name)
			if !w.match(name) {
				continue
			}
			w.logger.Debug("snapshot changed", ports.String("file", name), ports.String("op", event.Op.String()))
			w.debounceRun(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", ports.Err(err))
		}
	}
}

func (w *Watcher) debounceRun(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil && w.debounce.Stop() {
		w.pending.Done()
	}

	w.pending.Add(1)
	w.debounce = time.AfterFunc(w.delay, func() {
		defer w.pending.Done()
		w.trigger(ctx)
	})
}

// drain cancels a scheduled run and waits for one already started.
func (w *Watcher) drain() {
	w.mu.Lock()
	if w.debounce != nil && w.debounce.Stop() {
		w.pending.Done()
	}
	w.debounce = nil
	w.mu.Unlock()

	w.pending.Wait()
}

func (w *Watcher) trigger(ctx context.Context) {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	if ctx.Err() != nil {
		return
	}

	if err := w.action(ctx); err != nil {
		w.logger.Warn("run failed, waiting for snapshot changes", ports.Err(err))
	}
}
