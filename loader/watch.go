package loader

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/irgen/errors"
	"github.com/teranos/irgen/logger"
)

// DefaultDebounce coalesces the bursts of events editors and build tools
// produce for a single save.
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc is called after the watched file settles.
type ChangeFunc func(ctx context.Context) error

// Watcher runs a callback when a local IR file changes.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange ChangeFunc
	log      *zap.SugaredLogger

	mu    sync.Mutex
	timer *time.Timer

	// runMu keeps a slow recompile from overlapping the next one.
	runMu sync.Mutex
}

// NewWatcher watches path, calling onChange once per burst of changes.
// The directory is watched rather than the file so that editors which save
// by rename are still seen.
func NewWatcher(path string, debounce time.Duration, onChange ChangeFunc) (*Watcher, error) {
	if IsRemote(path) {
		return nil, errors.WithHint(
			errors.Newf("cannot watch remote source %s", path),
			"watch mode needs a local IR file")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		log:      logger.ComponentLogger("loader.watch"),
	}, nil
}

// Run blocks until ctx is done or the watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return errors.Wrapf(err, "failed to watch %s", w.path)
	}
	w.log.Infow("watching IR", logger.FieldPath, w.path)

	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debugw("IR changed", logger.FieldPath, event.Name, "op", event.Op.String())
			w.schedule(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("watch error", logger.FieldError, err)
		}
	}
}

// schedule restarts the debounce timer.
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.fire(ctx) })
}

// fire runs onChange, one call at a time.
func (w *Watcher) fire(ctx context.Context) {
	w.runMu.Lock()
	defer w.runMu.Unlock()
	if ctx.Err() != nil {
		return
	}
	if err := w.onChange(ctx); err != nil {
		w.log.Errorw("recompile failed", logger.FieldError, err)
	}
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
