package watch

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/wippyai/watbuild"
	"github.com/wippyai/watbuild/errors"
)

// DefaultDebounce is how long the watcher waits after the last relevant
// filesystem event before triggering a batch.
const DefaultDebounce = 300 * time.Millisecond

// BatchFunc runs one full conversion batch. A non-nil error is logged and
// the watch continues; partial batch failures never stop the loop.
type BatchFunc func(ctx context.Context) error

// Watcher re-runs the batch whenever input files change.
type Watcher struct {
	// Dir is the input directory to watch.
	Dir string

	// Debounce coalesces event bursts into a single trigger. Zero means
	// DefaultDebounce.
	Debounce time.Duration

	// Run executes the batch on each trigger.
	Run BatchFunc
}

func (w *Watcher) debounce() time.Duration {
	if w.Debounce > 0 {
		return w.Debounce
	}
	return DefaultDebounce
}

// relevant reports whether ev concerns an input file in a way that can
// change the batch outcome.
func relevant(ev fsnotify.Event) bool {
	if !strings.HasSuffix(filepath.Base(ev.Name), watbuild.InputExt) {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

// Watch blocks, running the batch after every debounced burst of input
// changes, until ctx is canceled. Batches are serialized: events arriving
// while a batch runs queue up and trigger exactly one follow-up run.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.IO(errors.PhaseWatch, w.Dir, err)
	}
	defer fw.Close()

	if err := fw.Add(w.Dir); err != nil {
		return errors.IO(errors.PhaseWatch, w.Dir, err)
	}

	Logger().Info("watching for changes",
		zap.String("dir", w.Dir),
		zap.Duration("debounce", w.debounce()))

	var timer *time.Timer
	var trigger <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return errors.Interrupted(errors.PhaseWatch, ctx.Err())

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			Logger().Debug("input changed",
				zap.String("file", ev.Name),
				zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce())
				trigger = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-trigger:
					default:
					}
				}
				timer.Reset(w.debounce())
			}

		case <-trigger:
			timer = nil
			trigger = nil
			// Run synchronously: events during the batch queue on the
			// watcher channel and re-arm the timer afterwards, so at most
			// one follow-up run is pending.
			if err := w.Run(ctx); err != nil {
				if ctx.Err() != nil {
					return errors.Interrupted(errors.PhaseWatch, ctx.Err())
				}
				Logger().Warn("batch failed", zap.Error(err))
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			Logger().Warn("watch error", zap.Error(err))
		}
	}
}
