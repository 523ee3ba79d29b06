// Package watch re-runs the batch when handbooks are added to the scan
// directory.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/fsnotify/fsnotify"

	"schedscan/internal/document"
)

// Watcher triggers a callback after the scan directory settles. Each
// trigger is a full batch run, so outputs stay deterministic no matter how
// files arrived.
type Watcher struct {
	Dir      string
	Prober   document.Prober
	Debounce time.Duration // quiet period before a run; default 2s
	Logger   *slog.Logger

	// OnBatch runs one full pass over the directory.
	OnBatch func(ctx context.Context) error
}

// Run blocks, watching the directory until ctx is cancelled. An initial
// batch runs before the first event.
func (w *Watcher) Run(ctx context.Context) error {
	log := w.Logger
	if log == nil {
		log = slog.Default()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = 2 * time.Second
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.Dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.Dir, err)
	}

	if err := w.OnBatch(ctx); err != nil {
		return err
	}

	// The timer is armed by events and fires once the directory goes quiet.
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	log.Info("watching for handbooks", "dir", w.Dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			log.Debug("handbook change detected", "file", filepath.Base(ev.Name), "op", ev.Op.String())
			if ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write) {
				w.awaitReadable(ctx, ev.Name, log)
			}
			timer.Reset(debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "err", err)

		case <-timer.C:
			if err := w.OnBatch(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Error("batch run failed", "err", err)
			}
		}
	}
}

// awaitReadable waits for a freshly written PDF to become structurally
// readable. Files copied into the directory fire events before the copy
// completes, so the first probes are expected to fail.
func (w *Watcher) awaitReadable(ctx context.Context, path string, log *slog.Logger) {
	if w.Prober == nil {
		return
	}
	err := retry.Do(
		func() error { return w.Prober.Probe(path) },
		retry.Context(ctx),
		retry.Attempts(8),
		retry.Delay(250*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		log.Warn("file never became readable", "file", filepath.Base(path), "err", err)
	}
}

func relevant(ev fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(ev.Name), ".pdf") {
		return false
	}
	return ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Rename) || ev.Op.Has(fsnotify.Remove)
}
