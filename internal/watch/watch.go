// Package watch rebuilds the boot logo artifacts whenever the source picture
// changes on disk.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is how long the source must stay quiet before a rebuild.
const DefaultDelay = 500 * time.Millisecond

// RebuildFunc regenerates the artifacts for the watched source.
type RebuildFunc func() error

// Watcher monitors one source file.
type Watcher struct {
	// Delay overrides DefaultDelay when non-zero.
	Delay time.Duration

	source  string
	rebuild RebuildFunc
	logger  *log.Logger
	watcher *fsnotify.Watcher
}

// New watches the directory holding source. Editors often replace a file
// instead of writing it in place, so the directory is watched rather than
// the file itself.
func New(source string, rebuild RebuildFunc, logger *log.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", source, err)
	}
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch folder %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		source:  abs,
		rebuild: rebuild,
		logger:  logger,
		watcher: fsWatcher,
	}, nil
}

// Source returns the absolute path being watched.
func (w *Watcher) Source() string { return w.source }

// Run processes events until ctx is cancelled or the underlying watcher is
// closed. Rebuild failures are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	delay := w.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}

	w.logger.Printf("Watching %s", w.source)

	// fire is nil until a relevant event arms the debounce timer.
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.source {
				continue
			}
			switch {
			case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				w.logger.Printf("Source removed: %s", w.source)
				continue
			default:
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(delay)
			fire = timer.C

		case <-fire:
			timer, fire = nil, nil
			w.logger.Printf("Source changed, rebuilding: %s", w.source)
			if err := w.rebuild(); err != nil {
				w.logger.Printf("Rebuild failed: %v", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Printf("Watcher error: %v", err)
		}
	}
}

// Close stops the watcher; a running Run returns.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
