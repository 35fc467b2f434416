package adapter

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	m "github.com/phi-fell/mwt/internal/model"
)

// WatchFunc receives a debounced batch of changed .rs files.
type WatchFunc func(ctx context.Context, changed []m.Path)

// WatchAdapter reports Rust source changes below a set of directories.
type WatchAdapter interface {
	// Watch blocks until ctx is cancelled, calling fn for every batch of
	// created or written .rs files that settled for the debounce interval.
	Watch(ctx context.Context, dirs []m.Path, debounce time.Duration, fn WatchFunc) error
}

// LocalWatchAdapter implements WatchAdapter with fsnotify.
type LocalWatchAdapter struct{}

// NewLocalWatchAdapter constructs a LocalWatchAdapter.
func NewLocalWatchAdapter() *LocalWatchAdapter {
	return &LocalWatchAdapter{}
}

// Watch implements WatchAdapter. Directories created while watching are added
// to the watch list. The fsnotify watcher is closed before Watch returns.
func (a *LocalWatchAdapter) Watch(ctx context.Context, dirs []m.Path, debounce time.Duration, fn WatchFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	defer func() {
		if err := watcher.Close(); err != nil {
			slog.Error("failed to close watcher", "error", err)
		}
	}()

	for _, dir := range dirs {
		if err := watcher.Add(string(dir)); err != nil {
			return err
		}

		slog.Debug("watching directory", "path", dir)
	}

	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}

	ticker := time.NewTicker(debounce / 2)
	defer ticker.Stop()

	pending := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			a.handleEvent(watcher, event, pending)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			slog.Error("watcher error", "error", err)

		case now := <-ticker.C:
			if ready := settled(pending, now, debounce); len(ready) > 0 {
				fn(ctx, ready)
			}
		}
	}
}

func (a *LocalWatchAdapter) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event, pending map[string]time.Time) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := watcher.Add(event.Name); err != nil {
				slog.Error("failed to watch new directory", "path", event.Name, "error", err)
			}

			return
		}
	}

	if !strings.HasSuffix(event.Name, ".rs") {
		return
	}

	slog.Debug("source changed", "path", event.Name, "op", event.Op.String())
	pending[filepath.Clean(event.Name)] = time.Now()
}

// settled removes and returns the paths whose last event is older than debounce.
func settled(pending map[string]time.Time, now time.Time, debounce time.Duration) []m.Path {
	var ready []m.Path

	for path, last := range pending {
		if now.Sub(last) >= debounce {
			ready = append(ready, m.Path(path))
			delete(pending, path)
		}
	}

	sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })

	return ready
}
