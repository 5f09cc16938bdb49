package site

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const WatchDebounce = 500 * time.Millisecond

// Watcher reloads section files in place when they change on disk.
type Watcher struct {
	sections *SectionCache
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]fsnotify.Op
	timer   *time.Timer
}

func NewWatcher(sections *SectionCache) *Watcher {
	return &Watcher{
		sections: sections,
		debounce: WatchDebounce,
		pending:  make(map[string]fsnotify.Op),
	}
}

// Run watches the sections directory until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.sections.Dir()); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.sections.Dir(), err)
	}

	slog.Info("Watching sections", "dir", w.sections.Dir())

	for {
		select {
		case <-ctx.Done():
			w.stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Section watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if filepath.Ext(event.Name) != ".yml" {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	slog.Debug("Section change detected", "file", event.Name, "op", event.Op.String())

	name := strings.TrimSuffix(filepath.Base(event.Name), ".yml")

	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[name] = event.Op
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	pending := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.mu.Unlock()

	for name, op := range pending {
		if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
			w.sections.Remove(name)
			slog.Info("Section removed", "section", name)
			continue
		}

		if _, err := w.sections.LoadSection(name); err != nil {
			slog.Error("Failed to reload section", "section", name, "error", err)
			continue
		}
		slog.Info("Section reloaded", "section", name)
	}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
