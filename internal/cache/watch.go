package cache

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"content_mirror/internal/domain"
)

// Watch invalidates memo entries when a collection document in dir is
// rewritten, including by another process. It returns once the watcher is
// running and stops when ctx is done.
func Watch(ctx context.Context, dir string, memo *Memo, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger = logger.With("component", "store_watcher", "dir", dir)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
					continue
				}
				kind, ok := KindForFile(event.Name)
				if !ok {
					continue
				}
				logger.Debug("collection changed on disk", "kind", kind, "op", event.Op.String())
				memo.Invalidate(kind)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error", "error", err)
				memo.InvalidateAll()
			}
		}
	}()

	return nil
}

// KindForFile maps a document name such as posts.json to its kind.
func KindForFile(path string) (domain.Kind, bool) {
	base := filepath.Base(path)
	name, ok := strings.CutSuffix(base, ".json")
	if !ok {
		return "", false
	}
	kind, err := domain.ParseKind(name)
	if err != nil {
		return "", false
	}
	return kind, true
}
