package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch blocks until ctx is done, re-reading the store and calling fn after
// every write to filePath. The parent directory is watched so editors that
// replace the file atomically still trigger.
func Watch(ctx context.Context, store Store, filePath string, fn func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(filePath)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Name != filePath || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := store.GetConfig()
			if err != nil {
				slog.Error("Failed to re-read config", "path", filePath, "error", err)
				continue
			}
			slog.Info("Config changed", "path", filePath)
			fn(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Config watcher error", "error", err)
		}
	}
}
