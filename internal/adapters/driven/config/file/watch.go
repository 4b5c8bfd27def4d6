package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sheetrows/internal/logger"
)

// Watch reloads the store whenever the config file or one of the .env
// files changes, then calls onChange with the reload result. It returns
// once the watcher is running; watching stops when ctx is cancelled.
//
// Directories are watched rather than files so that editors which replace
// files on save are still seen.
func (s *ConfigStore) Watch(ctx context.Context, onChange func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range append([]string{s.filePath}, s.envFiles...) {
		abs, err := filepath.Abs(p)
		if err != nil {
			watcher.Close()
			return err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !watched[ev.Name] || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) {
					continue
				}
				logger.Debug("Config changed (%s), reloading", ev)
				onChange(s.Load())
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Config watcher: %v", err)
			}
		}
	}()

	return nil
}
