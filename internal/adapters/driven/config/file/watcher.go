package file

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/opencourse-labs/virta/internal/logger"
)

// Watch reloads the configuration whenever the backing file changes on
// disk and invokes onReload after each successful reload so callers can
// re-read the values they care about. It blocks until ctx is cancelled
// or the watcher fails. Editors that replace the file (write to temp,
// rename over) emit Create events, so both Write and Create trigger a
// reload.
func (s *ConfigStore) Watch(ctx context.Context, onReload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory rather than the file itself: atomic saves
	// replace the inode and a file watch would silently go stale.
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != s.filePath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := s.Load(); err != nil {
				logger.Warn("config reload failed: %v", err)
				continue
			}
			logger.Debug("config reloaded from %s", s.filePath)
			if onReload != nil {
				onReload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error: %v", err)
		}
	}
}
