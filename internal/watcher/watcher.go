// Package watcher observes the data directory and reports collection
// file changes, so edits made outside the API (or by another process)
// still reach connected clients.
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// ChangeCallback receives the collection name ("memories", "family",
// "foodlog") whose backing file changed.
type ChangeCallback func(collection string)

// collectionFor maps a data file name to its collection, or "".
func collectionFor(path string) string {
	switch filepath.Base(path) {
	case "memories.json":
		return "memories"
	case "family.json":
		return "family"
	case "food_log.json":
		return "foodlog"
	}
	return ""
}

// Watch starts an fsnotify watcher on the data directory and invokes cb
// for every write, create, or rename touching a collection file, until
// ctx is cancelled. The atomic temp-and-rename writes the store performs
// surface as Create/Rename events, so all three ops are treated alike.
func Watch(ctx context.Context, dataDir string, logger *slog.Logger, cb ChangeCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dataDir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("dir", dataDir))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			// Ignore temp files from atomic writes.
			if strings.HasPrefix(filepath.Base(ev.Name), ".famories-tmp-") {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			collection := collectionFor(ev.Name)
			if collection == "" {
				continue
			}
			logger.Debug("watcher: change",
				slog.String("collection", collection),
				slog.String("op", ev.Op.String()))
			if cb != nil {
				cb(collection)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: error", slog.String("error", err.Error()))
		}
	}
}
