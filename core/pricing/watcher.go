package pricing

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"traceflow-pricing/internal/errors"
)

// Watcher reloads a catalog file into a Store whenever it changes.
// A file that fails to load is logged and the previous catalog stays active.
type Watcher struct {
	path   string
	store  *Store
	logger *zap.Logger

	// onReload is called after each reload attempt; tests hook it
	onReload func(*Catalog, error)
}

// NewWatcher creates a watcher for path feeding store
func NewWatcher(path string, store *Store, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:   filepath.Clean(path),
		store:  store,
		logger: logger.With(zap.String("catalog", path)),
	}
}

// Run watches until ctx is done. The parent directory is watched so editors
// that replace the file by rename are picked up.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Internal("creating catalog watcher", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return errors.Config("watching catalog directory", err)
	}

	w.logger.Info("watching catalog for changes")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("catalog watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	catalog, err := LoadCatalogFile(w.path)
	switch {
	case err != nil:
		w.logger.Error("catalog reload failed, keeping previous catalog", zap.Error(err))
	case catalog.Hash() == w.store.Load().Hash():
		w.logger.Debug("catalog unchanged", zap.String("hash", catalog.Hash()))
	default:
		prev := w.store.Swap(catalog)
		w.logger.Info("catalog reloaded",
			zap.Int("tiers", len(catalog.table.Tiers)),
			zap.String("previous_hash", prev.Hash()),
			zap.String("hash", catalog.Hash()))
	}
	if w.onReload != nil {
		w.onReload(catalog, err)
	}
}
