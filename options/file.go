package options

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// LoadFile reads options from a TOML file over the defaults
// A missing file yields the defaults; keys absent from the file keep their default
func LoadFile(fsys afero.Fs, path string) (Snapshot, error) {
	snap := Defaults()

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return snap, nil
		}
		return snap, fmt.Errorf("read options: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return Defaults(), fmt.Errorf("decode options %s: %w", path, err)
	}
	if err := snap.Validate(); err != nil {
		return Defaults(), fmt.Errorf("options %s: %w", path, err)
	}
	return snap, nil
}

// Watch reloads path into the store whenever it is written or recreated
// Reload failures are logged and keep the current options. Blocks until ctx ends
func Watch(ctx context.Context, store *Store, fsys afero.Fs, path string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create options watcher: %w", err)
	}
	defer watcher.Close()

	// Editors replace files on save, so watch the directory
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(path)
	logger.Debug("watching options", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			snap, err := LoadFile(fsys, path)
			if err != nil {
				logger.Warn("options reload failed", "path", path, "error", err)
				continue
			}
			if err := store.Set(snap); err != nil {
				logger.Warn("options rejected", "path", path, "error", err)
				continue
			}
			logger.Info("options reloaded", "path", path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("options watcher error", "error", err)
		}
	}
}
