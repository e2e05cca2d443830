package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// scriptWatcher reports changes to one file. It watches the file's
// directory so that editors which replace the file on save are seen.
type scriptWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	log     *zap.Logger
}

func newScriptWatcher(path string, log *zap.Logger) (*scriptWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	return &scriptWatcher{path: abs, watcher: w, log: log}, nil
}

// Run calls onChange after every write to the file until ctx is done.
func (s *scriptWatcher) Run(ctx context.Context, onChange func()) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != s.path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			s.log.Debug("script changed", zap.String("path", s.path), zap.Stringer("op", ev.Op))
			onChange()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (s *scriptWatcher) Close() error {
	return s.watcher.Close()
}
