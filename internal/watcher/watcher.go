// Package watcher reports changes to a SQLite database file made by any
// process, coalescing bursts of writes into one notification.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/hyperstore/internal/log"
)

// DefaultDebounce is the quiet period after the last write before a
// change is reported.
const DefaultDebounce = 250 * time.Millisecond

// Watcher monitors a database file and its WAL for changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	files     map[string]bool
	debounce  time.Duration
	changes   chan struct{}
}

// New creates a watcher for the database at dbPath. A debounce of zero
// uses DefaultDebounce.
func New(dbPath string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	// SQLite in WAL mode commits by appending to <db>-wal; checkpoints
	// rewrite the main file.
	base := filepath.Base(dbPath)
	if err := fsw.Add(filepath.Dir(dbPath)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching directory %s: %w", filepath.Dir(dbPath), err)
	}

	return &Watcher{
		fsWatcher: fsw,
		files:     map[string]bool{base: true, base + "-wal": true},
		debounce:  debounce,
		changes:   make(chan struct{}, 1),
	}, nil
}

// Run delivers change notifications on the returned channel until ctx is
// cancelled, then releases the watcher and closes the channel. A pending
// notification is dropped if the reader has not consumed the previous one.
func (w *Watcher) Run(ctx context.Context) <-chan struct{} {
	go w.loop(ctx)
	return w.changes
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.changes)
	defer func() { _ = w.fsWatcher.Close() }()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatDB, "File watcher error", "error", err)
		}
	}
}

// relevant reports whether event is a write to the database or its WAL.
// Create counts because the WAL is recreated after a checkpoint.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return w.files[filepath.Base(event.Name)]
}
