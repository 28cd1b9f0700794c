package source

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to a single file.
//
// The parent directory is watched so that editors replacing the file are detected too.
type Watcher struct {
	watcher  *fsnotify.Watcher
	file     string
	debounce time.Duration
}

// NewWatcher starts watching 'file'. Call Run to receive the changes, and Close when done.
func NewWatcher(file string) (*Watcher, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("cannot watch %q: %w", file, err)
	}
	return &Watcher{watcher: w, file: abs, debounce: 100 * time.Millisecond}, nil
}

// Run calls onChange after the file was written or created, at most once per burst of
// events. It blocks until the context is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, onChange func()) {
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.file || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending = time.After(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch %s: %v", w.file, err)

		case <-pending:
			pending = nil
			onChange()
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error { return w.watcher.Close() }
