// Package watcher re-runs an export callback whenever the activity database
// file changes on disk. It backs 'carbontrack export --watch', which keeps a
// dashboard hand-off file current while other processes log activities.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// debounceDelay coalesces the burst of filesystem events a single SQLite
// transaction produces (main db, -wal and -shm files) into one callback.
const debounceDelay = 500 * time.Millisecond

// Watcher observes the database file and invokes onChange after writes.
type Watcher struct {
	dbPath   string
	onChange func() error
	logger   zerolog.Logger

	fsw    *fsnotify.Watcher
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a Watcher for the database at dbPath.
func New(dbPath string, logger zerolog.Logger, onChange func() error) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("onChange callback cannot be nil")
	}
	return &Watcher{
		dbPath:   dbPath,
		onChange: onChange,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It runs the callback once immediately so the export
// reflects the current snapshot, then re-runs it (debounced) on every change
// to the database file or its WAL sidecars.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create filesystem watcher: %w", err)
	}
	w.fsw = fsw

	// Watch the directory, not the file: SQLite replaces and creates
	// sidecar files, and watching the file itself loses the handle.
	dir := filepath.Dir(w.dbPath)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	if err := w.onChange(); err != nil {
		w.logger.Error().Err(err).Msg("initial export failed")
	}

	w.wg.Add(1)
	go w.run()

	w.logger.Info().Str("db", w.dbPath).Msg("watching database for changes")
	return nil
}

// run is the event loop: it filters events down to the database files and
// fires the callback after a quiet period.
func (w *Watcher) run() {
	defer w.wg.Done()

	var debounce *time.Timer
	var debounceC <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.isDatabaseFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("database changed")
			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(debounceDelay)
			}
			debounceC = debounce.C

		case <-debounceC:
			debounceC = nil
			if err := w.onChange(); err != nil {
				w.logger.Error().Err(err).Msg("export failed")
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("filesystem watcher error")

		case <-w.stopCh:
			if debounce != nil {
				debounce.Stop()
			}
			return
		}
	}
}

// isDatabaseFile reports whether the event path is the database or one of
// its WAL sidecar files.
func (w *Watcher) isDatabaseFile(path string) bool {
	base := filepath.Base(w.dbPath)
	name := filepath.Base(path)
	return name == base || name == base+"-wal" || name == base+"-shm"
}

// Stop halts the watcher and waits for the event loop to drain.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	w.wg.Wait()

	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}
