package templatepack

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher clears a loader's cache when files under its template directories
// change, so edited packs are picked up without a restart.
type Watcher struct {
	watcher  *fsnotify.Watcher
	loader   *Loader
	logger   *log.Logger
	debounce time.Duration
}

// NewWatcher watches dirs and every pack directory (and its symbols
// directory) directly below them. fsnotify watches are not recursive.
func NewWatcher(loader *Loader, logger *log.Logger, dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	w := &Watcher{
		watcher:  fw,
		loader:   loader,
		logger:   logger,
		debounce: 200 * time.Millisecond,
	}
	for _, dir := range dirs {
		if err := w.addTree(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pack := filepath.Join(dir, e.Name())
		if err := w.watcher.Add(pack); err != nil {
			return err
		}
		if sym := filepath.Join(pack, symbolsDir); isDir(sym) {
			if err := w.watcher.Add(sym); err != nil {
				return err
			}
		}
	}
	return nil
}

// Run processes events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 && isDir(event.Name) {
				_ = w.watcher.Add(event.Name)
			}
			w.logger.Debug("template change", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.loader.ClearCache()
			w.logger.Info("template cache cleared")

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("template watcher error", "err", err)
		}
	}
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
