package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"go.uber.org/zap"

	"github.com/teranos/typeweaver/errors"
	"github.com/teranos/typeweaver/logger"
)

// DefaultDebounce is how long the watcher waits after the last change before
// regenerating.
const DefaultDebounce = 500 * time.Millisecond

// RunFunc regenerates types. It is called from the watch loop, one call at
// a time.
type RunFunc func(ctx context.Context) error

// Watcher re-runs generation when Ruby sources under a root change.
type Watcher struct {
	root     string
	exclude  gitignore.Matcher
	watcher  *fsnotify.Watcher
	run      RunFunc
	debounce time.Duration
	log      *zap.SugaredLogger
}

// NewWatcher watches every directory under root that is not excluded.
func NewWatcher(root string, exclude []string, run RunFunc, log *zap.SugaredLogger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		root:     root,
		exclude:  excludeMatcher(exclude),
		watcher:  fw,
		run:      run,
		debounce: DefaultDebounce,
		log:      logger.ComponentLogger(log, "watch"),
	}

	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// SetDebounce overrides DefaultDebounce.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// addTree watches dir and every non-excluded directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && (skipDirs[d.Name()] || excluded(w.exclude, w.root, path, true)) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return errors.Wrapf(err, "failed to watch %s", path)
		}
		return nil
	})
}

// Watch blocks until ctx is cancelled, calling the run function once per
// burst of relevant changes.
func (w *Watcher) Watch(ctx context.Context) error {
	defer w.watcher.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) && w.isWatchableDir(event.Name) {
				if err := w.addTree(event.Name); err != nil {
					w.log.Warnw("Failed to watch new directory",
						logger.FieldFile, event.Name,
						logger.FieldError, err)
				}
			}

			if !w.relevant(event) {
				continue
			}
			w.log.Debugw("Source changed",
				logger.FieldFile, event.Name,
				"op", event.Op.String())

			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.run(ctx); err != nil {
				w.log.Warnw("Regeneration failed", logger.FieldError, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

// relevant reports whether event touches a non-excluded Ruby source.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Ext(event.Name) != ".rb" {
		return false
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return !excluded(w.exclude, w.root, event.Name, false)
}

func (w *Watcher) isWatchableDir(path string) bool {
	info, err := os.Lstat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	return !skipDirs[filepath.Base(path)] && !excluded(w.exclude, w.root, path, true)
}
