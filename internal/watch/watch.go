// Package watch reports batches of source changes under a project root.
package watch

import (
	"context"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"cs2ts/internal/options"
)

// DefaultDebounce groups the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

var skipDirs = map[string]bool{"bin": true, "obj": true, "node_modules": true}

// Relevant reports whether a change to path can affect a compilation.
func Relevant(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".cs") || filepath.Base(path) == options.ManifestName
}

// Watcher watches every directory of a project. fsnotify is not recursive,
// so directories created later are added as they appear.
type Watcher struct {
	fsw      *fsnotify.Watcher
	root     string
	debounce time.Duration
}

// New watches every directory below root that may hold sources.
func New(root string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create file watcher")
	}
	w := &Watcher{fsw: fsw, root: root, debounce: debounce}
	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && (skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		return errors.Wrapf(w.fsw.Add(path), "watch %s", path)
	})
}

// Run calls onChange with the sorted set of changed paths once the
// project has been quiet for the debounce period. It returns nil when
// ctx is done.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	defer w.fsw.Close()
	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						return err
					}
					continue
				}
			}
			if !Relevant(ev.Name) || ev.Op == fsnotify.Chmod {
				continue
			}
			pending[ev.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			paths := slices.Sorted(maps.Keys(pending))
			clear(pending)
			onChange(paths)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			return errors.Wrap(err, "file watcher")
		}
	}
}
