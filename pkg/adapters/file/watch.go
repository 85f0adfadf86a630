package file

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch implements ports.Watchable. It reports the base name (without
// extension) of every definition file that was created, written, removed
// or renamed, once per debounce window.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}
	if err := l.addRecursive(watcher, l.root); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", l.root, err)
	}

	ch := make(chan string, 1)
	go l.watchLoop(ctx, watcher, ch)
	return ch, nil
}

func (l *Loader) addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func (l *Loader) watchLoop(ctx context.Context, w *fsnotify.Watcher, out chan<- string) {
	defer close(out)
	defer w.Close()

	pending := make(map[string]struct{})
	var order []string
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() bool {
		for _, name := range order {
			select {
			case out <- name:
			case <-ctx.Done():
				return false
			}
		}
		clear(pending)
		order = order[:0]
		timer, timerC = nil, nil
		return true
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = l.addRecursive(w, event.Name)
					continue
				}
			}
			if !isDefinitionFile(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			name := nameFromPath(event.Name)
			if _, seen := pending[name]; !seen {
				pending[name] = struct{}{}
				order = append(order, name)
			}
			if timer == nil {
				timer = time.NewTimer(l.debounce)
				timerC = timer.C
			} else {
				timer.Reset(l.debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			l.logger.Warn("file watcher error", "err", err)

		case <-timerC:
			if !flush() {
				return
			}
		}
	}
}
