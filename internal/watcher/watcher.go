package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/phoenix-ai/apiprobe/internal/scanner"
)

// Watcher watches scenario directories and triggers a rerun callback when a
// scenario file changes. Events are debounced so a burst of writes (editor
// save, git checkout) causes a single rerun.
type Watcher struct {
	dirs     []string
	includes []string
	excludes []string
	debounce time.Duration
	log      *logrus.Logger
	watcher  *fsnotify.Watcher
	onChange func()
	done     chan struct{}
	wg       sync.WaitGroup
}

// New creates a watcher over the given directories. The include and exclude
// globs decide which file changes trigger the callback, the same patterns
// scanning discovers files with.
func New(dirs, includes, excludes []string, debounce time.Duration, log *logrus.Logger, onChange func()) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.New()
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	w := &Watcher{
		dirs:     dirs,
		includes: includes,
		excludes: excludes,
		debounce: debounce,
		log:      log,
		watcher:  fsWatcher,
		onChange: onChange,
		done:     make(chan struct{}),
	}

	for _, dir := range dirs {
		if err := w.addRecursive(dir); err != nil {
			_ = fsWatcher.Close()
			return nil, err
		}
	}

	return w, nil
}

// Start begins watching for file changes in a goroutine.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.loop()
}

// Stop terminates the watcher.
func (w *Watcher) Stop() {
	close(w.done)
	_ = w.watcher.Close()
	w.wg.Wait()
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !w.matchesScenario(event.Name) {
				// A new directory may bring scenario files with it.
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = w.addRecursive(event.Name)
					}
				}
				continue
			}

			w.log.Debugf("File change detected: %s (%s)", event.Name, event.Op)

			// Debounce: reset timer on each event.
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			timerC = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warnf("Watcher error: %v", err)

		case <-timerC:
			w.log.Info("Rerunning scenarios due to file changes")
			w.onChange()
			timerC = nil
		}
	}
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

// matchesScenario checks an event path against the configured globs, using
// the path relative to its watched root so directory excludes like
// "drafts/**" apply the same way they do during scanning.
func (w *Watcher) matchesScenario(name string) bool {
	path := name
	for _, dir := range w.dirs {
		if rel, err := filepath.Rel(dir, name); err == nil && !strings.HasPrefix(rel, "..") {
			path = rel
			break
		}
	}
	return scanner.Matches(path, w.includes, w.excludes)
}
