package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce is the quiet period after the last relevant filesystem
// event before a Changed notification is emitted, so a burst of writes
// (e.g. a git checkout touching dozens of files) collapses into one.
const watchDebounce = 200 * time.Millisecond

// ignoredPathComponents are directory names whose contents never
// trigger a repo-change notification: VCS internals and quickdiff's own
// state directory.
var ignoredPathComponents = map[string]struct{}{
	".git":       {},
	".jj":        {},
	".quickdiff": {},
}

// WatchEvent is the single event type a Watcher emits: the repo's
// working tree changed somewhere relevant and the diff should be
// recomputed.
type WatchEvent int

const Changed WatchEvent = iota

// Watcher watches a repository root recursively for changes, debouncing
// bursts and filtering out VCS-internal paths.
type Watcher struct {
	watcher *fsnotify.Watcher
	events  chan WatchEvent
	root    string
}

// NewWatcher starts watching root recursively. Callers should read from
// Events() and call Close when done.
func NewWatcher(root string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := addRecursive(fsw, root); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{watcher: fsw, events: make(chan WatchEvent, 1), root: root}
	go w.run()
	return w, nil
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if isIgnoredPath(path, root) {
				return filepath.SkipDir
			}
			_ = fsw.Add(path)
		}
		return nil
	})
}

func (w *Watcher) run() {
	var timer *time.Timer
	pending := false

	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if isIgnoredPath(ev.Name, w.root) {
				continue
			}
			pending = true
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(watchDebounce)
			}
		case <-timerC(timer):
			if pending {
				select {
				case w.events <- Changed:
				default:
				}
				pending = false
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func timerC(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// Events returns the channel of debounced change notifications.
func (w *Watcher) Events() <-chan WatchEvent { return w.events }

// Poll does a non-blocking check for a pending change notification,
// draining any additional queued notifications so only the latest is
// reported.
func (w *Watcher) Poll() (WatchEvent, bool) {
	select {
	case ev := <-w.events:
		for {
			select {
			case ev = <-w.events:
			default:
				return ev, true
			}
		}
	default:
		return 0, false
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error { return w.watcher.Close() }

func isIgnoredPath(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if _, ok := ignoredPathComponents[part]; ok {
			return true
		}
	}
	return false
}
