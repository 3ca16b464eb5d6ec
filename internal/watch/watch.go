// Package watch notifies the status view when the repository changes on disk.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce is the window within which watcher events coalesce into a
// single refresh.
const Debounce = 600 * time.Millisecond

// RepoWatcher watches a repository for changes that should refresh the
// status view: the working tree for file edits and the git common
// directory for index and ref updates.
type RepoWatcher struct {
	Started     bool
	Waiting     bool
	Roots       []string
	Events      chan struct{}
	Done        chan struct{}
	Paths       map[string]struct{}
	Mu          sync.Mutex
	Watcher     *fsnotify.Watcher
	LastRefresh time.Time
	commonDir   string
	topLevel    string
	logf        func(string, ...any)
}

// NewRepoWatcher creates a watcher for the given repository layout.
// commonDir is the git common directory and topLevel the working tree
// root; both come from git rev-parse.
func NewRepoWatcher(commonDir, topLevel string, logf func(string, ...any)) *RepoWatcher {
	return &RepoWatcher{
		commonDir: commonDir,
		topLevel:  topLevel,
		logf:      logf,
	}
}

// Start initialises the watcher and starts the background goroutine.
func (w *RepoWatcher) Start() (bool, error) {
	if w.Started {
		return false, nil
	}
	if w.commonDir == "" || w.topLevel == "" {
		w.debugf("watch: repository layout unresolved, not starting")
		return false, nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}

	w.Started = true
	w.Watcher = watcher
	w.Events = make(chan struct{}, 1)
	w.Done = make(chan struct{})
	w.Paths = make(map[string]struct{})
	w.Roots = []string{
		filepath.Join(w.commonDir, "refs"),
		filepath.Join(w.commonDir, "logs"),
		w.topLevel,
	}
	w.addWatchDir(w.commonDir)
	for _, root := range w.Roots {
		w.addWatchTree(root)
	}

	go w.run()
	return true, nil
}

// Stop stops the watcher and closes channels.
func (w *RepoWatcher) Stop() {
	if !w.Started {
		return
	}
	close(w.Done)
	w.Started = false
	if w.Watcher != nil {
		_ = w.Watcher.Close()
	}
}

// NextEvent returns the event channel if waiting is not already active.
func (w *RepoWatcher) NextEvent() <-chan struct{} {
	if w.Events == nil || w.Waiting {
		return nil
	}
	w.Waiting = true
	return w.Events
}

// ResetWaiting clears the waiting flag after an event is processed.
func (w *RepoWatcher) ResetWaiting() {
	w.Waiting = false
}

// ShouldRefresh checks debounce timing for watcher events.
func (w *RepoWatcher) ShouldRefresh(now time.Time) bool {
	if !w.LastRefresh.IsZero() && now.Sub(w.LastRefresh) < Debounce {
		return false
	}
	w.LastRefresh = now
	return true
}

// MaybeWatchNewDir registers newly created directories under watch roots.
func (w *RepoWatcher) MaybeWatchNewDir(path string) {
	if !w.IsUnderRoot(path) {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	w.addWatchDir(path)
}

// Signal notifies listeners of watcher activity.
func (w *RepoWatcher) Signal() {
	select {
	case <-w.Done:
		return
	default:
	}
	select {
	case w.Events <- struct{}{}:
	default:
	}
}

// IsUnderRoot reports whether the path is under any watch root.
func (w *RepoWatcher) IsUnderRoot(path string) bool {
	if path == "" {
		return false
	}
	for _, root := range w.Roots {
		if root == "" {
			continue
		}
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *RepoWatcher) run() {
	for {
		select {
		case <-w.Done:
			return
		case event, ok := <-w.Watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				w.MaybeWatchNewDir(event.Name)
			}
			w.Signal()
		case err, ok := <-w.Watcher.Errors:
			if !ok {
				return
			}
			w.debugf("repo watcher error: %v", err)
		}
	}
}

func (w *RepoWatcher) addWatchDir(path string) {
	if path == "" {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	w.Mu.Lock()
	defer w.Mu.Unlock()

	if _, ok := w.Paths[path]; ok {
		return
	}
	if err := w.Watcher.Add(path); err != nil {
		w.debugf("repo watcher add failed for %s: %v", path, err)
		return
	}
	w.Paths[path] = struct{}{}
}

// addWatchTree watches every directory below root. Git internals under
// the working tree are skipped; the refs and logs roots cover the parts
// of the common dir the status view cares about.
func (w *RepoWatcher) addWatchTree(root string) {
	if root == "" {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" && path != root {
			return fs.SkipDir
		}
		w.addWatchDir(path)
		return nil
	})
}

func (w *RepoWatcher) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}
