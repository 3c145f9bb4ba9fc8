// Package fsnotify implements the ports.Watcher interface using github.com/fsnotify/fsnotify.
// It recursively watches a source tree, filters out editor and build noise,
// and coalesces bursts of events per file: onChange fires once the file has
// been quiet for the debounce interval, so a save split over several writes
// is seen only in its final state.
package fsnotify

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Directories below the watched root that never hold sources.
var ignoreDirs = map[string]bool{
	".git":     true,
	".svn":     true,
	".idea":    true,
	".vscode":  true,
	".apistub": true,
	".gradle":  true,
	"META-INF": true,
}

// File suffixes written by editors and compilers.
var ignoreSuffixes = []string{
	".DS_Store",
	".swp",
	".swx",
	"~",
	".class",
	".tmp",
}

const debounceInterval = 50 * time.Millisecond

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw      *fsnotify.Watcher
	done    chan struct{}
	root    string
	stopped bool
	mu      sync.Mutex

	pmu     sync.Mutex
	pending map[string]*time.Timer
}

// NewWatcher creates a new file system watcher.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:      fw,
		done:    make(chan struct{}),
		pending: make(map[string]*time.Timer),
	}, nil
}

// Watch starts monitoring root recursively.
// onChange is called with the absolute path of each changed file.
func (w *Watcher) Watch(root string, onChange func(filePath string)) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	if _, err := os.Stat(absRoot); err != nil {
		return err
	}
	w.root = absRoot

	if err := w.addTree(absRoot); err != nil {
		return err
	}

	go func() {
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				path := event.Name

				// New directories (a package created by the compiler) join the watch.
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(path); err == nil && info.IsDir() {
						if !w.ignored(path) {
							_ = w.addTree(path)
						}
						continue
					}
				}

				if w.ignored(path) {
					continue
				}

				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					w.schedule(path, onChange)
				}

			case _, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// fsnotify keeps delivering events after transient errors.

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// addTree adds dir and every non-ignored directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && ignoreDirs[d.Name()] {
			return filepath.SkipDir
		}
		return w.fw.Add(path)
	})
}

// schedule (re)arms the quiet-period timer for path.
func (w *Watcher) schedule(path string, onChange func(string)) {
	w.pmu.Lock()
	defer w.pmu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Reset(debounceInterval)
		return
	}
	w.pending[path] = time.AfterFunc(debounceInterval, func() {
		w.pmu.Lock()
		delete(w.pending, path)
		w.pmu.Unlock()

		select {
		case <-w.done:
		default:
			onChange(path)
		}
	})
}

// Stop ends monitoring and releases all resources. Pending changes are
// dropped. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)

	w.pmu.Lock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	w.pmu.Unlock()

	return w.fw.Close()
}

// ignored reports whether path should not trigger onChange. Only the part
// below the watched root is inspected, so a root that itself lives under a
// build directory is still watched.
func (w *Watcher) ignored(path string) bool {
	base := filepath.Base(path)
	for _, suffix := range ignoreSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return true
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if ignoreDirs[part] {
			return true
		}
	}
	return false
}
