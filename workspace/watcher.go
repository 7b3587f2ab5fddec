package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileWatcher polls the workspace root for .calc files and re-evaluates
// files whose modification time changed. The root may be a single file.
type FileWatcher struct {
	workspace    *Workspace
	stopCh       chan struct{}
	doneCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
	onChange     func(*Document)
	onRemove     func(path string)
}

type WatcherOption func(*FileWatcher)

func WithPollInterval(d time.Duration) WatcherOption {
	return func(w *FileWatcher) {
		w.pollInterval = d
	}
}

// OnChange is called with every re-evaluated document.
func OnChange(fn func(*Document)) WatcherOption {
	return func(w *FileWatcher) {
		w.onChange = fn
	}
}

func OnRemove(fn func(path string)) WatcherOption {
	return func(w *FileWatcher) {
		w.onRemove = fn
	}
}

func NewFileWatcher(ws *Workspace, opts ...WatcherOption) *FileWatcher {
	w := &FileWatcher{
		workspace:    ws,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *FileWatcher) Start() {
	go w.run()
}

// Stop ends polling and waits for an in-flight scan to finish.
func (w *FileWatcher) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

func (w *FileWatcher) run() {
	defer close(w.doneCh)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.Scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Scan()
		}
	}
}

// Scan performs a single poll. It is called by the watcher goroutine and may
// be called directly when no goroutine is running.
func (w *FileWatcher) Scan() {
	currentFiles := make(map[string]bool)

	filepath.Walk(w.workspace.RootDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != w.workspace.RootDir() && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != Extension {
			return nil
		}

		currentFiles[path] = true

		lastMod, known := w.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			w.modTimes[path] = info.ModTime()
			if err := w.workspace.ScanFile(path); err != nil {
				w.workspace.log.Warningf("scan %s: %s", path, err)
				return nil
			}
			if w.onChange != nil {
				w.onChange(w.workspace.GetFile(path))
			}
		}
		return nil
	})

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			w.workspace.RemoveFile(path)
			if w.onRemove != nil {
				w.onRemove(path)
			}
		}
	}
}
