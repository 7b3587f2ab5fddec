package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/calc/expr"
)

// Extension is the file extension of calculator documents.
const Extension = ".calc"

// Workspace keeps the evaluated .calc documents below a root directory.
type Workspace struct {
	mu       sync.RWMutex
	rootDir  string
	docs     map[string]*Document
	evalOpts []expr.Option
	log      commonlog.Logger
}

func New(rootDir string, opts ...expr.Option) *Workspace {
	return &Workspace{
		rootDir:  rootDir,
		docs:     make(map[string]*Document),
		evalOpts: opts,
		log:      commonlog.GetLogger("calc.workspace"),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

func (w *Workspace) ScanAll() error {
	return filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(path) == Extension {
			if err := w.ScanFile(path); err != nil {
				w.log.Warningf("scan %s: %s", path, err)
			}
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, content)
	return nil
}

// UpdateFile re-evaluates content and stores it under path.
func (w *Workspace) UpdateFile(path string, content []byte) *Document {
	doc := EvaluateDocument(path, content, w.evalOpts...)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs[path] = doc
	w.log.Debugf("evaluated %s: %d lines, %d errors", path, len(doc.Lines), len(doc.Errors()))
	return doc
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, path)
}

func (w *Workspace) GetFile(path string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[path]
}

// Paths returns the stored document paths in sorted order.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.docs))
	for p := range w.docs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
