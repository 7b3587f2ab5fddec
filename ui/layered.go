package ui

import (
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
)

// layeredFS resolves names against each layer in order. The UI stacks the
// on-disk asset directory over the embedded copy so edits to ui/static and
// ui/templates show up without a rebuild.
type layeredFS []fs.FS

func newLayeredFS(dir string, embedded fs.FS) layeredFS {
	return layeredFS{os.DirFS(dir), embedded}
}

func (l layeredFS) Open(name string) (fs.File, error) {
	err := error(fs.ErrNotExist)
	for _, layer := range l {
		f, openErr := layer.Open(name)
		if openErr == nil {
			return f, nil
		}
		err = openErr
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: unwrapPathError(err)}
}

// ReadDir merges the listings of every layer. A name present in several
// layers is reported from the topmost one. Entries are sorted by name.
func (l layeredFS) ReadDir(name string) ([]fs.DirEntry, error) {
	var merged []fs.DirEntry
	seen := make(map[string]bool)
	found := false
	for _, layer := range l {
		list, err := fs.ReadDir(layer, name)
		if err != nil {
			continue
		}
		found = true
		for _, e := range list {
			if !seen[e.Name()] {
				seen[e.Name()] = true
				merged = append(merged, e)
			}
		}
	}
	if !found {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	slices.SortFunc(merged, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return merged, nil
}

func unwrapPathError(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
