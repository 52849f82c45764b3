package core

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"smalipatch/internal/ports"
)

// dryRunFileSystem records writes and removals in memory on top of a real
// file system, so later patches of a dry run see what earlier ones would
// have written.
type dryRunFileSystem struct {
	base    ports.FileSystem
	written map[string][]byte
	removed map[string]bool
}

func newDryRunFileSystem(base ports.FileSystem) *dryRunFileSystem {
	return &dryRunFileSystem{
		base:    base,
		written: make(map[string][]byte),
		removed: make(map[string]bool),
	}
}

func (f *dryRunFileSystem) ReadFile(path string) ([]byte, error) {
	if f.removed[path] {
		return nil, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	if content, ok := f.written[path]; ok {
		return slices.Clone(content), nil
	}
	return f.base.ReadFile(path)
}

func (f *dryRunFileSystem) WriteFile(path string, content []byte, _ ports.AccessMode) error {
	f.written[path] = slices.Clone(content)
	delete(f.removed, path)
	return nil
}

func (f *dryRunFileSystem) EnsureDirExists(string) error {
	return nil
}

func (f *dryRunFileSystem) FileExists(path string) (bool, error) {
	if f.removed[path] {
		return false, nil
	}
	if _, ok := f.written[path]; ok {
		return true, nil
	}
	return f.base.FileExists(path)
}

func (f *dryRunFileSystem) DirExists(path string) (bool, error) {
	prefix := filepath.Clean(path) + string(filepath.Separator)
	for written := range f.written {
		if strings.HasPrefix(written, prefix) {
			return true, nil
		}
	}
	return f.base.DirExists(path)
}

func (f *dryRunFileSystem) RemoveFile(path string) error {
	exists, err := f.FileExists(path)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("remove %s: %w", path, fs.ErrNotExist)
	}
	delete(f.written, path)
	f.removed[path] = true
	return nil
}

func (f *dryRunFileSystem) ListFiles(root string, extensions []string) ([]string, error) {
	files, err := f.base.ListFiles(root, extensions)
	if err != nil {
		return nil, err
	}

	files = slices.DeleteFunc(files, func(rel string) bool {
		return f.removed[filepath.Join(root, filepath.FromSlash(rel))]
	})
	for path := range f.written {
		rel, err := filepath.Rel(root, path)
		if err != nil || strings.HasPrefix(rel, "..") || !slices.Contains(extensions, filepath.Ext(path)) {
			continue
		}
		if rel = filepath.ToSlash(rel); !slices.Contains(files, rel) {
			files = append(files, rel)
		}
	}

	slices.Sort(files)
	return files, nil
}
