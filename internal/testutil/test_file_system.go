package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"smalipatch/internal/ports"
)

// TestFileSystem provides real file system operations sandboxed within a temporary directory.
// All paths are automatically resolved relative to the sandbox directory.
// Use this in tests that need to actually read/write files.
// For unit tests that mock file system calls, use MockFileSystem instead.
type TestFileSystem struct {
	t       *testing.T
	baseDir string
}

// NewTestFileSystem creates a sandboxed file system within a temporary directory.
// The directory is automatically cleaned up when the test completes.
func NewTestFileSystem(t *testing.T) *TestFileSystem {
	t.Helper()
	return &TestFileSystem{t: t, baseDir: t.TempDir()}
}

// BaseDir returns the sandbox base directory path.
func (f *TestFileSystem) BaseDir() string {
	return f.baseDir
}

// resolvePath maps both absolute and relative paths into the sandbox.
func (f *TestFileSystem) resolvePath(path string) string {
	cleanPath := filepath.Clean(path)
	if filepath.IsAbs(cleanPath) {
		cleanPath = cleanPath[1:]
	}
	return filepath.Join(f.baseDir, cleanPath)
}

func (f *TestFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(f.resolvePath(path))
}

func (f *TestFileSystem) WriteFile(path string, content []byte, _ ports.AccessMode) error {
	resolved := f.resolvePath(path)
	if err := os.MkdirAll(filepath.Dir(resolved), 0700); err != nil {
		return err
	}
	return os.WriteFile(resolved, content, 0600)
}

func (f *TestFileSystem) EnsureDirExists(path string) error {
	return os.MkdirAll(filepath.Dir(f.resolvePath(path)), 0700)
}

func (f *TestFileSystem) FileExists(path string) (bool, error) {
	info, err := os.Stat(f.resolvePath(path))
	if err == nil {
		return !info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (f *TestFileSystem) DirExists(path string) (bool, error) {
	info, err := os.Stat(f.resolvePath(path))
	if err == nil {
		return info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (f *TestFileSystem) RemoveFile(path string) error {
	return os.Remove(f.resolvePath(path))
}

func (f *TestFileSystem) ListFiles(root string, extensions []string) ([]string, error) {
	resolvedRoot := f.resolvePath(root)
	var files []string
	err := filepath.WalkDir(resolvedRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !slices.Contains(extensions, filepath.Ext(path)) {
			return nil
		}
		rel, err := filepath.Rel(resolvedRoot, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	slices.Sort(files)
	return files, err
}

// Put writes text to path inside the sandbox and fails the test on error.
func (f *TestFileSystem) Put(path string, lines ...string) {
	f.t.Helper()
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if err := f.WriteFile(path, []byte(content), ports.ReadWrite); err != nil {
		f.t.Fatalf("failed to write %s: %v", path, err)
	}
}

// Lines reads path inside the sandbox and splits it into lines.
func (f *TestFileSystem) Lines(path string) []string {
	f.t.Helper()
	data, err := f.ReadFile(path)
	if err != nil {
		f.t.Fatalf("failed to read %s: %v", path, err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return []string{}
	}
	return strings.Split(text, "\n")
}

// Exists reports whether path exists inside the sandbox.
func (f *TestFileSystem) Exists(path string) bool {
	f.t.Helper()
	exists, err := f.FileExists(path)
	if err != nil {
		f.t.Fatalf("failed to stat %s: %v", path, err)
	}
	return exists
}
