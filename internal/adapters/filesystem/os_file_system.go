package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"smalipatch/internal/ports"
)

type OsFileSystem struct{}

func ProvideOsFileSystem() *OsFileSystem {
	return &OsFileSystem{}
}

func (f *OsFileSystem) ReadFile(path string) ([]byte, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	return os.ReadFile(path)
}

func (f *OsFileSystem) WriteFile(path string, content []byte, accessMode ports.AccessMode) error {
	path, err := expandHome(path)
	if err != nil {
		return err
	}

	if err := f.EnsureDirExists(path); err != nil {
		return fmt.Errorf("failed to ensure directory exists: %w", err)
	}

	mode := getOsFileModeForAccessMode(accessMode)
	if info, err := os.Stat(path); err == nil {
		// keep the permissions of files we patch in place
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (f *OsFileSystem) EnsureDirExists(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), getOsFileModeForAccessMode(ports.ReadWriteExecute)); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return nil
}

func (f *OsFileSystem) FileExists(path string) (bool, error) {
	info, err := stat(path)
	if err != nil || info == nil {
		return false, err
	}
	return !info.IsDir(), nil
}

func (f *OsFileSystem) DirExists(path string) (bool, error) {
	info, err := stat(path)
	if err != nil || info == nil {
		return false, err
	}
	return info.IsDir(), nil
}

func (f *OsFileSystem) RemoveFile(path string) error {
	path, err := expandHome(path)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

func (f *OsFileSystem) ListFiles(root string, extensions []string) ([]string, error) {
	root, err := expandHome(root)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !slices.Contains(extensions, filepath.Ext(path)) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files in %s: %w", root, err)
	}

	slices.Sort(files)
	return files, nil
}

// stat returns nil info and no error when the path does not exist.
func stat(path string) (os.FileInfo, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err == nil {
		return info, nil
	}
	if os.IsNotExist(err) {
		return nil, nil
	}
	return nil, fmt.Errorf("failed to check if path exists: %w", err)
}

func expandHome(path string) (string, error) {
	if len(path) == 0 || path[:1] != "~" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func getOsFileModeForAccessMode(accessMode ports.AccessMode) os.FileMode {
	switch accessMode {
	case ports.ReadWrite:
		return 0600
	case ports.ReadWriteExecute:
		return 0700
	case ports.ReadAllWriteOwner:
		return 0644
	default:
		return 0600
	}
}
