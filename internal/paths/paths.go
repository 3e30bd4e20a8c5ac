// Package paths centralizes workspace layout and path handling:
// - locating the VQL storage directory by searching upward from a start dir
// - expanding a leading "~" from $HOME
// - resolving asset paths relative to the workspace root
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// StorageDirName is the directory created inside a project by setup.
	StorageDirName = "VQL"
	// DocumentName is the registry document inside the storage directory.
	DocumentName = "vql_storage.json"
	// WorkspaceConfigName is the optional per-workspace config file.
	WorkspaceConfigName = "vql.yaml"
)

// ErrWorkspaceNotFound is returned when no storage directory can be located.
var ErrWorkspaceNotFound = errors.New("VQL directory not found in current directory or ancestors")

// ExpandHome replaces a leading "~" or "~/" with $HOME. Without $HOME the
// path is returned unchanged.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home := os.Getenv("HOME")
	if home == "" {
		return p
	}
	return home + p[1:]
}

// StorageDir returns the storage directory for a workspace root.
func StorageDir(root string) string {
	return filepath.Join(root, StorageDirName)
}

// WorkspaceRoot returns the project directory holding storageDir.
func WorkspaceRoot(storageDir string) string {
	return filepath.Dir(filepath.Clean(storageDir))
}

// HasDocument reports whether root/VQL/vql_storage.json exists.
func HasDocument(root string) bool {
	info, err := os.Stat(filepath.Join(StorageDir(root), DocumentName))
	return err == nil && !info.IsDir()
}

// FindStorageDir walks from start towards the filesystem root and returns
// the first storage directory that holds a registry document.
func FindStorageDir(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}
	for {
		if HasDocument(dir) {
			return StorageDir(dir), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrWorkspaceNotFound
		}
		dir = parent
	}
}

// ResolveAssetPath expands "~" in p and makes it absolute against the
// workspace root of storageDir. The result must be an existing regular file.
func ResolveAssetPath(storageDir, p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", errors.New("asset path cannot be empty")
	}
	resolved := ExpandHome(p)
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(WorkspaceRoot(storageDir), resolved)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("asset file does not exist: %s", resolved)
		}
		return "", fmt.Errorf("stat %s: %w", resolved, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("asset path is not a regular file: %s", resolved)
	}
	return resolved, nil
}
