// Package atomicfile writes whole documents so that readers never observe a
// partially written file.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPerm is used when neither the caller nor an existing file supplies a mode.
const DefaultPerm os.FileMode = 0o644

// WriteFile writes data to path by writing a temporary sibling file and
// renaming it over path.
//
// If perm is 0 the mode of an existing file at path is kept, otherwise
// DefaultPerm is used. The temporary file is removed on any failure.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		perm = existingPerm(path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	// Some filesystems reject chmod; the write still matters more.
	_ = tmp.Chmod(perm)

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := replace(tmpPath, path); err != nil {
		return err
	}

	committed = true
	return nil
}

func existingPerm(path string) os.FileMode {
	if st, err := os.Stat(path); err == nil {
		return st.Mode().Perm()
	}
	return DefaultPerm
}

// replace renames src over dst. Windows refuses to rename onto an existing
// file, so a failed rename is retried once after removing dst (not atomic there).
func replace(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	_ = os.Remove(dst)
	if err2 := os.Rename(src, dst); err2 != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
