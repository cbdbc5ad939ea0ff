package fs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// TempFilePrefix is the prefix used for temporary atomic write files.
	TempFilePrefix = "tusk-tmp-"

	defaultFilePerm = 0644
	defaultDirPerm  = 0755
)

// writeFileAtomic writes data to a file atomically by writing to a temp file
// and then renaming it to the target filename. The parent directory must
// already exist.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	// The temp file must live in the target directory for rename to be atomic.
	tmpFile, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name()) // no-op after a successful rename

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}

	return nil
}

// fileMode returns the permission bits of an existing file, or fallback.
func fileMode(filename string, fallback fs.FileMode) fs.FileMode {
	info, err := os.Stat(filename)
	if err != nil {
		return fallback
	}
	return info.Mode().Perm()
}

// writeJSONFile writes data atomically, creating the parent directory.
func writeJSONFile(filename string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(filename), defaultDirPerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", filename, err)
	}
	return writeFileAtomic(filename, data, fileMode(filename, defaultFilePerm))
}
