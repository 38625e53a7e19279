// Package fsutil provides the atomic persistence primitive shared by all
// asset writers: content is staged in a temporary file next to the
// destination and moved into place with a rename, so readers never observe a
// half-written artifact. Unchanged content is detected and left untouched to
// preserve the destination's modification time.
package fsutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Outcome describes what WriteFileAtomic did with the destination.
type Outcome int

const (
	// Created means the destination did not exist and was written.
	Created Outcome = iota
	// Updated means the destination existed with different content and was replaced.
	Updated
	// Identical means the destination already had the exact content; nothing
	// was touched and its mtime is preserved.
	Identical
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "create"
	case Updated:
		return "update"
	case Identical:
		return "identical"
	default:
		return "unknown"
	}
}

// WriteFileAtomic persists data to dest with the given permissions. Parent
// directories are created as needed. The temporary staging file is removed on
// every failure path; on success it becomes the destination via rename.
func WriteFileAtomic(dest string, data []byte, perm os.FileMode) (Outcome, error) {
	existing, err := os.ReadFile(dest)
	exists := err == nil
	if exists && bytes.Equal(existing, data) {
		return Identical, nil
	}

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create destination directory: %w", err)
	}

	// Stage in the destination's directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(dir, ".assetforge-*")
	if err != nil {
		return 0, fmt.Errorf("create staging file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("write staging file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("chmod staging file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close staging file: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return 0, fmt.Errorf("rename staging file: %w", err)
	}

	if exists {
		return Updated, nil
	}
	return Created, nil
}

// PersistFile reads a staged file and persists its content to dest through
// WriteFileAtomic. The staging file itself is left to the caller's cleanup.
func PersistFile(staged, dest string, perm os.FileMode) (Outcome, error) {
	data, err := os.ReadFile(staged)
	if err != nil {
		return 0, fmt.Errorf("read staged file: %w", err)
	}
	return WriteFileAtomic(dest, data, perm)
}
