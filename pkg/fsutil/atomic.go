package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the mode used when the caller passes 0.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic writes content to a temp file next to path and renames it into
// place, so readers see either the old or the new content. On error the
// original file is left untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	done := false
	defer func() {
		if !done {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	done = true
	return nil
}

// ReplaceFile writes content over the file described by info. It refuses with
// ErrFileModified when the file changed since it was read, and creates a
// backup first when backups are enabled.
func ReplaceFile(
	ctx context.Context,
	info *FileInfo,
	content []byte,
	backup BackupConfig,
	strict bool,
) (backupCreated bool, err error) {
	modified, err := CheckModified(ctx, info, strict)
	if err != nil {
		return false, err
	}
	if modified {
		return false, fmt.Errorf("%w: %s", ErrFileModified, info.Path)
	}

	backupCreated, err = CreateBackup(ctx, info.Path, backup)
	if err != nil {
		return false, err
	}

	if err := WriteAtomic(ctx, info.Path, content, info.Mode); err != nil {
		return backupCreated, err
	}
	return backupCreated, nil
}
