package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupSuffix is appended to the source path to form its sidecar backup.
const BackupSuffix = ".solfmt.bak"

// BackupFor returns the sidecar backup path for a source file.
func BackupFor(path string) string {
	return path + BackupSuffix
}

// CreateBackup writes a sidecar backup of the file at path, preserving its
// mode. Creation is idempotent: an existing backup is never overwritten, so
// repeated runs keep the pre-formatting content. It reports whether a new
// backup was written.
func CreateBackup(ctx context.Context, path string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("create backup: %w", ctx.Err())
	default:
	}

	backupPath := BackupFor(path)
	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, stat.Mode()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// RestoreBackup copies a sidecar backup back over the source file. It
// reports false when no backup exists.
func RestoreBackup(ctx context.Context, path string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("restore backup: %w", ctx.Err())
	default:
	}

	backupPath := BackupFor(path)
	content, err := os.ReadFile(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read backup: %w", err)
	}

	stat, err := os.Stat(backupPath)
	if err != nil {
		return false, fmt.Errorf("stat backup: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, stat.Mode()); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	return true, nil
}

// RemoveBackup deletes the sidecar backup for path if one exists.
func RemoveBackup(path string) (bool, error) {
	err := os.Remove(BackupFor(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}

// BackupExists reports whether a sidecar backup exists for path.
func BackupExists(path string) bool {
	_, err := os.Stat(BackupFor(path))
	return err == nil
}
