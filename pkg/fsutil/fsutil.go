// Package fsutil provides the file safety primitives the formatter relies
// on when rewriting sources in place: atomic writes, sidecar backups, and
// detection of concurrent external edits.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrModified indicates the file changed on disk between read and write.
	ErrModified = errors.New("file modified externally")
)

// Snapshot captures the on-disk state of a source file at read time. The
// runner holds one per file so a rewrite can refuse to clobber edits made
// while formatting was in flight.
type Snapshot struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64

	// Hash is the SHA-256 of the content at read time.
	Hash [32]byte
}

// ReadSource reads a source file and records a Snapshot of its state.
func ReadSource(ctx context.Context, path string) ([]byte, *Snapshot, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read source: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		case os.IsPermission(err):
			return nil, nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		default:
			return nil, nil, fmt.Errorf("stat %s: %w", path, err)
		}
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	snap := &Snapshot{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}
	return content, snap, nil
}

// Modified reports whether the file diverged from the snapshot. A missing
// file counts as modified. The mtime and size comparison is a fast path;
// when both match the content is re-hashed to catch same-size edits.
func (s *Snapshot) Modified(ctx context.Context) (bool, error) {
	if s == nil {
		return false, errors.New("nil snapshot")
	}

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("check modified: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", s.Path, err)
	}

	if !stat.ModTime().Equal(s.ModTime) || stat.Size() != s.Size {
		return true, nil
	}

	content, err := os.ReadFile(s.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return sha256.Sum256(content) != s.Hash, nil
}
