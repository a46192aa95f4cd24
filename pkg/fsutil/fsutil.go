// Package fsutil reads and rewrites source files without losing concurrent
// edits. Reads record a size, mtime and SHA-256 snapshot; writes replace the
// file by renaming a synced temp file over it; originals can be kept as
// sidecar backups.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

var (
	ErrNilFileInfo      = errors.New("nil FileInfo")
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
)

// FileInfo is the state of a file when ReadFile read it.
type FileInfo struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [sha256.Size]byte // of the content
}

// ReadFile returns the content of path and its FileInfo. The stat and the
// content come from the same open file.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, classify("open", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	switch {
	case err != nil:
		return nil, nil, classify("stat", path, err)
	case stat.IsDir():
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	h := sha256.New()
	content, err := io.ReadAll(io.TeeReader(f, h))
	if err != nil {
		return nil, nil, classify("read", path, err)
	}

	info := &FileInfo{Path: path, Mode: stat.Mode(), ModTime: stat.ModTime(), Size: stat.Size()}
	h.Sum(info.Hash[:0])
	return content, info, nil
}

// CheckModified reports whether the file differs from info. A file whose
// size and mtime still match is hashed again. A deleted file has changed.
func CheckModified(ctx context.Context, info *FileInfo) (bool, error) {
	if changed, err := CheckModifiedQuick(ctx, info); err != nil || changed {
		return changed, err
	}

	f, err := os.Open(info.Path)
	if err != nil {
		return false, classify("open", info.Path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return false, classify("read", info.Path, err)
	}
	var sum [sha256.Size]byte
	h.Sum(sum[:0])
	return sum != info.Hash, nil
}

// CheckModifiedQuick is CheckModified without the hash: only size and mtime
// are compared.
func CheckModifiedQuick(ctx context.Context, info *FileInfo) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}

	stat, err := os.Stat(info.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	case err != nil:
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	}
	return stat.Size() != info.Size || !stat.ModTime().Equal(info.ModTime), nil
}

// classify tags err with ErrNotFound or ErrPermissionDenied when it is one.
func classify(op, path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
}
