package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode replaces a zero mode in WriteAtomic.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic replaces path with content by renaming a temp file from the
// same directory over it. Readers see either the old or the new content;
// on error path is untouched and the temp file is gone.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}

	tmp, err := writeTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*", content, orDefaultMode(mode))
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func orDefaultMode(mode os.FileMode) os.FileMode {
	if mode == 0 {
		return DefaultFileMode
	}
	return mode
}

// writeTemp writes content to a new synced file in dir and returns its name.
func writeTemp(dir, pattern string, content []byte, mode os.FileMode) (string, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	step, err := "write", writeAll(f, content)
	if err == nil {
		step, err = "sync", f.Sync()
	}
	if closeErr := f.Close(); err == nil && closeErr != nil {
		step, err = "close", closeErr
	}
	if err == nil {
		step, err = "chmod", os.Chmod(f.Name(), mode)
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("%s temp file: %w", step, err)
	}
	return f.Name(), nil
}

func writeAll(f *os.File, content []byte) error {
	_, err := f.Write(content)
	return err
}
