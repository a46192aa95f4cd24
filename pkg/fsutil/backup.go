package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode selects where backups are kept.
type BackupMode string

const (
	BackupModeSidecar BackupMode = "sidecar" // path + BackupSuffix
	BackupModeNone    BackupMode = "none"
)

// BackupSuffix names sidecar backups.
const BackupSuffix = ".fmtsubst.bak"

// BackupConfig controls CreateBackup.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig is sidecar mode, switched off.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// BackupPath returns the backup location of path, or "" when mode keeps no
// backups. Unknown modes are treated as sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies path to its backup location and reports whether it
// did. An existing backup is kept, so it always holds the content from
// before the first fix. A missing original is not an error.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	backup := BackupPath(path, cfg.Mode)
	if !cfg.Enabled || backup == "" {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	switch _, err := os.Stat(backup); {
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	copied, err := copyFile(ctx, path, backup)
	if err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return copied, nil
}

// RestoreBackup writes the backup of path back over it and reports whether
// a backup existed. The backup itself is left in place.
func RestoreBackup(ctx context.Context, path string, mode BackupMode) (bool, error) {
	backup := BackupPath(path, mode)
	if backup == "" {
		return false, nil
	}
	restored, err := copyFile(ctx, backup, path)
	if err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	return restored, nil
}

// copyFile atomically copies src to dst with src's mode. It returns false
// without error when src does not exist.
func copyFile(ctx context.Context, src, dst string) (bool, error) {
	content, info, err := ReadFile(ctx, src)
	switch {
	case errors.Is(err, ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := WriteAtomic(ctx, dst, content, info.Mode); err != nil {
		return false, err
	}
	return true, nil
}
