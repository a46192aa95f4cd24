package configloader

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "fmtsubst"

// ConfigPaths are the configuration files found for a run. Empty fields
// mean no file was found.
type ConfigPaths struct {
	System   string // /etc/fmtsubst/config.yaml or %ProgramData%\fmtsubst
	User     string // $XDG_CONFIG_HOME/fmtsubst/config.yaml
	Project  string // nearest .fmtsubst.yml above the working directory
	Explicit string // --config
}

// Lookup order within one directory.
//
//nolint:gochecknoglobals // read-only tables
var (
	projectConfigFiles = []string{
		".fmtsubst.yml", ".fmtsubst.yaml", ".fmtsubst.toml",
		"fmtsubst.yml", "fmtsubst.yaml", "fmtsubst.toml",
	}
	dirConfigFiles = []string{"config.yaml", "config.yml", "config.toml"}

	// A .git file marks worktrees and submodules.
	vcsRootMarkers = []string{".git", ".hg", ".svn", ".jj"}
)

// DiscoverPaths finds the system, user and project configuration files for
// workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}
	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), dirConfigFiles),
		User:    firstFile(userConfigDir(), dirConfigFiles),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(cmp.Or(os.Getenv("ProgramData"), `C:\ProgramData`), appName)
	}
	return filepath.Join("/etc", appName)
}

func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// FindProjectConfig walks up from startDir and returns the first project
// config file it finds, or "". The walk stops after a VCS root or the home
// directory has been searched.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := filepath.Abs(cmp.Or(startDir, "."))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}
		if path := firstFile(dir, projectConfigFiles); path != "" {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isVCSRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}
