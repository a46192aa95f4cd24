// Package runner discovers C++ sources and lints them concurrently.
package runner

import "github.com/yaklabco/fmtsubst/pkg/config"

// Options selects the files of a run and how many are processed at once.
type Options struct {
	// Paths are files or directories; empty means ".". Relative paths are
	// resolved against WorkingDir, or the process working directory.
	Paths      []string
	WorkingDir string

	// Extensions lists the source suffixes to pick up, with the leading
	// dot. Empty means config.DefaultExtensions.
	Extensions []string

	// IncludeGlobs, when set, keep only files matching one of them.
	// ExcludeGlobs drop matching files and directories. Both are matched
	// against slash-separated paths relative to WorkingDir.
	IncludeGlobs []string
	ExcludeGlobs []string

	FollowSymlinks bool // walk into symlinked directories
	IncludeVendor  bool // walk into vendor and third_party trees

	// Jobs bounds the number of files processed at once; 0 means one per CPU.
	Jobs int

	// Config is handed to the pipeline for every file.
	Config *config.Config
}

// OptionsFromConfig returns Options for paths using the discovery settings
// of cfg. extraIgnores are excluded in addition to cfg.Ignore.
func OptionsFromConfig(cfg *config.Config, paths []string, extraIgnores ...string) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Paths:         paths,
		Extensions:    cfg.Extensions,
		ExcludeGlobs:  append(append([]string(nil), cfg.Ignore...), extraIgnores...),
		IncludeVendor: cfg.IncludeVendor,
		Jobs:          cfg.Jobs,
		Config:        cfg,
	}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
