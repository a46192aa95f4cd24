// Package configloader resolves the configuration of a run from config
// files, the environment and command-line flags, and validates it.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/yaklabco/fmtsubst/internal/logging"
	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/lint"
)

// ErrConfigNotFound is returned when a config file named explicitly does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// LoadOptions controls Load.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Empty means
	// the process working directory.
	WorkingDir string

	// ExplicitPath is the --config file. It must exist.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// Getenv replaces os.Getenv.
	Getenv func(string) string

	// CLIConfig holds the values set by command-line flags.
	CLIConfig *config.Config
}

// LoadResult is the resolved configuration and how it was assembled.
type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string // config files in the order they were merged
	Warnings   []string
}

func (r *LoadResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Load builds the configuration of a run. Later sources override earlier ones:
//
//  1. built-in defaults
//  2. system config (/etc/fmtsubst/config.yaml)
//  3. user config ($XDG_CONFIG_HOME/fmtsubst/config.yaml)
//  4. project config (.fmtsubst.{yml,yaml,toml}, searched upward)
//  5. the --config file
//  6. FMTSUBST_ environment variables
//  7. command-line flags
//
// Rule entries keyed by name or alias are rekeyed by rule ID. The result is
// validated; the first error is returned as a *ValidationError.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		if workDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, layer := range []struct {
		name, path string
		skip       bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	} {
		if layer.skip || layer.path == "" {
			continue
		}
		layerCfg, unknown, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		for _, key := range unknown {
			result.warnf("%s: unknown key %q; it will be ignored", layer.path, key)
		}
		logger.Debug("loaded config", logging.FieldSource, layer.name, logging.FieldPath, layer.path)
		cfg = merge(cfg, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		getenv := opts.Getenv
		if getenv == nil {
			getenv = os.Getenv
		}
		if err := loadFromEnv(cfg, getenv); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	cfg = merge(cfg, opts.CLIConfig)

	rekeyRules(cfg, lint.DefaultRegistry, result)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	logger.Debug("config resolved",
		logging.FieldFiles, len(result.LoadedFrom),
		logging.FieldExtensions, cfg.Extensions,
		logging.FieldFormat, cfg.Format,
	)
	result.Config = cfg
	return result, nil
}

// loadConfigFile decodes path in the syntax its extension names. Syntax
// errors become a *ValidationError.
func loadConfigFile(path string) (*config.Config, []string, error) {
	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	case err != nil:
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	cfg, unknown, err := config.Decode(path, content)
	if err != nil {
		return nil, nil, &ValidationError{FilePath: path, Message: err.Error()}
	}
	return cfg, unknown, nil
}

// rekeyRules stores rule entries under their rule ID. When several keys
// name the same rule, the entry keyed by the ID itself wins, then the
// alphabetically last key; a warning names the keys involved. Unknown keys
// are kept for Validate to report.
func rekeyRules(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 || registry == nil {
		return
	}

	rekeyed := make(map[string]config.RuleConfig, len(cfg.Rules))
	from := make(map[string]string) // rule ID -> key the entry came from
	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		id, _, ok := registry.Resolve(key)
		if !ok {
			rekeyed[key] = cfg.Rules[key]
			continue
		}
		if prev, dup := from[id]; dup {
			result.warnf("duplicate rule configuration: %q and %q both refer to %s", prev, key, id)
			if prev == id {
				continue
			}
		}
		from[id] = key
		rekeyed[id] = cfg.Rules[key]
	}
	cfg.Rules = rekeyed
}
