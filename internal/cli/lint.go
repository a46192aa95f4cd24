package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/fmtsubst/internal/configloader"
	"github.com/yaklabco/fmtsubst/internal/logging"
	"github.com/yaklabco/fmtsubst/pkg/analysis"
	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/lint"
	"github.com/yaklabco/fmtsubst/pkg/lint/rules"
	"github.com/yaklabco/fmtsubst/pkg/parser/cxx"
	"github.com/yaklabco/fmtsubst/pkg/reporter"
	"github.com/yaklabco/fmtsubst/pkg/runner"
)

type lintFlags struct {
	format         string
	ruleFormat     string
	sortBy         string
	ignore         []string
	include        []string
	extensions     []string
	enable         []string
	disable        []string
	fixRules       []string
	strict         bool
	noContext      bool
	compact        bool
	followSymlinks bool
}

func newLintCommand() *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Find and rewrite fmt::format calls",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		Annotations: map[string]string{
			annotationExitCodes: lintExitCodes,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Find fmt::format calls with a literal format string and report or
rewrite them as absl::Substitute calls.

By default, checks C++ sources (.cc, .cpp, .h, .hpp, ...) in the current
directory and subdirectories. Hidden and vendored directories are skipped.

Examples:
  fmtsubst lint                    # Check current directory
  fmtsubst lint src/               # Check src directory
  fmtsubst lint src/main.cc        # Check a single file
  fmtsubst lint --fix              # Rewrite calls in place
  fmtsubst lint --fix --dry-run    # Show the rewrite as a diff
  fmtsubst lint --format sarif     # Output SARIF for code scanning
  fmtsubst lint --strict           # Treat warnings as errors`

const lintExitCodes = `  0   no error-severity issues
  1   error-severity issues found
  2   warnings found with --strict
  64  invalid flags or arguments
  65  configuration file missing or invalid
  70  internal error
  74  a path could not be read or written`

func runLint(cmd *cobra.Command, args []string, cfg *config.Config, flags *lintFlags) error {
	logger := logging.Default()

	// Only set values that were explicitly provided via CLI flags so config
	// files and the environment can supply them otherwise.
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	if cmd.Flags().Changed("ext") {
		cfg.Extensions = flags.extensions
	}
	cfg.Ignore = flags.ignore
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.FixRules = flags.fixRules

	sortBy := analysis.SortField(flags.sortBy)
	if !sortBy.IsValid() {
		return fmt.Errorf("%w: sort %q must be count, alpha, or severity", ErrInvalidUsage, flags.sortBy)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	logger.Debug("configuration loaded",
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldFormat, finalCfg.Format,
	)

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	registry := lint.DefaultRegistry
	engine := lint.NewEngine(cxx.New(), registry)
	lintRunner := runner.New(lint.NewPipeline(engine))

	runOpts := runner.OptionsFromConfig(finalCfg, args)
	runOpts.WorkingDir = workDir
	runOpts.IncludeGlobs = flags.include
	runOpts.FollowSymlinks = flags.followSymlinks

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldExtensions, runOpts.Extensions,
	)

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("lint run failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		GroupByFile: true,
		Compact:     flags.compact,
		RuleFormat:  finalCfg.RuleFormat,
		SortBy:      sortBy,
		Rules:       rules.RuleInfos(registry),
		ToolVersion: toolVersion(cmd),
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, flags.strict) {
	case ExitLintErrors:
		return ErrLintIssuesFound
	case ExitLintWarnings:
		return ErrLintWarningsFound
	default:
		return nil
	}
}

// toolVersion returns the version recorded on the root command.
func toolVersion(cmd *cobra.Command) string {
	if v := cmd.Root().Annotations[annotationVersion]; v != "" {
		return v
	}
	return "dev"
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "rewrite calls in place")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, diff, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only check files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to check (default: C++ sources and headers)")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs to disable")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit auto-fix to specific rule IDs")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&cfg.IncludeVendor, "include-vendor", false, "check vendored and third-party directories")
	cmd.Flags().BoolVar(&cfg.IncludeGenerated, "include-generated", false, "check generated files")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.sortBy, "sort", string(analysis.SortByCount),
		"order of summary tables: count, alpha, severity")
}
