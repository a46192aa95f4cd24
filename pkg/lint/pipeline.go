package lint

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/fix"
	"github.com/yaklabco/fmtsubst/pkg/fsutil"
	"github.com/yaklabco/fmtsubst/pkg/langdetect"
)

// DefaultMaxFixPasses bounds the lint-and-rewrite loop. Rewritten calls stop
// matching, so a second pass only picks up edits an earlier pass rejected as
// overlapping.
const DefaultMaxFixPasses = 10

// Skip reasons reported on PipelineResult.
const (
	SkipReasonGenerated     = "generated file"
	skipReasonChangedOnDisk = "file modified during processing"
)

// Errors returned by ProcessFile, wrapping the underlying cause.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrParseFailure     = errors.New("parse failure")
	ErrWriteFailure     = errors.New("write failure")
)

// PipelineResult describes what happened to one source file.
type PipelineResult struct {
	// FileResult is the lint result of the last pass. After a successful
	// fix it describes the rewritten source.
	*FileResult

	Path string

	// OriginalInfo is the stat and hash taken when the file was read.
	OriginalInfo *fsutil.FileInfo

	// Modified reports that at least one edit was applied in memory;
	// ModifiedContent then holds the rewritten source.
	Modified        bool
	ModifiedContent []byte

	// Diff is set in dry-run mode when the source would change.
	Diff *fix.Diff

	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool

	// Counters summed over all fix passes.
	FixPasses         int
	TotalEditsApplied int
	DiagnosticsFixed  int
}

// Summary returns a one-phrase status for the file.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// skip marks the file skipped and drops any pending rewrite.
func (pr *PipelineResult) skip(reason string) {
	pr.Skipped = true
	pr.SkipReason = reason
	pr.Modified = false
	pr.ModifiedContent = nil
}

// PipelineOptions controls how ProcessFile treats a file.
type PipelineOptions struct {
	Fix    bool
	DryRun bool
	Backup fsutil.BackupConfig

	// StrictRaceDetection compares content hashes before writing instead of
	// only the size and modification time.
	StrictRaceDetection bool

	// ReParseAfterFix tokenizes the rewritten source and refuses to write it
	// when that fails.
	ReParseAfterFix bool

	// SkipGenerated leaves machine-generated sources alone.
	SkipGenerated bool

	// MaxFixPasses overrides DefaultMaxFixPasses when positive.
	MaxFixPasses int
}

// DefaultPipelineOptions reports without fixing and keeps every safety check on.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
		ReParseAfterFix:     true,
		SkipGenerated:       true,
	}
}

// PipelineOptionsFromConfig derives pipeline options from a merged config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	opts := DefaultPipelineOptions()
	if cfg == nil {
		return opts
	}
	opts.Fix = cfg.Fix
	opts.DryRun = cfg.DryRun
	opts.Backup = BackupConfigFromConfig(cfg)
	opts.SkipGenerated = !cfg.IncludeGenerated
	return opts
}

// BackupConfigFromConfig maps the backups section and --no-backups onto
// fsutil's backup settings.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// Pipeline lints one file at a time and, in fix mode, rewrites it on disk
// without losing concurrent edits.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline returns a pipeline driving engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// fileRun is the state one ProcessFile or ProcessContent call threads
// through its steps.
type fileRun struct {
	path   string
	cfg    *config.Config
	opts   PipelineOptions
	result *PipelineResult
}

// ProcessFile reads path, lints it, and in fix mode rewrites it.
//
// Generated files are skipped. Rewrites are re-tokenized when
// opts.ReParseAfterFix is set and only shown as a diff in dry-run mode.
// A file that changed on disk since it was read is skipped instead of
// written. The write itself is atomic and optionally preceded by a backup.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, cfg *config.Config, opts PipelineOptions) (*PipelineResult, error) {
	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, classifyReadError(err)
	}

	run := &fileRun{path, cfg, opts, &PipelineResult{Path: path, OriginalInfo: info}}
	if opts.SkipGenerated && langdetect.IsGenerated(path, original) {
		run.result.skip(SkipReasonGenerated)
		return run.result, nil
	}

	rewritten, err := p.rewrite(ctx, run, original)
	switch {
	case err != nil:
		return nil, err
	case rewritten == nil:
	case opts.DryRun:
		run.result.Diff = fix.GenerateDiff(path, original, rewritten)
	default:
		if err := p.commit(ctx, run, rewritten, info); err != nil {
			return nil, err
		}
	}
	return run.result, nil
}

// ProcessContent lints content that is already in memory. It never touches
// the file system; in dry-run mode the result carries a diff.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, content []byte, cfg *config.Config, opts PipelineOptions) (*PipelineResult, error) {
	run := &fileRun{path, cfg, opts, &PipelineResult{Path: path}}
	rewritten, err := p.rewrite(ctx, run, content)
	if err != nil {
		return nil, err
	}
	if rewritten != nil && opts.DryRun {
		run.result.Diff = fix.GenerateDiff(path, content, rewritten)
	}
	return run.result, nil
}

// rewrite runs the fix passes and re-parses their output. It returns nil
// when there is nothing to write.
func (p *Pipeline) rewrite(ctx context.Context, run *fileRun, content []byte) ([]byte, error) {
	rewritten, err := p.fixPasses(ctx, run, content)
	if err != nil || !run.result.Modified {
		return nil, err
	}
	if run.opts.ReParseAfterFix {
		if _, err := p.Engine.Parser.Parse(ctx, run.path, rewritten); err != nil {
			run.result.skip("re-parse failed: " + err.Error())
			return nil, nil
		}
	}
	return rewritten, nil
}

// fixPasses lints content and, in fix mode, applies the accepted edits and
// lints again until a pass produces no edits or the pass limit is reached.
func (p *Pipeline) fixPasses(ctx context.Context, run *fileRun, content []byte) ([]byte, error) {
	res := run.result
	for range cmp.Or(max(run.opts.MaxFixPasses, 0), DefaultMaxFixPasses) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}
		linted, err := p.Engine.LintFile(ctx, run.path, content, run.cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		res.FileResult = linted
		if !run.opts.Fix || !linted.HasFixes() {
			break
		}
		content = fix.ApplyEdits(content, linted.Edits)
		res.Modified = true
		res.FixPasses++
		res.TotalEditsApplied += len(linted.Edits)
		res.DiagnosticsFixed += linted.FixedCount
	}
	if res.Modified {
		res.ModifiedContent = content
	}
	return content, nil
}

// commit writes rewritten back unless the file changed on disk since it
// was read.
func (p *Pipeline) commit(ctx context.Context, run *fileRun, rewritten []byte, info *fsutil.FileInfo) error {
	changed, err := changedOnDisk(ctx, info, run.opts.StrictRaceDetection)
	if err != nil {
		return err
	}
	if changed {
		run.result.skip(skipReasonChangedOnDisk)
		return nil
	}
	if run.opts.Backup.Enabled {
		if run.result.BackupCreated, err = fsutil.CreateBackup(ctx, run.path, run.opts.Backup); err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
	}
	if err := fsutil.WriteAtomic(ctx, run.path, rewritten, info.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	run.result.Written = true
	return nil
}

func changedOnDisk(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	check := fsutil.CheckModifiedQuick
	if strict {
		check = fsutil.CheckModified
	}
	changed, err := check(ctx, info)
	if err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}
	return changed, nil
}

// classifyReadError tags a read failure with ErrFileNotFound or
// ErrPermissionDenied when it is one of those.
func classifyReadError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsPipelineError reports whether err carries one of the pipeline errors.
func IsPipelineError(err error) bool {
	for _, target := range []error{ErrFileNotFound, ErrPermissionDenied, ErrParseFailure, ErrWriteFailure} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
