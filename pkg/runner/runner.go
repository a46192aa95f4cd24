package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/fmtsubst/internal/logging"
	"github.com/yaklabco/fmtsubst/pkg/lint"
)

// Runner orchestrates multi-file linting using a lint.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// Per-file failures are recorded on the outcome and never stop the run.
// Cancellation stops scheduling new files; outcomes already produced are
// returned along with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logger := logging.FromContext(ctx)
	logger.Debug("processing files",
		logging.FieldFiles, len(files),
		logging.FieldJobs, jobs,
	)

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)

	// Each worker writes only its own slot, so no locking is needed and
	// the final order matches discovery order.
	outcomes := make([]*FileOutcome, len(files))

	group := new(errgroup.Group)
	group.SetLimit(jobs)

	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcome := r.process(ctx, path, opts, pipelineOpts)
			outcomes[i] = &outcome
			return nil
		})
	}
	_ = group.Wait() // workers never return errors

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

// process runs the pipeline for one file.
func (r *Runner) process(
	ctx context.Context,
	path string,
	opts Options,
	pipelineOpts lint.PipelineOptions,
) FileOutcome {
	outcome := FileOutcome{Path: path}

	pr, err := r.Pipeline.ProcessFile(ctx, path, opts.Config, pipelineOpts)
	if err != nil {
		logging.FromContext(ctx).Debug("file failed",
			logging.FieldPath, path,
			logging.FieldError, err,
		)
		outcome.Error = err
		return outcome
	}

	if pr.Skipped {
		logging.FromContext(ctx).Debug("file skipped",
			logging.FieldPath, path,
			logging.FieldReason, pr.SkipReason,
		)
	}
	outcome.Result = pr
	return outcome
}
