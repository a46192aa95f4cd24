package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/fmtsubst/internal/configloader"
	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/lint"
	"github.com/yaklabco/fmtsubst/pkg/runner"
)

// Process exit codes. The usage, config, internal and I/O codes follow
// sysexits.h.
const (
	ExitSuccess       = 0
	ExitLintErrors    = 1 // error-severity diagnostics
	ExitLintWarnings  = 2 // warnings under --strict
	ExitInvalidUsage  = 64
	ExitConfigError   = 65
	ExitInternalError = 70
	ExitIOError       = 74
)

// Errors that only carry an exit code; the report has already been shown.
var (
	ErrLintIssuesFound   = errors.New("lint issues found")
	ErrLintWarningsFound = errors.New("lint warnings found")
)

// ErrInvalidUsage marks errors caused by bad flags or arguments.
var ErrInvalidUsage = errors.New("invalid usage")

// ExitCodeFromResult picks the exit code for a finished run. Warnings only
// count under strict.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}
	bySeverity := result.Stats.DiagnosticsBySeverity
	switch {
	case bySeverity[string(config.SeverityError)] > 0:
		return ExitLintErrors
	case strict && bySeverity[string(config.SeverityWarning)] > 0:
		return ExitLintWarnings
	default:
		return ExitSuccess
	}
}

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	var invalid *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrLintIssuesFound):
		return ExitLintErrors
	case errors.Is(err, ErrLintWarningsFound):
		return ExitLintWarnings
	case errors.Is(err, configloader.ErrConfigNotFound), errors.As(err, &invalid):
		return ExitConfigError
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case isIOError(err):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

func isIOError(err error) bool {
	for _, target := range []error{fs.ErrNotExist, fs.ErrPermission, lint.ErrFileNotFound, lint.ErrPermissionDenied, lint.ErrWriteFailure} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsSilent reports whether err only signals an exit code and needs no log line.
func IsSilent(err error) bool {
	return errors.Is(err, ErrLintIssuesFound) || errors.Is(err, ErrLintWarningsFound)
}
