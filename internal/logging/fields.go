package logging

// Structured log keys, grouped by what they describe. Keys are snake_case.
const (
	// Files and paths.
	FieldPath, FieldPaths, FieldFiles = "path", "paths", "files"
	FieldInput, FieldSource          = "input", "source"
	FieldWorkingDir, FieldExtensions = "working_dir", "extensions"

	// Failures.
	FieldError, FieldReason = "error", "reason"

	// Flags a run was started with.
	FieldFix, FieldDryRun = "fix", "dry_run"
	FieldJobs, FieldPack  = "jobs", "pack"
	FieldFormat           = "format"

	// A fmt::format call site.
	FieldCallee, FieldKind = "callee", "kind"
	FieldLine, FieldOffset = "line", "offset"
	FieldSpan              = "span"

	// Counters logged when a run finishes.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldFilesModified    = "files_modified"
	FieldDiagnosticsTotal = "diagnostics_total"

	// Build stamp.
	FieldVersion, FieldCommit = "version", "commit"
	FieldBuilt, FieldGo       = "built", "go"

	// Rule listing columns.
	FieldSeverity, FieldFixable, FieldDescription = "severity", "fixable", "description"
)
