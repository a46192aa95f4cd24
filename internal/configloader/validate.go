package configloader

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/lint"
)

// ValidationError is a problem with one configuration value.
type ValidationError struct {
	Field   string // dotted path, e.g. "rules.FS001.severity"
	Value   any
	Message string

	// FilePath and Line locate the value when known.
	FilePath string
	Line     int
}

// Error renders "file:line: field: message", leaving out unknown parts.
func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.FilePath != "" {
		b.WriteString(e.FilePath)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	}
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// ValidationResult collects the problems found in a configuration.
// Errors stop loading; warnings are reported and the value is ignored.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// AllMessages returns every problem prefixed with "error: " or "warning: ".
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// oneOf records an error when value is set but not in allowed.
func oneOf[T ~string](r *ValidationResult, field, what string, value T, allowed []T) {
	if value == "" || slices.Contains(allowed, value) {
		return
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	r.fail(field, value, "invalid %s %q; must be one of: %s", what, value, strings.Join(names, ", "))
}

// Validate checks value ranges and enumerations in cfg. Rules that are not
// registered produce warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	oneOf(result, "severity_default", "severity", config.Severity(cfg.SeverityDefault), config.Severities())
	oneOf(result, "format", "format", cfg.Format, config.OutputFormats())
	oneOf(result, "rule_format", "rule format", cfg.RuleFormat, config.RuleFormats())
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	oneOf(result, "backups.mode", "backup mode", cfg.Backups.Mode, config.BackupModes())

	for i, ext := range cfg.Extensions {
		if len(ext) < 2 || ext[0] != '.' || strings.ContainsAny(ext, `/\`) {
			result.fail(fmt.Sprintf("extensions[%d]", i), ext,
				"invalid extension %q; extensions start with a dot, e.g. \".cc\"", ext)
		}
	}

	for _, id := range slices.Sorted(maps.Keys(cfg.Rules)) {
		field := "rules." + id
		if _, ok := lint.DefaultRegistry.Lookup(id); !ok {
			result.warn(field, id, "unknown rule %q; it will be ignored", id)
		}
		switch sev := cfg.Rules[id].Severity; {
		case sev == nil:
		case *sev == "":
			result.fail(field+".severity", "", "severity must not be empty")
		default:
			oneOf(result, field+".severity", "severity", config.Severity(*sev), config.Severities())
		}
	}

	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	return result
}

// ValidateWithFile is Validate with every problem attributed to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
