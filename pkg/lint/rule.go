// Package lint runs fmt migration rules over C++ sources and applies their
// fixes safely.
package lint

import "github.com/yaklabco/fmtsubst/pkg/config"

// Rule is a check run against every source file.
type Rule interface {
	ID() string   // stable identifier, e.g. "FS001"
	Name() string // kebab-case name, e.g. "fmt-format-substitute"
	Description() string
	Tags() []string

	DefaultEnabled() bool
	DefaultSeverity() config.Severity

	// CanFix reports whether the rule's diagnostics carry edits.
	CanFix() bool

	// Apply returns the rule's findings for ctx.File. Findings are not
	// errors; an error means the rule itself failed. Long scans should
	// stop once ctx.Cancelled reports true.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}

// Configurable is implemented by rules that take options. The map lists
// every option key with its default.
type Configurable interface {
	DefaultOptions() map[string]any
}
