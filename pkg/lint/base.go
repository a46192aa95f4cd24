package lint

import "github.com/yaklabco/fmtsubst/pkg/config"

// BaseRule implements the metadata half of Rule. Concrete rules embed it
// and supply Apply.
type BaseRule struct {
	id, name, desc string
	tags           []string
	fixable        bool
	disabled       bool
	severity       config.Severity // empty means warning
}

// NewBaseRule returns rule metadata that is enabled with warning severity.
// Use WithDefaultDisabled and WithDefaultSeverity to change that.
func NewBaseRule(id, name, desc string, tags []string, fixable bool) BaseRule {
	return BaseRule{id: id, name: name, desc: desc, tags: tags, fixable: fixable}
}

// WithDefaultDisabled returns a copy that only runs when enabled explicitly.
func (r BaseRule) WithDefaultDisabled() BaseRule {
	r.disabled = true
	return r
}

// WithDefaultSeverity returns a copy reporting at sev by default.
func (r BaseRule) WithDefaultSeverity(sev config.Severity) BaseRule {
	r.severity = sev
	return r
}

func (r *BaseRule) ID() string           { return r.id }
func (r *BaseRule) Name() string         { return r.name }
func (r *BaseRule) Description() string  { return r.desc }
func (r *BaseRule) Tags() []string       { return r.tags }
func (r *BaseRule) CanFix() bool         { return r.fixable }
func (r *BaseRule) DefaultEnabled() bool { return !r.disabled }

// DefaultSeverity returns the configured default, or warning.
func (r *BaseRule) DefaultSeverity() config.Severity {
	if r.severity == "" {
		return config.SeverityWarning
	}
	return r.severity
}

// Apply reports nothing. Rules override it.
func (r *BaseRule) Apply(*RuleContext) ([]Diagnostic, error) {
	return nil, nil
}
