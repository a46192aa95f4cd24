package rules

import (
	"fmt"

	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/cxxsrc"
	"github.com/yaklabco/fmtsubst/pkg/lint"
)

// FormatDynamicRule flags calls that FS001 cannot rewrite because the
// format argument is not an ordinary string literal.
type FormatDynamicRule struct {
	lint.BaseRule
}

// NewFormatDynamicRule creates the dynamic format string rule.
func NewFormatDynamicRule() *FormatDynamicRule {
	return &FormatDynamicRule{
		BaseRule: lint.NewBaseRule(
			dynamicRuleID,
			"fmt-format-dynamic",
			"Calls to fmt::format whose format string is not an ordinary string literal need manual migration",
			[]string{"migration", "fmt"},
			false,
		).WithDefaultDisabled().WithDefaultSeverity(config.SeverityInfo),
	}
}

// DefaultOptions returns the configurable options and their defaults.
func (r *FormatDynamicRule) DefaultOptions() map[string]any {
	return map[string]any{
		OptionCallee: DefaultCallee,
	}
}

// Apply reports calls with a computed format argument and calls whose
// literal cannot be decoded, such as wide or UTF-16 literals.
func (r *FormatDynamicRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if !lint.IsCXXFile(ctx.File) {
		return nil, nil
	}

	callee := ctx.OptionString(OptionCallee, DefaultCallee)

	var diags []lint.Diagnostic

	for _, site := range ctx.Calls(cxxsrc.CallMatcher{Callee: callee, Predicate: cxxsrc.NonLiteralArg}) {
		if site.InMacro {
			continue
		}
		message := fmt.Sprintf("format string of '%s' is not a string literal", callee)
		diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.File, site.Arg, message).
			WithSuggestion("rewrite this call by hand").
			Build())
	}

	for _, site := range ctx.Calls(cxxsrc.CallMatcher{Callee: callee, Predicate: cxxsrc.StringLiteralArg}) {
		if site.InMacro || site.LiteralErr == nil {
			continue
		}
		message := fmt.Sprintf("format string of '%s' cannot be converted: %v", callee, site.LiteralErr)
		diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.File, site.Arg, message).
			WithSuggestion("rewrite this call by hand").
			Build())
	}

	lint.SortDiagnostics(diags)
	return diags, nil
}
