package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/fmtsubst/internal/logging"
	"github.com/yaklabco/fmtsubst/pkg/cxxsrc"
	"github.com/yaklabco/fmtsubst/pkg/fix"
	"github.com/yaklabco/fmtsubst/pkg/lint"
	"github.com/yaklabco/fmtsubst/pkg/subst"
)

// Rule option keys and defaults shared by the fmt rules.
const (
	OptionCallee       = "callee"
	OptionTarget       = "target"
	OptionRawDelimiter = "raw_delimiter"

	DefaultCallee = "fmt::format"
	DefaultTarget = "absl::Substitute"
)

// FormatSubstituteRule rewrites fmt::format calls with a literal format
// string into absl::Substitute calls.
type FormatSubstituteRule struct {
	lint.BaseRule
}

// NewFormatSubstituteRule creates the fmt::format to absl::Substitute rule.
func NewFormatSubstituteRule() *FormatSubstituteRule {
	return &FormatSubstituteRule{
		BaseRule: lint.NewBaseRule(
			substituteRuleID,
			"fmt-format-substitute",
			"Calls to fmt::format with a literal format string should use absl::Substitute",
			[]string{"migration", "fmt"},
			true,
		),
	}
}

// DefaultOptions returns the configurable options and their defaults.
func (r *FormatSubstituteRule) DefaultOptions() map[string]any {
	return map[string]any{
		OptionCallee:       DefaultCallee,
		OptionTarget:       DefaultTarget,
		OptionRawDelimiter: subst.DefaultRawDelimiter,
	}
}

// Apply reports every rewritable call and proposes the rewrite.
//
// Each call yields one fixable diagnostic carrying two edits: the callee
// and the format argument. Constructs the target cannot express are kept
// verbatim and reported as separate diagnostics without a fix.
func (r *FormatSubstituteRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if !lint.IsCXXFile(ctx.File) {
		return nil, nil
	}

	callee := ctx.OptionString(OptionCallee, DefaultCallee)
	target := ctx.OptionString(OptionTarget, DefaultTarget)
	converter := subst.Converter{
		Encoder: subst.Encoder{RawDelimiter: ctx.OptionString(OptionRawDelimiter, subst.DefaultRawDelimiter)},
	}
	logger := logging.FromContext(ctx.Ctx)

	sites := ctx.Calls(cxxsrc.CallMatcher{Callee: callee, Predicate: cxxsrc.StringLiteralArg})

	var diags []lint.Diagnostic
	for _, site := range sites {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}
		if !site.Replaceable() {
			continue
		}

		result := converter.Convert(site.Literal)

		builder := fix.NewEditBuilder()
		builder.ReplaceRange(site.Callee.StartOffset, site.Callee.EndOffset, target)
		builder.ReplaceRange(site.Arg.StartOffset, site.Arg.EndOffset, result.Body)

		message := fmt.Sprintf("call '%s' instead of '%s'", target, callee)
		diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.File, site.Call, message).
			WithSuggestion(target+"("+result.Body+", ...)").
			WithFix(builder).
			Build())

		for _, d := range result.Diagnostics {
			rng := literalRange(ctx.File, site, d.Offset, len(d.Span))
			diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.File, rng, d.String()).Build())
		}
		diags = append(diags, r.dollarDiagnostics(ctx, site, target)...)

		logger.Debug("rewrite call",
			logging.FieldPath, ctx.File.Path,
			logging.FieldLine, ctx.File.LineAt(site.Callee.StartOffset).Line,
			logging.FieldCallee, site.Name,
			"lossy", result.HasDiagnostics(),
			"raw", result.NeedsRawEncoding,
		)
	}

	return diags, nil
}

// dollarDiagnostics warns about each '$' in the format string, which the
// target reads as the start of a placeholder.
func (r *FormatSubstituteRule) dollarDiagnostics(ctx *lint.RuleContext, site cxxsrc.CallSite, target string) []lint.Diagnostic {
	var diags []lint.Diagnostic
	message := fmt.Sprintf("'$' is a placeholder marker in '%s' /$/", target)

	for offset := 0; ; {
		idx := strings.IndexByte(site.Literal[offset:], '$')
		if idx < 0 {
			return diags
		}
		offset += idx
		rng := literalRange(ctx.File, site, offset, 1)
		diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.File, rng, message).
			WithSuggestion("write '$$' for a literal dollar sign").
			Build())
		offset++
	}
}

// literalRange maps a span of the decoded literal to source. When the span
// cannot be located exactly, the whole argument is used.
func literalRange(file *cxxsrc.File, site cxxsrc.CallSite, offset, length int) cxxsrc.SourceRange {
	start := lint.ArgumentOffset(file, site, offset)
	if start == site.Arg.StartOffset {
		return site.Arg
	}
	end := min(start+length, site.Arg.EndOffset-1)
	return cxxsrc.SourceRange{StartOffset: start, EndOffset: end}
}
