package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/fix"
	"github.com/yaklabco/fmtsubst/pkg/lint"
	"github.com/yaklabco/fmtsubst/pkg/parser/cxx"
)

// runRule parses src as path, applies rule, and returns its diagnostics
// together with the source after applying every proposed fix.
func runRule(t *testing.T, rule lint.Rule, path, src string, options map[string]any) ([]lint.Diagnostic, string) {
	t.Helper()

	file, err := cxx.New().Parse(context.Background(), path, []byte(src))
	require.NoError(t, err)

	var ruleCfg *config.RuleConfig
	if options != nil {
		ruleCfg = &config.RuleConfig{Options: options}
	}

	ctx := lint.NewRuleContext(context.Background(), file, config.NewConfig(), ruleCfg)
	diags, err := rule.Apply(ctx)
	require.NoError(t, err)

	return diags, string(applyAllFixes(t, []byte(src), diags))
}

// applyAllFixes applies all fix edits from diagnostics to the input content.
func applyAllFixes(t *testing.T, input []byte, diags []lint.Diagnostic) []byte {
	t.Helper()

	var edits []fix.TextEdit
	for _, diag := range diags {
		edits = append(edits, diag.FixEdits...)
	}
	if len(edits) == 0 {
		return input
	}

	accepted, skipped, err := fix.PrepareEditsFiltered(edits, len(input))
	require.NoError(t, err)
	require.Empty(t, skipped, "fix edits must not overlap")

	return fix.ApplyEdits(input, accepted)
}
