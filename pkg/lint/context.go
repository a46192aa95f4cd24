package lint

import (
	"context"

	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/cxxsrc"
)

// RuleContext is what a rule sees of the file it runs against. A new one
// is made for every rule invocation, which is why it carries Ctx.
type RuleContext struct {
	Ctx  context.Context
	File *cxxsrc.File

	// Config is the merged run configuration; RuleConfig is this rule's
	// entry in it, or nil.
	Config     *config.Config
	RuleConfig *config.RuleConfig

	calls *CallCache
}

// NewRuleContext returns a context for running one rule against file.
func NewRuleContext(
	ctx context.Context,
	file *cxxsrc.File,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	return &RuleContext{Ctx: ctx, File: file, Config: cfg, RuleConfig: ruleCfg}
}

// Cancelled reports whether the run has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	return rc.Ctx.Err() != nil
}

// Option returns the raw value configured for key, or def.
func (rc *RuleContext) Option(key string, def any) any {
	if rc.RuleConfig == nil {
		return def
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return def
}

// OptionString returns the string configured for key. Empty strings and
// values of another type yield def.
func (rc *RuleContext) OptionString(key, def string) string {
	if s, ok := rc.Option(key, def).(string); ok && s != "" {
		return s
	}
	return def
}

// Calls returns the call sites matching m. Results are shared with the
// other rules run against the same file and must not be modified.
func (rc *RuleContext) Calls(m cxxsrc.CallMatcher) []cxxsrc.CallSite {
	if rc.calls == nil {
		rc.calls = NewCallCache(rc.File)
	}
	return rc.calls.Calls(m)
}
