package lint

import "github.com/yaklabco/fmtsubst/pkg/config"

// ResolvedRule pairs a Rule with the settings a run uses for it.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is applied to every diagnostic the rule reports.
	Severity config.Severity

	// AutoFix indicates whether the rule's edits are applied.
	AutoFix bool

	// Config is the rule's entry in the configuration, or nil.
	Config *config.RuleConfig
}

// ResolveRules returns the enabled rules of registry with their settings.
//
// Settings are layered in this order, later layers winning:
//   - the rule's built-in defaults;
//   - severity_default, for rules without a configured severity;
//   - the rule's entry in cfg.Rules;
//   - the command-line --enable and --disable lists (disable wins);
//   - the --fix-rules list, which limits auto-fix to the rules it names.
//
// Auto-fix is off for every rule unless cfg.Fix is set. Command-line lists
// accept rule IDs, names, and aliases.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	sel := newSelection(registry, cfg)

	var resolved []ResolvedRule
	for _, rule := range registry.Rules() {
		if rr := sel.resolve(rule, cfg); rr.Enabled {
			resolved = append(resolved, rr)
		}
	}
	return resolved
}

// selection holds the command-line rule lists keyed by canonical rule ID.
type selection struct {
	enable  map[string]bool
	disable map[string]bool
	fix     map[string]bool
}

func newSelection(registry *Registry, cfg *config.Config) selection {
	if cfg == nil {
		return selection{}
	}
	return selection{
		enable:  canonicalIDs(registry, cfg.EnableRules),
		disable: canonicalIDs(registry, cfg.DisableRules),
		fix:     canonicalIDs(registry, cfg.FixRules),
	}
}

// canonicalIDs maps keys to rule IDs. Unknown keys are dropped; a nil
// result means the list was not given.
func canonicalIDs(registry *Registry, keys []string) map[string]bool {
	if len(keys) == 0 {
		return nil
	}
	ids := make(map[string]bool, len(keys))
	for _, key := range keys {
		if id, _, ok := registry.Resolve(key); ok {
			ids[id] = true
		}
	}
	return ids
}

func (s selection) resolve(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
	}
	if cfg == nil {
		return rr
	}

	id := rule.ID()
	if cfg.SeverityDefault != "" {
		rr.Severity = config.Severity(cfg.SeverityDefault)
	}

	if ruleCfg, ok := cfg.Rules[id]; ok {
		rr.Config = &ruleCfg
		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
		if ruleCfg.AutoFix != nil {
			rr.AutoFix = *ruleCfg.AutoFix && rule.CanFix()
		}
	}

	switch {
	case s.disable[id]:
		rr.Enabled = false
	case s.enable[id]:
		rr.Enabled = true
	}

	if s.fix != nil {
		rr.AutoFix = s.fix[id] && rule.CanFix()
	}
	if !cfg.Fix {
		rr.AutoFix = false
	}

	return rr
}
