package configloader

import (
	"cmp"
	"maps"

	"github.com/yaklabco/fmtsubst/pkg/config"
)

// merge lays override on top of base and returns a new Config.
//
// Strings and numbers in override win when non-zero. Booleans can only be
// switched on. Lists in override replace the base list when non-nil. Rule
// entries merge field by field and their options merge key by key.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	out := *base
	out.SeverityDefault = cmp.Or(override.SeverityDefault, base.SeverityDefault)
	out.Format = cmp.Or(override.Format, base.Format)
	out.RuleFormat = cmp.Or(override.RuleFormat, base.RuleFormat)
	out.Jobs = cmp.Or(override.Jobs, base.Jobs)
	out.Backups.Mode = cmp.Or(override.Backups.Mode, base.Backups.Mode)

	out.Fix = base.Fix || override.Fix
	out.DryRun = base.DryRun || override.DryRun
	out.NoBackups = base.NoBackups || override.NoBackups
	out.IncludeVendor = base.IncludeVendor || override.IncludeVendor
	out.IncludeGenerated = base.IncludeGenerated || override.IncludeGenerated
	out.Backups.Enabled = base.Backups.Enabled || override.Backups.Enabled

	replace(&out.Ignore, override.Ignore)
	replace(&out.Extensions, override.Extensions)
	replace(&out.EnableRules, override.EnableRules)
	replace(&out.DisableRules, override.DisableRules)
	replace(&out.FixRules, override.FixRules)

	out.Rules = mergeRules(base.Rules, override.Rules)
	return &out
}

func replace(dst *[]string, src []string) {
	if src != nil {
		*dst = src
	}
}

func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]config.RuleConfig, len(override))
	}
	for id, rc := range override {
		out[id] = mergeRule(out[id], rc)
	}
	return out
}

func mergeRule(base, override config.RuleConfig) config.RuleConfig {
	out := config.RuleConfig{
		Enabled:  cmp.Or(override.Enabled, base.Enabled),
		Severity: cmp.Or(override.Severity, base.Severity),
		AutoFix:  cmp.Or(override.AutoFix, base.AutoFix),
		Options:  base.Options,
	}
	if override.Options != nil {
		out.Options = maps.Clone(base.Options)
		if out.Options == nil {
			out.Options = make(map[string]any, len(override.Options))
		}
		maps.Copy(out.Options, override.Options)
	}
	return out
}
