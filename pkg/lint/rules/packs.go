package rules

import (
	"maps"
	"slices"

	"github.com/yaklabco/fmtsubst/pkg/config"
)

// Pack is a named set of rule settings that `init --pack` writes into a new
// config file.
type Pack struct {
	Name        string
	Description string
	Rules       map[string]config.RuleConfig // keyed by rule ID
}

// MigratePack rewrites what it can and lists the calls left for manual work.
func MigratePack() Pack {
	return newPack("migrate", "Rewrite literal calls and report dynamic ones for manual migration",
		config.SeverityWarning, config.SeverityInfo, true)
}

// StrictPack fails the run while any fmt::format call remains.
func StrictPack() Pack {
	return newPack("strict", "Every remaining call is an error, for CI gates",
		config.SeverityError, config.SeverityError, true)
}

// AuditPack reports calls without ever rewriting them.
func AuditPack() Pack {
	return newPack("audit", "Inventory of calls with auto-fix turned off",
		config.SeverityInfo, config.SeverityInfo, false)
}

// newPack enables both rules at the given severities.
func newPack(name, description string, substitute, dynamic config.Severity, autoFix bool) Pack {
	fs001 := enabledAt(substitute)
	if !autoFix {
		fs001.AutoFix = &autoFix
	}
	return Pack{Name: name, Description: description, Rules: map[string]config.RuleConfig{
		substituteRuleID: fs001,
		dynamicRuleID:    enabledAt(dynamic),
	}}
}

func enabledAt(sev config.Severity) config.RuleConfig {
	on, level := true, string(sev)
	return config.RuleConfig{Enabled: &on, Severity: &level}
}

// Packs returns the built-in packs in display order.
func Packs() []Pack {
	return []Pack{MigratePack(), StrictPack(), AuditPack()}
}

// PackByName returns nil for unknown names.
func PackByName(name string) *Pack {
	packs := Packs()
	if i := slices.IndexFunc(packs, func(p Pack) bool { return p.Name == name }); i >= 0 {
		return &packs[i]
	}
	return nil
}

func PackNames() []string {
	var names []string
	for _, p := range Packs() {
		names = append(names, p.Name)
	}
	return names
}

// ApplyTo overlays the pack onto cfg. Enabled and severity always take the
// pack's value; rule options the pack does not name survive.
func (p Pack) ApplyTo(cfg *config.Config) {
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig, len(p.Rules))
	}
	for id, set := range p.Rules {
		rc := cfg.Rules[id]
		rc.Enabled, rc.Severity = set.Enabled, set.Severity
		if set.AutoFix != nil {
			rc.AutoFix = set.AutoFix
		}
		if set.Options != nil {
			if rc.Options == nil {
				rc.Options = map[string]any{}
			}
			maps.Copy(rc.Options, set.Options)
		}
		cfg.Rules[id] = rc
	}
}
