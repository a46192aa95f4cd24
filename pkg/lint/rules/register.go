package rules

import (
	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/lint"
)

const (
	substituteRuleID = "FS001"
	dynamicRuleID    = "FS002"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewFormatSubstituteRule())
	registry.Register(NewFormatDynamicRule())
}

// RegisterAliases registers short spellings accepted wherever a rule ID is.
func RegisterAliases(registry *lint.Registry) {
	registry.RegisterAlias("substitute", substituteRuleID)
	registry.RegisterAlias("dynamic", dynamicRuleID)
}

// RuleInfos describes every rule in registry for config templates.
func RuleInfos(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		info := config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			Tags:        rule.Tags(),
			CanFix:      rule.CanFix(),
		}
		if configurable, ok := rule.(lint.Configurable); ok {
			info.Options = configurable.DefaultOptions()
		}
		infos = append(infos, info)
	}
	return infos
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterAliases(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return RuleInfos(lint.DefaultRegistry)
	}
}
