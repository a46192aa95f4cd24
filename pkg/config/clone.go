package config

import (
	"maps"
	"slices"
)

// Clone returns a deep copy of c. Values nested inside rule options are
// shared with c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	out := *c
	for _, list := range []*[]string{&out.Ignore, &out.Extensions, &out.EnableRules, &out.DisableRules, &out.FixRules} {
		*list = slices.Clone(*list)
	}
	if c.Rules != nil {
		out.Rules = make(map[string]RuleConfig, len(c.Rules))
		for id, rc := range c.Rules {
			out.Rules[id] = RuleConfig{
				Enabled:  clonePtr(rc.Enabled),
				Severity: clonePtr(rc.Severity),
				AutoFix:  clonePtr(rc.AutoFix),
				Options:  maps.Clone(rc.Options),
			}
		}
	}
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
