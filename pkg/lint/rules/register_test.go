package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/lint"
)

func TestRegisterAll(t *testing.T) {
	registry := lint.NewRegistry()
	RegisterAll(registry)

	assert.Equal(t, []string{"FS001", "FS002"}, registry.IDs())

	rule, ok := registry.GetByID("FS001")
	require.True(t, ok)
	assert.Equal(t, "fmt-format-substitute", rule.Name())
	assert.True(t, rule.DefaultEnabled())
	assert.True(t, rule.CanFix())

	rule, ok = registry.Lookup("fmt-format-dynamic")
	require.True(t, ok)
	assert.Equal(t, "FS002", rule.ID())
	assert.False(t, rule.DefaultEnabled())
	assert.Equal(t, config.SeverityInfo, rule.DefaultSeverity())
}

func TestRegisterAliases(t *testing.T) {
	registry := lint.NewRegistry()
	RegisterAll(registry)
	RegisterAliases(registry)

	tests := []struct {
		key    string
		wantID string
	}{
		{"substitute", "FS001"},
		{"dynamic", "FS002"},
		{"fmt-format-substitute", "FS001"},
		{"FS002", "FS002"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			id, _, ok := registry.Resolve(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}

	assert.Equal(t, []string{"substitute"}, registry.Aliases("FS001"))
}

func TestRuleInfos(t *testing.T) {
	infos := RuleInfos(newRegistry())

	require.Len(t, infos, 2)
	assert.Equal(t, "FS001", infos[0].ID)
	assert.Equal(t, DefaultCallee, infos[0].Options[OptionCallee])
	assert.Equal(t, DefaultTarget, infos[0].Options[OptionTarget])
	assert.Equal(t, "FS002", infos[1].ID)
	assert.False(t, infos[1].Enabled)
}

func TestDefaultRuleInfoProvider(t *testing.T) {
	require.NotNil(t, config.DefaultRuleInfoProvider)

	infos := config.DefaultRuleInfoProvider()
	ids := make([]string, 0, len(infos))
	for _, info := range infos {
		ids = append(ids, info.ID)
	}
	assert.Contains(t, ids, "FS001")
}
