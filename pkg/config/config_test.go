package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/fmtsubst/pkg/config"
)

func TestRuleFormat_Identify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format config.RuleFormat
		name   string
		want   string
	}{
		{config.RuleFormatName, "fmt-format-substitute", "fmt-format-substitute"},
		{config.RuleFormatID, "fmt-format-substitute", "FS001"},
		{config.RuleFormatCombined, "fmt-format-substitute", "FS001/fmt-format-substitute"},
		{config.RuleFormatCombined, "", "FS001"},
		{config.RuleFormatName, "", "FS001"},
		{"", "fmt-format-substitute", "fmt-format-substitute"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.format.Identify("FS001", tt.name), "format %q name %q", tt.format, tt.name)
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.RuleFormatName, cfg.RuleFormat)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.DefaultExtensions(), cfg.Extensions)
	assert.Contains(t, cfg.Extensions, ".cc")
	assert.Contains(t, cfg.Extensions, ".h")
	assert.False(t, cfg.IncludeVendor)
	assert.True(t, cfg.Backups.Enabled)
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies rules and slices", func(t *testing.T) {
		t.Parallel()

		enabled := true
		severity := "error"
		original := &config.Config{
			Rules: map[string]config.RuleConfig{
				"FS001": {
					Enabled:  &enabled,
					Severity: &severity,
					Options:  map[string]any{"target": "absl::Substitute"},
				},
			},
			Ignore:     []string{"build/**"},
			Extensions: []string{".cc"},
		}

		clone := original.Clone()
		require.NotNil(t, clone)

		newSeverity := "info"
		clone.Rules["FS001"] = config.RuleConfig{Severity: &newSeverity}
		clone.Ignore[0] = "changed"
		clone.Extensions[0] = ".cpp"

		assert.Equal(t, "error", *original.Rules["FS001"].Severity)
		assert.Equal(t, "build/**", original.Ignore[0])
		assert.Equal(t, ".cc", original.Extensions[0])
	})

	t.Run("preserves CLI fields", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{
			Fix:          true,
			DryRun:       true,
			Format:       config.FormatJSON,
			RuleFormat:   config.RuleFormatCombined,
			Jobs:         4,
			EnableRules:  []string{"FS002"},
			DisableRules: []string{"FS001"},
			FixRules:     []string{"FS001"},
			NoBackups:    true,
		}

		clone := original.Clone()
		assert.Equal(t, original, clone)
		assert.NotSame(t, original, clone)
	})
}
