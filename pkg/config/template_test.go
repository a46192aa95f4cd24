package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/fmtsubst/pkg/config"
)

func TestGenerateTemplate_ParsesBack(t *testing.T) {
	t.Parallel()

	for _, format := range []config.FileFormat{config.FileFormatYAML, config.FileFormatTOML} {
		for _, full := range []bool{false, true} {
			data, err := config.GenerateTemplate(config.TemplateOptions{Full: full, Format: format})
			require.NoError(t, err)
			assert.Contains(t, string(data), "# fmtsubst configuration")

			cfg, _, err := config.Decode("config."+string(format), data)
			require.NoError(t, err, "format=%s full=%t", format, full)
			if full {
				assert.Equal(t, "warning", cfg.SeverityDefault)
				assert.Equal(t, config.DefaultExtensions(), cfg.Extensions)
			}
		}
	}
}

func TestGenerateTemplate_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
	require.Error(t, err)
}
