package configloader

import (
	"strings"
	"testing"

	"github.com/yaklabco/fmtsubst/pkg/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	severity := "fatal"
	tests := []struct {
		name      string
		mutate    func(*config.Config)
		wantField string
	}{
		{"defaults", func(*config.Config) {}, ""},
		{"format", func(c *config.Config) { c.Format = "table" }, "format"},
		{"rule format", func(c *config.Config) { c.RuleFormat = "long" }, "rule_format"},
		{"severity default", func(c *config.Config) { c.SeverityDefault = "loud" }, "severity_default"},
		{"jobs", func(c *config.Config) { c.Jobs = -1 }, "jobs"},
		{"backup mode", func(c *config.Config) { c.Backups.Mode = "tarball" }, "backups.mode"},
		{"extension without dot", func(c *config.Config) { c.Extensions = []string{".cc", "h"} }, "extensions[1]"},
		{"extension with slash", func(c *config.Config) { c.Extensions = []string{"./cc"} }, "extensions[0]"},
		{"ignore pattern", func(c *config.Config) { c.Ignore = []string{"[oops"} }, "ignore[0]"},
		{"rule severity", func(c *config.Config) {
			c.Rules["FS001"] = config.RuleConfig{Severity: &severity}
		}, "rules.FS001.severity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)
			result := Validate(cfg)

			if tt.wantField == "" {
				if !result.Valid() {
					t.Fatalf("expected valid config, got %v", result.AllMessages())
				}
				return
			}
			if result.Valid() {
				t.Fatalf("expected error on %s", tt.wantField)
			}
			if result.Errors[0].Field != tt.wantField {
				t.Errorf("expected field %s, got %s", tt.wantField, result.Errors[0].Field)
			}
		})
	}
}

func TestValidateWithFile(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Jobs = -2
	result := ValidateWithFile(cfg, ".fmtsubst.yml")

	if result.Valid() {
		t.Fatal("expected invalid config")
	}
	msg := result.Errors[0].Error()
	if !strings.HasPrefix(msg, ".fmtsubst.yml: jobs: ") {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	enabled := true
	base := config.NewConfig()
	base.Rules["FS001"] = config.RuleConfig{Options: map[string]any{"callee": "fmt::format"}}

	override := &config.Config{
		Extensions:    []string{".cpp"},
		IncludeVendor: true,
		Rules: map[string]config.RuleConfig{
			"FS001": {Enabled: &enabled, Options: map[string]any{"target": "absl::StrCat"}},
		},
	}

	merged := merge(base, override)

	if strings.Join(merged.Extensions, ",") != ".cpp" {
		t.Errorf("expected extensions replaced, got %v", merged.Extensions)
	}
	if !merged.IncludeVendor {
		t.Error("expected include_vendor set")
	}
	if merged.SeverityDefault != "" {
		t.Errorf("expected no severity default, got %q", merged.SeverityDefault)
	}

	fs001 := merged.Rules["FS001"]
	if fs001.Enabled == nil || !*fs001.Enabled {
		t.Error("expected FS001 enabled from override")
	}
	if fs001.Options["callee"] != "fmt::format" || fs001.Options["target"] != "absl::StrCat" {
		t.Errorf("expected options deep-merged, got %v", fs001.Options)
	}
	if _, leaked := base.Rules["FS001"].Options["target"]; leaked {
		t.Error("merge mutated base options")
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	for i, v := range vars {
		if !strings.HasPrefix(v.Name, envVarPrefix) || v.Description == "" {
			t.Errorf("bad env var entry %+v", v)
		}
		if i > 0 && vars[i-1].Name >= v.Name {
			t.Errorf("env vars not sorted at %s", v.Name)
		}
	}
	if got := GetEnvVarName("extensions"); got != "FMTSUBST_EXTENSIONS" {
		t.Errorf("GetEnvVarName(extensions) = %q", got)
	}
}
