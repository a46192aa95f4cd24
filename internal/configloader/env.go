package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/fmtsubst/pkg/config"
)

// envVarPrefix starts every environment variable fmtsubst reads.
const envVarPrefix = "FMTSUBST_"

// envVar binds one FMTSUBST_ variable to the config field it overrides.
type envVar struct {
	suffix      string
	field       string // config file key
	description string
	set         func(cfg *config.Config, value string) error
}

func textVar[T ~string](target func(*config.Config) *T) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		*target(cfg) = T(value)
		return nil
	}
}

func boolVar(target func(*config.Config) *bool) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%q is not a boolean (use true, false, 1 or 0)", value)
		}
		*target(cfg) = b
		return nil
	}
}

func intVar(target func(*config.Config) *int) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%q is not an integer", value)
		}
		*target(cfg) = n
		return nil
	}
}

func listVar(target func(*config.Config) *[]string) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		*target(cfg) = splitList(value)
		return nil
	}
}

// envVars is sorted by suffix.
//
//nolint:gochecknoglobals // read-only table
var envVars = []envVar{
	{"BACKUPS_ENABLED", "backups.enabled", "Enable backups when fixing: true or false",
		boolVar(func(c *config.Config) *bool { return &c.Backups.Enabled })},
	{"BACKUPS_MODE", "backups.mode", "Backup mode: sidecar or none",
		textVar(func(c *config.Config) *string { return &c.Backups.Mode })},
	{"DRY_RUN", "dry_run", "Dry-run mode: true or false",
		boolVar(func(c *config.Config) *bool { return &c.DryRun })},
	{"EXTENSIONS", "extensions", "Comma-separated list of file extensions to lint",
		listVar(func(c *config.Config) *[]string { return &c.Extensions })},
	{"FIX", "fix", "Enable auto-fix: true or false",
		boolVar(func(c *config.Config) *bool { return &c.Fix })},
	{"FORMAT", "format", "Output format: text, json, sarif, diff, or summary",
		textVar(func(c *config.Config) *config.OutputFormat { return &c.Format })},
	{"IGNORE", "ignore", "Comma-separated list of ignore patterns",
		listVar(func(c *config.Config) *[]string { return &c.Ignore })},
	{"INCLUDE_GENERATED", "include_generated", "Lint generated files: true or false",
		boolVar(func(c *config.Config) *bool { return &c.IncludeGenerated })},
	{"INCLUDE_VENDOR", "include_vendor", "Lint vendored directories: true or false",
		boolVar(func(c *config.Config) *bool { return &c.IncludeVendor })},
	{"JOBS", "jobs", "Number of parallel workers (0 = auto)",
		intVar(func(c *config.Config) *int { return &c.Jobs })},
	{"NO_BACKUPS", "no_backups", "Disable backups: true or false",
		boolVar(func(c *config.Config) *bool { return &c.NoBackups })},
	{"RULE_FORMAT", "rule_format", "Rule identifiers in output: name, id, or combined",
		textVar(func(c *config.Config) *config.RuleFormat { return &c.RuleFormat })},
	{"SEVERITY_DEFAULT", "severity_default", "Default severity: error, warning, or info",
		textVar(func(c *config.Config) *string { return &c.SeverityDefault })},
}

// LoadFromEnv applies the FMTSUBST_ variables that are set to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}
	for _, v := range envVars {
		name := envVarPrefix + v.suffix
		value := getenv(name)
		if value == "" {
			continue
		}
		if err := v.set(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, trimming and dropping empty items.
func splitList(value string) []string {
	var items []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// GetEnvVarName returns the variable overriding the config key field, or "".
func GetEnvVarName(field string) string {
	for _, v := range envVars {
		if v.field == field {
			return envVarPrefix + v.suffix
		}
	}
	return ""
}

// EnvVar describes a supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns every supported environment variable sorted by name.
func ListEnvVars() []EnvVar {
	out := make([]EnvVar, len(envVars))
	for i, v := range envVars {
		out[i] = EnvVar{Name: envVarPrefix + v.suffix, Description: v.description}
	}
	return out
}
