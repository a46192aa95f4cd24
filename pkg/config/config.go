// Package config defines core configuration types for fmtsubst.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Severities lists the valid severities, most severe first.
func Severities() []Severity {
	return []Severity{SeverityError, SeverityWarning, SeverityInfo}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Severity *string        `yaml:"severity,omitempty" toml:"severity,omitempty"`
	AutoFix  *bool          `yaml:"auto_fix,omitempty" toml:"auto_fix,omitempty"`
	Options  map[string]any `yaml:"options,omitempty" toml:"options,omitempty"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode" toml:"mode"` // BackupModeSidecar or BackupModeNone
}

// Backup modes.
const (
	BackupModeSidecar = "sidecar" // copy next to the file before rewriting
	BackupModeNone    = "none"
)

// BackupModes lists the valid backup modes.
func BackupModes() []string {
	return []string{BackupModeSidecar, BackupModeNone}
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// OutputFormats lists the valid output formats in help order.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatSARIF, FormatDiff, FormatSummary}
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "fmt-format-substitute"
	RuleFormatID       RuleFormat = "id"       // "FS001"
	RuleFormatCombined RuleFormat = "combined" // "FS001/fmt-format-substitute"
)

// RuleFormats lists the valid rule identifier formats.
func RuleFormats() []RuleFormat {
	return []RuleFormat{RuleFormatName, RuleFormatID, RuleFormatCombined}
}

// Identify renders a rule identifier in format f. Rules without a name are
// always shown by ID.
func (f RuleFormat) Identify(id, name string) string {
	switch {
	case name == "", f == RuleFormatID:
		return id
	case f == RuleFormatCombined:
		return id + "/" + name
	default:
		return name
	}
}

// DefaultExtensions are the file extensions linted when none are configured.
func DefaultExtensions() []string {
	return []string{
		".cc", ".cpp", ".cxx", ".c++",
		".h", ".hh", ".hpp", ".hxx",
		".ipp", ".inl", ".mm",
	}
}

// Config is the root configuration structure for fmtsubst.
type Config struct {
	// SeverityDefault overrides the built-in severity of every rule that has
	// no severity of its own in Rules. Empty keeps the built-in severities.
	SeverityDefault string `yaml:"severity_default,omitempty" toml:"severity_default,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules" toml:"rules"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore" toml:"ignore"`

	// Extensions lists the file extensions to lint, with leading dots.
	Extensions []string `yaml:"extensions" toml:"extensions"`

	// IncludeVendor lints vendored and third-party directories.
	IncludeVendor bool `yaml:"include_vendor" toml:"include_vendor"`

	// IncludeGenerated lints files that look machine-generated.
	IncludeGenerated bool `yaml:"include_generated" toml:"include_generated"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `yaml:"backups" toml:"backups"`

	// CLI-level options (not persisted to config files).

	// Fix enables auto-fixing of issues.
	Fix bool `yaml:"-" toml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `yaml:"-" toml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-" toml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-" toml:"-"`

	// FixRules limits auto-fixing to specific rule IDs.
	FixRules []string `yaml:"-" toml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rules:      make(map[string]RuleConfig),
		Extensions: DefaultExtensions(),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    BackupModeSidecar,
		},
		Format:     FormatText,
		RuleFormat: RuleFormatName,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}
