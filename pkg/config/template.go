package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes all rules with their documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output syntax: "yaml" (default) or "toml".
	Format FileFormat
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
	CanFix      bool
	Options     map[string]any
}

// RuleInfoProvider is a function that returns rule information.
// This allows decoupling from the lint package to avoid circular imports.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set by the rules package during init.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate creates a commented configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var tw templateWriter
	switch opts.Format {
	case FileFormatTOML:
		tw = &tomlTemplate{}
	case FileFormatYAML, "":
		tw = &yamlTemplate{}
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")

	tw.settings(&buf, opts.Full)
	if opts.Full {
		tw.rules(&buf, getRuleInfos())
	} else {
		tw.exampleRule(&buf)
	}

	return buf.Bytes(), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# fmtsubst configuration
# See: https://github.com/yaklabco/fmtsubst`
}

type templateWriter interface {
	settings(buf *bytes.Buffer, full bool)
	rules(buf *bytes.Buffer, rules []RuleInfo)
	exampleRule(buf *bytes.Buffer)
}

type yamlTemplate struct{}

func (yamlTemplate) settings(buf *bytes.Buffer, full bool) {
	comment := "# "
	if full {
		comment = ""
	}
	buf.WriteString("# Severity for rules without a severity of their own: error, warning, or info\n")
	fmt.Fprintf(buf, "%sseverity_default: warning\n\n", comment)

	buf.WriteString("# File extensions to lint\n")
	fmt.Fprintf(buf, "%sextensions: [%s]\n\n", comment, quotedList(DefaultExtensions()))

	buf.WriteString("# Lint vendored / third_party directories and generated files\n")
	fmt.Fprintf(buf, "%sinclude_vendor: false\n", comment)
	fmt.Fprintf(buf, "%sinclude_generated: false\n\n", comment)

	buf.WriteString("# Backup configuration for auto-fix: sidecar or none\n")
	fmt.Fprintf(buf, "%sbackups:\n%s  enabled: true\n%s  mode: sidecar\n\n", comment, comment, comment)

	buf.WriteString("# File patterns to ignore (glob patterns)\n")
	fmt.Fprintf(buf, "%signore:\n%s  - \"build/**\"\n%s  - \"third_party/**\"\n\n", comment, comment, comment)
}

func (yamlTemplate) rules(buf *bytes.Buffer, rules []RuleInfo) {
	buf.WriteString("# Rule-specific configuration\nrules:\n")
	for _, rule := range rules {
		fmt.Fprintf(buf, "\n  # %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth, "  # "))
		if rule.CanFix {
			buf.WriteString("  # Auto-fix: yes\n")
		}
		fmt.Fprintf(buf, "  %s:\n", rule.ID)
		fmt.Fprintf(buf, "    enabled: %t\n", rule.Enabled)
		fmt.Fprintf(buf, "    severity: %s\n", rule.Severity)
		if len(rule.Options) > 0 {
			buf.WriteString("    options:\n")
			for _, key := range sortedKeys(rule.Options) {
				fmt.Fprintf(buf, "      %s: %s\n", key, literal(rule.Options[key]))
			}
		}
	}
}

func (yamlTemplate) exampleRule(buf *bytes.Buffer) {
	buf.WriteString(`# Rule-specific configuration
# rules:
#   FS001:
#     severity: error
#     options:
#       callee: "fmt::format"
#       target: "absl::Substitute"
#   FS002:
#     enabled: true
`)
}

type tomlTemplate struct{}

func (tomlTemplate) settings(buf *bytes.Buffer, full bool) {
	comment := "# "
	if full {
		comment = ""
	}
	buf.WriteString("# Severity for rules without a severity of their own: error, warning, or info\n")
	fmt.Fprintf(buf, "%sseverity_default = \"warning\"\n\n", comment)

	buf.WriteString("# File extensions to lint\n")
	fmt.Fprintf(buf, "%sextensions = [%s]\n\n", comment, quotedList(DefaultExtensions()))

	buf.WriteString("# Lint vendored / third_party directories and generated files\n")
	fmt.Fprintf(buf, "%sinclude_vendor = false\n", comment)
	fmt.Fprintf(buf, "%sinclude_generated = false\n\n", comment)

	buf.WriteString("# File patterns to ignore (glob patterns)\n")
	fmt.Fprintf(buf, "%signore = [\"build/**\", \"third_party/**\"]\n\n", comment)

	buf.WriteString("# Backup configuration for auto-fix: sidecar or none\n")
	fmt.Fprintf(buf, "%s[backups]\n%senabled = true\n%smode = \"sidecar\"\n", comment, comment, comment)
}

func (tomlTemplate) rules(buf *bytes.Buffer, rules []RuleInfo) {
	for _, rule := range rules {
		fmt.Fprintf(buf, "\n# %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(buf, "# %s\n", wrapComment(rule.Description, commentWrapWidth, "# "))
		fmt.Fprintf(buf, "[rules.%s]\n", rule.ID)
		fmt.Fprintf(buf, "enabled = %t\n", rule.Enabled)
		fmt.Fprintf(buf, "severity = %q\n", rule.Severity)
		if len(rule.Options) > 0 {
			fmt.Fprintf(buf, "\n[rules.%s.options]\n", rule.ID)
			for _, key := range sortedKeys(rule.Options) {
				fmt.Fprintf(buf, "%s = %s\n", key, literal(rule.Options[key]))
			}
		}
	}
}

func (tomlTemplate) exampleRule(buf *bytes.Buffer) {
	buf.WriteString(`
# Rule-specific configuration
# [rules.FS001]
# severity = "error"
#
# [rules.FS001.options]
# callee = "fmt::format"
# target = "absl::Substitute"
`)
}

// getRuleInfos returns information about all registered rules, sorted by ID.
func getRuleInfos() []RuleInfo {
	if DefaultRuleInfoProvider == nil {
		return nil
	}
	rules := DefaultRuleInfoProvider()
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID < rules[j].ID
	})
	return rules
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int, continuation string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n"+continuation)
}

func quotedList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return strings.Join(quoted, ", ")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// literal renders a scalar option value in syntax valid for both YAML and TOML.
func literal(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}
