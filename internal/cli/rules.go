package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/fmtsubst/internal/logging"
	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/lint"
	"github.com/yaklabco/fmtsubst/pkg/lint/rules"
)

type rulesFlags struct {
	ruleFormat string
	format     string
	packs      bool
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Severity    string         `json:"severity"`
	Enabled     bool           `json:"enabled"`
	Fixable     bool           `json:"fixable"`
	Tags        []string       `json:"tags,omitempty"`
	Options     map[string]any `json:"options,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, descriptions,
default severity, and whether they support auto-fixing.

With --packs, list the rule packs accepted by 'fmtsubst init --pack'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if flags.packs {
				return outputPacks(out)
			}

			infos := rules.RuleInfos(lint.DefaultRegistry)
			if flags.format == formatJSON {
				return outputRulesJSON(out, infos)
			}

			logger := logging.NewInteractiveWithWriter(out)
			ruleFormat := config.RuleFormat(flags.ruleFormat)

			for _, info := range infos {
				fixable := "-"
				if info.CanFix {
					fixable = "yes"
				}
				state := "enabled"
				if !info.Enabled {
					state = "disabled"
				}

				logger.Info(ruleFormat.Identify(info.ID, info.Name),
					logging.FieldSeverity, info.Severity,
					logging.FieldFixable, fixable,
					"default", state,
					logging.FieldDescription, info.Description,
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "combined",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")
	cmd.Flags().BoolVar(&flags.packs, "packs", false, "list rule packs instead of rules")

	return cmd
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(w io.Writer, infos []config.RuleInfo) error {
	out := make([]ruleInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, ruleInfo{
			ID:          info.ID,
			Name:        info.Name,
			Description: info.Description,
			Severity:    string(info.Severity),
			Enabled:     info.Enabled,
			Fixable:     info.CanFix,
			Tags:        info.Tags,
			Options:     info.Options,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}

// outputPacks writes one line per pack followed by its rule settings.
func outputPacks(w io.Writer) error {
	for _, pack := range rules.Packs() {
		ids := make([]string, 0, len(pack.Rules))
		for id, rc := range pack.Rules {
			entry := id
			if rc.Severity != nil {
				entry += "=" + *rc.Severity
			}
			if rc.AutoFix != nil && !*rc.AutoFix {
				entry += " (no fix)"
			}
			ids = append(ids, entry)
		}
		slices.Sort(ids)

		if _, err := fmt.Fprintf(w, "%-8s %s\n         %s\n", pack.Name, pack.Description, strings.Join(ids, ", ")); err != nil {
			return fmt.Errorf("write packs: %w", err)
		}
	}
	return nil
}
