package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/fmtsubst/internal/configloader"
)

// newEnvironmentTopic is a help-only command describing FMTSUBST_* variables.
func newEnvironmentTopic() *cobra.Command {
	var b strings.Builder
	b.WriteString(`Settings can be supplied through environment variables. They override
config files and are overridden by command-line flags.

`)
	for _, v := range configloader.ListEnvVars() {
		fmt.Fprintf(&b, "  %-28s %s\n", v.Name, v.Description)
	}

	return &cobra.Command{
		Use:   "environment",
		Short: "Environment variables read by fmtsubst",
		Long:  strings.TrimRight(b.String(), "\n"),
	}
}
