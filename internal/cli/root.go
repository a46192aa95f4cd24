// Package cli implements the fmtsubst command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/fmtsubst/internal/logging"
	"github.com/yaklabco/fmtsubst/internal/ui/pretty"
)

// BuildInfo is the version stamped into the binary at build time.
type BuildInfo struct {
	Version, Commit, Date string
}

// annotationVersion carries BuildInfo.Version on the root command so
// subcommands can embed it in reports.
const annotationVersion = "fmtsubst.version"

const rootLongDescription = `fmtsubst finds fmt::format calls in C++ sources whose format string is a
literal and rewrites them into absl::Substitute calls, transcoding "{}" and
"{N}" placeholders into "$N".

Constructs that cannot be mapped, such as format specs and named arguments,
are kept verbatim and reported. Fixes are checked for conflicts and
re-tokenized before they are written. Use --dry-run to see a diff first.`

// NewRootCommand builds the fmtsubst command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:           "fmtsubst",
		Short:         "Rewrite fmt::format calls into absl::Substitute",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations:   map[string]string{annotationVersion: info.Version},
		PersistentPreRun: func(*cobra.Command, []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
	flags.String("config", "", "path to config file")
	flags.String("color", pretty.ColorAuto, "colorize output: auto, always, never")

	root.AddCommand(
		newLintCommand(),
		newConvertCommand(),
		newRulesCommand(),
		newRestoreCommand(),
		newInitCommand(),
		newVersionCommand(info),
		newEnvironmentTopic(),
	)
	installHelp(root)

	return root
}
