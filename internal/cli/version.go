package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yaklabco/fmtsubst/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit, build date and Go toolchain of this fmtsubst binary.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return err
			}
			logging.NewInteractiveWithWriter(cmd.OutOrStdout()).Info("fmtsubst",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
				logging.FieldGo, runtime.Version(),
			)
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version")

	return cmd
}
