package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/fmtsubst/internal/logging"
	"github.com/yaklabco/fmtsubst/pkg/subst"
)

type convertFlags struct {
	rawDelimiter string
	textOnly     bool
	strict       bool
}

func newConvertCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [format-string...]",
		Short: "Transcode format strings to absl::Substitute syntax",
		Long: `Transcode fmt-style format strings into absl::Substitute syntax and print
the resulting C++ string literal, one per argument.

Arguments are the decoded contents of the format string, without quotes.
With no arguments the whole of standard input is read as one format string
(a single trailing newline is dropped).

Examples:
  fmtsubst convert '{} of {}'            # prints "$0 of $1"
  fmtsubst convert --text 'x={0} y={0}'  # prints x=$0 y=$0
  printf 'a\nb {}' | fmtsubst convert    # prints a raw literal`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.rawDelimiter, "raw-delimiter", subst.DefaultRawDelimiter,
		"preferred delimiter for raw string literals")
	cmd.Flags().BoolVar(&flags.textOnly, "text", false, "print the transcoded text without quoting")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero when a format string has diagnostics")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, flags *convertFlags) error {
	if flags.rawDelimiter != "" && !subst.ValidRawDelimiter(flags.rawDelimiter) {
		return fmt.Errorf("%w: raw delimiter %q is not a valid C++ raw string delimiter",
			ErrInvalidUsage, flags.rawDelimiter)
	}

	inputs := args
	if len(inputs) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		inputs = []string{strings.TrimSuffix(string(data), "\n")}
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "warn")
	converter := subst.Converter{Encoder: subst.Encoder{RawDelimiter: flags.rawDelimiter}}
	out := cmd.OutOrStdout()

	var lossy int
	for _, input := range inputs {
		result := converter.Convert(input)

		output := result.Body
		if flags.textOnly {
			output = result.Text
		}
		if _, err := fmt.Fprintln(out, output); err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		for _, diag := range result.Diagnostics {
			logger.Warn(diag.Message,
				logging.FieldInput, input,
				logging.FieldKind, string(diag.Kind),
				logging.FieldOffset, diag.Offset,
				logging.FieldSpan, diag.Span,
			)
		}
		if result.HasDiagnostics() {
			lossy++
		}
	}

	if flags.strict && lossy > 0 {
		return ErrLintIssuesFound
	}
	return nil
}
