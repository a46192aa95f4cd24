package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/fmtsubst/internal/logging"
	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	pack   string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new fmtsubst configuration file",
		Long: `Create a new .fmtsubst.yml configuration file in the current directory
with sensible defaults. The file can be customized to enable or disable
rules, change severities, and set the callee and target names.

Examples:
  fmtsubst init                      Create minimal .fmtsubst.yml
  fmtsubst init --full               Create full config with all rules documented
  fmtsubst init --format toml        Create .fmtsubst.toml instead
  fmtsubst init --pack strict        Start from the strict rule pack
  fmtsubst init --output custom.yml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().StringVar(&flags.pack, "pack", "",
		"Start from a rule pack: "+strings.Join(rules.PackNames(), ", "))
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .fmtsubst.yml or .fmtsubst.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractiveWithWriter(cmd.OutOrStdout())

	format := config.FileFormat(flags.format)
	if format != config.FileFormatYAML && format != config.FileFormatTOML {
		return fmt.Errorf("%w: format %q must be yaml or toml", ErrInvalidUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".fmtsubst.yml"
		if format == config.FileFormatTOML {
			outputPath = ".fmtsubst.toml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		overwrite, err := confirmOverwrite(cmd.InOrStdin(), cmd.OutOrStdout(), outputPath)
		if err != nil {
			return err
		}
		if !overwrite {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := initContent(flags, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	switch {
	case flags.pack != "":
		logger.Info("rules configured from pack", logging.FieldPack, flags.pack)
	case flags.full:
		logger.Info("full template includes all rules with documentation")
	}

	logger.Info("run 'fmtsubst rules' to see all available rules")

	return nil
}

// initContent renders the new config file, either a commented template or
// the settings of a rule pack.
func initContent(flags *initFlags, format config.FileFormat) ([]byte, error) {
	if flags.pack == "" {
		content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full, Format: format})
		if err != nil {
			return nil, fmt.Errorf("generate template: %w", err)
		}
		return content, nil
	}

	pack := rules.PackByName(flags.pack)
	if pack == nil {
		return nil, fmt.Errorf("%w: unknown pack %q; available: %s",
			ErrInvalidUsage, flags.pack, strings.Join(rules.PackNames(), ", "))
	}

	cfg := config.NewConfig()
	pack.ApplyTo(cfg)

	body, err := cfg.Encode(format)
	if err != nil {
		return nil, fmt.Errorf("encode pack %s: %w", pack.Name, err)
	}

	header := config.DefaultTemplateHeader() + "\n# Pack " + pack.Name + ": " + pack.Description + "\n\n"
	return append([]byte(header), body...), nil
}

// confirmOverwrite asks before replacing an existing file. Without a
// terminal on stdin it declines so scripts never block.
func confirmOverwrite(in io.Reader, out io.Writer, path string) (bool, error) {
	file, ok := in.(*os.File)
	if !ok {
		return false, nil
	}
	fd, err := safecast.Conv[int](file.Fd())
	if err != nil || !term.IsTerminal(fd) {
		return false, nil
	}

	if _, err := fmt.Fprintf(out, "%s already exists. Overwrite? [y/N] ", path); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
