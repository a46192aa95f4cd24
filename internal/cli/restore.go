package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/fmtsubst/internal/configloader"
	"github.com/yaklabco/fmtsubst/internal/logging"
	"github.com/yaklabco/fmtsubst/pkg/fsutil"
	"github.com/yaklabco/fmtsubst/pkg/lint"
	"github.com/yaklabco/fmtsubst/pkg/runner"
)

func newRestoreCommand() *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   "restore [paths...]",
		Short: "Restore files from backups written by lint --fix",
		Long: `Restore source files from the backups written by 'fmtsubst lint --fix'.

Files are discovered the same way lint discovers them. Each file with a
backup is overwritten with the backup content, and the backup is removed
unless --keep is given. Files without a backup are left alone.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(cmd, args, keep)
		},
	}

	cmd.Flags().BoolVar(&keep, "keep", false, "keep backup files after restoring")

	return cmd
}

func runRestore(cmd *cobra.Command, args []string, keep bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logging.Default())

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	opts := runner.OptionsFromConfig(loadResult.Config, args)
	opts.WorkingDir = workDir

	files, err := runner.Discover(ctx, opts)
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}

	mode := fsutil.BackupModeSidecar
	if configured := lint.BackupConfigFromConfig(loadResult.Config).Mode; configured != fsutil.BackupModeNone {
		mode = configured
	}

	logger := logging.NewInteractiveWithWriter(cmd.OutOrStdout())
	var restored int
	for _, path := range files {
		ok, err := fsutil.RestoreBackup(ctx, path, mode)
		if err != nil {
			return fmt.Errorf("restore %s: %w", path, err)
		}
		if !ok {
			continue
		}
		restored++
		logger.Info("restored", logging.FieldPath, path)

		if keep {
			continue
		}
		if err := os.Remove(fsutil.BackupPath(path, mode)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove backup of %s: %w", path, err)
		}
	}

	logger.Info("restore complete", logging.FieldFilesModified, restored)
	return nil
}
