// Command fmtsubst rewrites fmt::format calls in C++ sources into
// absl::Substitute calls.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklabco/fmtsubst/internal/cli"
	"github.com/yaklabco/fmtsubst/internal/logging"

	_ "github.com/yaklabco/fmtsubst/pkg/lint/rules" // registers the built-in rules
)

// Set with -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // ldflags needs package variables
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})

	err := root.ExecuteContext(ctx)
	if err != nil && !cli.IsSilent(err) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCodeFromError(err)
}
