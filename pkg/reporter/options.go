package reporter

import (
	"bufio"
	"io"
	"os"

	"github.com/yaklabco/fmtsubst/internal/ui/pretty"
	"github.com/yaklabco/fmtsubst/pkg/analysis"
	"github.com/yaklabco/fmtsubst/pkg/config"
)

const bufWriterSize = 64 << 10

// Options configures reporter behavior.
type Options struct {
	Writer, ErrorWriter io.Writer

	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// ShowContext prints the source line and a marker under each diagnostic.
	ShowContext bool
	ShowSummary bool
	GroupByFile bool

	// Compact minifies json and sarif output.
	Compact bool

	RuleFormat config.RuleFormat
	SortBy     analysis.SortField

	// Rules feeds the SARIF driver metadata. Nil falls back to
	// config.DefaultRuleInfoProvider.
	Rules       []config.RuleInfo
	ToolVersion string

	// WorkingDir makes reported paths relative when set.
	WorkingDir string
}

// DefaultOptions returns the options the lint command starts from.
func DefaultOptions() Options {
	return Options{
		Writer: os.Stdout, ErrorWriter: os.Stderr,
		Format: FormatText, Color: "auto",
		ShowContext: true, ShowSummary: true, GroupByFile: true,
		RuleFormat: config.RuleFormatName, SortBy: analysis.SortByCount,
		ToolVersion: "dev",
	}
}

func (o Options) styles() *pretty.Styles {
	return pretty.NewStyles(pretty.IsColorEnabled(o.Color, o.Writer))
}

// buffered runs write against a buffer over o.Writer and flushes it,
// reporting the first error of the two.
func (o Options) buffered(write func(*bufio.Writer) error) (err error) {
	bw := bufio.NewWriterSize(o.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()
	return write(bw)
}

func (o Options) displayPath(path string) string {
	return analysis.DisplayPath(path, o.WorkingDir)
}

func (o Options) ruleInfos() []config.RuleInfo {
	switch {
	case o.Rules != nil:
		return o.Rules
	case config.DefaultRuleInfoProvider != nil:
		return config.DefaultRuleInfoProvider()
	}
	return nil
}
