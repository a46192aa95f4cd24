package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/fmtsubst/internal/ui/pretty"
	"github.com/yaklabco/fmtsubst/pkg/runner"
)

// TextReporter prints diagnostics grouped by file for a terminal.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
}

func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{opts: opts, styles: opts.styles()}
}

// Report implements Reporter. It returns the number of diagnostics printed.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	var total int
	err := r.opts.buffered(func(bw *bufio.Writer) error {
		if result == nil || len(result.Files) == 0 {
			if r.opts.ShowSummary {
				fmt.Fprintln(bw, r.styles.Success.Render("No files to check."))
			}
			return nil
		}
		for _, file := range result.Files {
			total += r.writeFile(bw, file)
		}
		if r.opts.ShowSummary {
			fmt.Fprint(bw, r.styles.FormatSummaryOneLine(result.Stats))
		}
		return nil
	})
	return total, err
}

func (r *TextReporter) writeFile(bw *bufio.Writer, file runner.FileOutcome) int {
	path := r.opts.displayPath(file.Path)
	if file.Error != nil {
		writeFileError(bw, r.styles, path, file.Error)
		return 0
	}
	if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
		return 0
	}

	diags := file.Result.Diagnostics
	if r.opts.GroupByFile {
		fmt.Fprintln(bw, r.styles.FormatFileHeader(path, len(diags)))
	}
	for _, diag := range diags {
		var line string
		if r.opts.ShowContext && file.Result.File != nil {
			line = string(file.Result.File.LineContent(diag.StartLine))
		}
		diag.FilePath = path
		fmt.Fprint(bw, r.styles.FormatDiagnosticWithFormat(&diag, r.opts.ShowContext, line, r.opts.RuleFormat))
	}
	if r.opts.GroupByFile {
		fmt.Fprintln(bw)
	}
	return len(diags)
}

func writeFileError(bw *bufio.Writer, styles *pretty.Styles, path string, err error) {
	fmt.Fprintf(bw, "%s: %s\n", styles.FilePath.Render(path), styles.Error.Render("error: "+err.Error()))
}
