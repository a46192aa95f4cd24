package reporter

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/fmtsubst/internal/ui/pretty"
	"github.com/yaklabco/fmtsubst/pkg/fix"
	"github.com/yaklabco/fmtsubst/pkg/runner"
)

// maxParentHops bounds "../" segments in diff headers before falling back
// to the base name.
const maxParentHops = 2

// DiffReporter formats results as unified diffs in git style.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
}

func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{opts: opts, styles: opts.styles()}
}

// Report implements Reporter. It returns the number of files with changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}
	var changed, additions, deletions int
	err := r.opts.buffered(func(bw *bufio.Writer) error {
		for _, file := range result.Files {
			switch {
			case file.Error != nil:
				writeFileError(bw, r.styles, r.headerPath(file.Path), file.Error)
			case file.Result != nil && file.Result.Diff.HasChanges():
				changed++
				additions += file.Result.Diff.Additions
				deletions += file.Result.Diff.Deletions
				r.writeDiff(bw, file.Result.Diff)
			}
		}
		if changed > 0 && r.opts.ShowSummary {
			r.writeSummary(bw, changed, additions, deletions)
		}
		return nil
	})
	return changed, err
}

func (r *DiffReporter) writeDiff(bw *bufio.Writer, diff *fix.Diff) {
	path := r.headerPath(diff.Path)
	fmt.Fprintln(bw, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(bw, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(bw, r.styles.DiffAdd.Render("+++ b/"+path))
	for _, hunk := range diff.Hunks {
		fmt.Fprintln(bw, r.styles.DiffHunk.Render(hunk.Header()))
		for _, line := range hunk.Lines {
			fmt.Fprintln(bw, r.styleLine(line))
		}
	}

	fmt.Fprintln(bw)
}

func (r *DiffReporter) styleLine(line fix.DiffLine) string {
	switch line.Kind {
	case fix.DiffLineAdd:
		return r.styles.DiffAdd.Render(line.String())
	case fix.DiffLineRemove:
		return r.styles.DiffRemove.Render(line.String())
	default:
		return r.styles.DiffContext.Render(line.String())
	}
}

// headerPath picks the path shown in diff headers: relative to the working
// directory when one is set, otherwise relative to the process directory.
// Paths that climb too far out are shown by base name.
func (r *DiffReporter) headerPath(path string) string {
	if r.opts.WorkingDir != "" {
		return r.opts.displayPath(path)
	}
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Base(path)
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.Count(rel, "..") > maxParentHops {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

// writeSummary writes a git-style shortstat line.
func (r *DiffReporter) writeSummary(bw *bufio.Writer, files, additions, deletions int) {
	parts := []string{pretty.Plural(files, "file") + " changed"}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(pretty.Plural(additions, "insertion")+"(+)"))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(pretty.Plural(deletions, "deletion")+"(-)"))
	}
	fmt.Fprintln(bw, strings.Join(parts, ", "))
}
