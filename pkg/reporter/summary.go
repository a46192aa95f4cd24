package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/fmtsubst/internal/ui/pretty"
	"github.com/yaklabco/fmtsubst/pkg/analysis"
)

// Summary table layout, in terminal cells.
const (
	tableWidth   = 78
	nameColWidth = 42
	numColWidth  = 8
	ellipsis     = "…"
)

// SummaryRenderer formats results as per-rule and per-file count tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
}

func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{opts: opts, styles: opts.styles()}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	return r.opts.buffered(func(bw *bufio.Writer) error {
		totals := report.Totals
		if !totals.HasIssues() {
			fmt.Fprintln(bw, r.styles.Success.Render("No issues found")+
				r.styles.Dim.Render(" ("+pretty.Plural(totals.Files, "file")+" checked)"))
			return nil
		}

		columns := []string{"Errors", "Warnings", "Info", "Fixable"}
		r.writeTitle(bw, "Rules", columns)
		for _, rule := range report.ByRule {
			r.writeRow(bw, r.opts.RuleFormat.Identify(rule.RuleID, rule.RuleName), rule.Counts, rule.Fixable)
		}
		fmt.Fprintln(bw)

		r.writeTitle(bw, "Files", columns[:3])
		for _, file := range report.FilesWithIssues(r.opts.SortBy) {
			r.writeRow(bw, file.Path, file.Counts)
		}
		fmt.Fprintln(bw)

		fmt.Fprintln(bw, r.styles.Bold.Render("Total: ")+r.totalsLine(totals))
		return nil
	})
}

func (r *SummaryRenderer) writeTitle(bw *bufio.Writer, title string, columns []string) {
	separator := r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth))

	cells := []string{padRight(title, nameColWidth)}
	for _, col := range columns {
		cells = append(cells, padLeft(col, numColWidth))
	}

	fmt.Fprintln(bw, separator)
	fmt.Fprintln(bw, r.styles.TableHeader.Render(strings.Join(cells, " ")))
	fmt.Fprintln(bw, separator)
}

// writeRow colors the name by its most severe non-zero count.
func (r *SummaryRenderer) writeRow(bw *bufio.Writer, name string, counts analysis.Counts, extra ...int) {
	cell := padRight(truncateLeft(name, nameColWidth), nameColWidth)
	switch {
	case counts.Errors > 0:
		cell = r.styles.TableErrorRow.Render(cell)
	case counts.Warnings > 0:
		cell = r.styles.TableWarnRow.Render(cell)
	}

	cells := []string{cell}
	for _, n := range append([]int{counts.Errors, counts.Warnings, counts.Infos}, extra...) {
		cells = append(cells, padLeft(strconv.Itoa(n), numColWidth))
	}
	fmt.Fprintln(bw, strings.Join(cells, " "))
}

func (r *SummaryRenderer) totalsLine(totals analysis.Totals) string {
	line := pretty.Plural(totals.Issues, "issue") + " in " + pretty.Plural(totals.FilesWithIssues, "file")
	if totals.Fixable > 0 {
		line += ", " + r.styles.Success.Render(fmt.Sprintf("%d fixable", totals.Fixable))
	}
	if totals.Fixed > 0 {
		line += ", " + r.styles.Success.Render(fmt.Sprintf("%d fixed", totals.Fixed))
	}
	return line
}

// padRight pads s with spaces to width terminal cells.
// Padding is applied before styling so ANSI codes do not count.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// padLeft right-aligns s in width terminal cells.
func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

// truncateLeft keeps the tail of s, which for paths is the informative part,
// and marks the cut with an ellipsis.
func truncateLeft(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	keep := width - runewidth.StringWidth(ellipsis)
	runes := []rune(s)
	cells := 0
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if cells+w > keep {
			break
		}
		cells += w
		start--
	}
	return ellipsis + string(runes[start:])
}
