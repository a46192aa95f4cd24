package fix

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// DiffLineKind classifies a line of a hunk.
type DiffLineKind int

const (
	// DiffLineContext is a line present in both versions.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line only in the modified version.
	DiffLineAdd

	// DiffLineRemove is a line only in the original version.
	DiffLineRemove
)

// prefix returns the unified diff marker for the kind.
func (k DiffLineKind) prefix() byte {
	switch k {
	case DiffLineAdd:
		return '+'
	case DiffLineRemove:
		return '-'
	default:
		return ' '
	}
}

// DiffLine is one line of a hunk, without its marker.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// String renders the line with its unified diff marker.
func (l DiffLine) String() string {
	return string(l.Kind.prefix()) + l.Content
}

// DiffHunk is a run of changes with surrounding context.
// Line numbers are 1-based.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// Header renders the "@@ -a,b +c,d @@" line.
func (h DiffHunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@",
		h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// Diff is a line-based unified diff of one file.
type Diff struct {
	Path      string
	Hunks     []DiffHunk
	Additions int
	Deletions int
}

// GenerateDiff compares original and modified line by line.
// It returns nil when the contents have no line differences.
func GenerateDiff(path string, original, modified []byte) *Diff {
	ops := diffLines(splitLines(original), splitLines(modified))
	hunks := groupHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	d := &Diff{Path: path, Hunks: hunks}
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineAdd:
				d.Additions++
			case DiffLineRemove:
				d.Deletions++
			case DiffLineContext:
			}
		}
	}
	return d
}

// HasChanges reports whether the diff contains any hunks.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// DisplayPath returns Path without a leading slash, as used in headers.
func (d *Diff) DisplayPath() string {
	return strings.TrimPrefix(d.Path, "/")
}

// String renders the diff with "---" and "+++" headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", d.DisplayPath(), d.DisplayPath())
	for _, hunk := range d.Hunks {
		b.WriteString(hunk.Header())
		b.WriteByte('\n')
		for _, line := range hunk.Lines {
			b.WriteString(line.String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// splitLines splits content on newlines. A final newline does not start
// an extra empty line.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// diffLines returns the edit script turning orig into mod.
//
// The script comes from a longest-common-subsequence table over line
// suffixes, walked forward so removals precede additions in each change.
// Common prefix and suffix lines are trimmed first; rewrites usually touch
// a handful of lines in a large file.
func diffLines(orig, mod []string) []DiffLine {
	head := 0
	for head < len(orig) && head < len(mod) && orig[head] == mod[head] {
		head++
	}
	tail := 0
	for tail < len(orig)-head && tail < len(mod)-head &&
		orig[len(orig)-1-tail] == mod[len(mod)-1-tail] {
		tail++
	}

	ops := make([]DiffLine, 0, len(orig)+len(mod))
	for _, line := range orig[:head] {
		ops = append(ops, DiffLine{Kind: DiffLineContext, Content: line})
	}

	a, b := orig[head:len(orig)-tail], mod[head:len(mod)-tail]

	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			ops = append(ops, DiffLine{Kind: DiffLineContext, Content: a[i]})
			i++
			j++
		case j == len(b) || (i < len(a) && lcs[i+1][j] >= lcs[i][j+1]):
			ops = append(ops, DiffLine{Kind: DiffLineRemove, Content: a[i]})
			i++
		default:
			ops = append(ops, DiffLine{Kind: DiffLineAdd, Content: b[j]})
			j++
		}
	}

	for _, line := range orig[len(orig)-tail:] {
		ops = append(ops, DiffLine{Kind: DiffLineContext, Content: line})
	}
	return ops
}

// groupHunks cuts the edit script into hunks. Changes separated by at most
// twice the context size share a hunk.
func groupHunks(ops []DiffLine) []DiffHunk {
	var hunks []DiffHunk

	origLine, modLine := 1, 1
	for idx := 0; idx < len(ops); {
		if ops[idx].Kind == DiffLineContext {
			origLine++
			modLine++
			idx++
			continue
		}

		start := max(idx-contextLines, 0)
		end := idx
		for gap := 0; end < len(ops); end++ {
			if ops[end].Kind != DiffLineContext {
				gap = 0
				continue
			}
			gap++
			if gap > 2*contextLines {
				break
			}
		}
		// Trim trailing context down to contextLines.
		trailing := 0
		for k := end - 1; k >= idx && ops[k].Kind == DiffLineContext; k-- {
			trailing++
		}
		end = min(end-trailing+contextLines, len(ops))

		lead := idx - start
		hunk := DiffHunk{
			OriginalStart: origLine - lead,
			ModifiedStart: modLine - lead,
			Lines:         ops[start:end],
		}
		for _, line := range hunk.Lines {
			if line.Kind != DiffLineAdd {
				hunk.OriginalCount++
			}
			if line.Kind != DiffLineRemove {
				hunk.ModifiedCount++
			}
		}
		hunks = append(hunks, hunk)

		for _, line := range ops[idx:end] {
			if line.Kind != DiffLineAdd {
				origLine++
			}
			if line.Kind != DiffLineRemove {
				modLine++
			}
		}
		idx = end
	}
	return hunks
}
