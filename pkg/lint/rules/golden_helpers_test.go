package rules

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/yaklabco/fmtsubst/pkg/fsutil"
	"github.com/yaklabco/fmtsubst/pkg/lint"
)

// Archive sections. diags.json and want.cc are produced by -update.
const (
	sectionInput = "input.cc"
	sectionWant  = "want.cc"
	sectionDiags = "diags.json"
	realWorldDir = "real-world"
)

// goldenCase is one testdata/<dir>/<name>.txtar archive. Archives under a
// rule ID directory run only that rule; real-world archives run every rule.
type goldenCase struct {
	Name, Path string
	RuleID     string
}

type goldenArchive struct {
	comment            []byte
	input, want, diags []byte
}

// diagJSON is the diags.json form of a diagnostic.
type diagJSON struct {
	Rule     string `json:"rule"`
	Name     string `json:"name"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Fixable  bool   `json:"fixable"`
}

func toDiagJSON(d lint.Diagnostic) diagJSON {
	return diagJSON{d.RuleID, d.RuleName, d.StartLine, d.StartColumn, d.Message, string(d.Severity), d.HasFix()}
}

func discoverTestCases(t *testing.T, baseDir string) []goldenCase {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join(baseDir, "*", "*.txtar"))
	require.NoError(t, err)

	var cases []goldenCase
	for _, path := range paths {
		dir := filepath.Base(filepath.Dir(path))
		if dir != realWorldDir && !isRuleID(dir) {
			continue
		}
		tc := goldenCase{Name: dir + "/" + strings.TrimSuffix(filepath.Base(path), ".txtar"), Path: path}
		if dir != realWorldDir {
			tc.RuleID = dir
		}
		cases = append(cases, tc)
	}
	return cases
}

// isRuleID matches FS followed by one or more digits.
func isRuleID(s string) bool {
	digits, ok := strings.CutPrefix(s, "FS")
	return ok && digits != "" && strings.Trim(digits, "0123456789") == ""
}

func loadArchive(t *testing.T, path string) goldenArchive {
	t.Helper()
	ar, err := txtar.ParseFile(path)
	require.NoError(t, err)

	golden := goldenArchive{comment: ar.Comment}
	for _, f := range ar.Files {
		switch f.Name {
		case sectionInput:
			golden.input = f.Data
		case sectionWant:
			golden.want = f.Data
		case sectionDiags:
			golden.diags = f.Data
		default:
			t.Fatalf("%s: unexpected section %q", path, f.Name)
		}
	}
	require.NotNil(t, golden.input, "%s: missing %s", path, sectionInput)
	return golden
}

func writeArchive(t *testing.T, path string, golden goldenArchive, fixed []byte, diags []lint.Diagnostic) {
	t.Helper()
	out := make([]diagJSON, 0, len(diags))
	for _, d := range diags {
		out = append(out, toDiagJSON(d))
	}
	data, err := json.MarshalIndent(out, "", "  ")
	require.NoError(t, err)

	ar := &txtar.Archive{Comment: golden.comment, Files: []txtar.File{
		{Name: sectionInput, Data: golden.input},
		{Name: sectionWant, Data: fixed},
		{Name: sectionDiags, Data: append(data, '\n')},
	}}
	require.NoError(t, fsutil.WriteAtomic(t.Context(), path, txtar.Format(ar), 0o644))
	t.Logf("updated %s", path)
}

func compareWithGolden(t *testing.T, actual []byte, golden goldenArchive) {
	t.Helper()
	if golden.want == nil {
		t.Errorf("no %s section; run with -update\nactual:\n%s", sectionWant, actual)
		return
	}
	if !bytes.Equal(actual, golden.want) {
		t.Errorf("output differs from %s:\n%s", sectionWant, lineDiff(golden.want, actual))
	}
}

func compareDiags(t *testing.T, actual []lint.Diagnostic, golden goldenArchive) {
	t.Helper()
	if golden.diags == nil {
		t.Errorf("no %s section; run with -update", sectionDiags)
		return
	}
	want := []diagJSON{}
	if len(bytes.TrimSpace(golden.diags)) > 0 {
		require.NoError(t, json.Unmarshal(golden.diags, &want))
	}
	got := make([]diagJSON, 0, len(actual))
	for _, d := range actual {
		got = append(got, toDiagJSON(d))
	}
	assert.Equal(t, want, got)
}

// lineDiff lists the lines that differ position by position.
func lineDiff(want, got []byte) string {
	wl, gl := strings.Split(string(want), "\n"), strings.Split(string(got), "\n")
	var b strings.Builder
	for i := range max(len(wl), len(gl)) {
		w, g := lineOrEmpty(wl, i), lineOrEmpty(gl, i)
		if w != g {
			b.WriteString("- " + w + "\n+ " + g + "\n")
		}
	}
	return b.String()
}

func lineOrEmpty(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

// fixable returns the diagnostics that carry fix edits.
func fixable(diags []lint.Diagnostic) []lint.Diagnostic {
	return slices.DeleteFunc(slices.Clone(diags), func(d lint.Diagnostic) bool { return !d.HasFix() })
}
