package fix_test

import (
	"testing"

	"github.com/yaklabco/fmtsubst/pkg/fix"
)

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	const call = `auto s = fmt::format("{} of {}", a, b);`

	tests := []struct {
		name    string
		content string
		edits   []fix.TextEdit
		want    string
	}{
		{
			name:    "no edits",
			content: call,
			want:    call,
		},
		{
			name:    "callee and argument",
			content: call,
			edits: []fix.TextEdit{
				{StartOffset: 9, EndOffset: 20, NewText: "absl::Substitute"},
				{StartOffset: 21, EndOffset: 31, NewText: `"$0 of $1"`},
			},
			want: `auto s = absl::Substitute("$0 of $1", a, b);`,
		},
		{
			name:    "insertion",
			content: "f(x);",
			edits:   []fix.TextEdit{{StartOffset: 0, EndOffset: 0, NewText: "::"}},
			want:    "::f(x);",
		},
		{
			name:    "deletion at end",
			content: "f(x);;",
			edits:   []fix.TextEdit{{StartOffset: 5, EndOffset: 6}},
			want:    "f(x);",
		},
		{
			name:    "adjacent edits",
			content: "abcdef",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 3, NewText: "X"},
				{StartOffset: 3, EndOffset: 6, NewText: "Y"},
			},
			want: "XY",
		},
		{
			name:    "multi-line replacement",
			content: `f("a\n");`,
			edits:   []fix.TextEdit{{StartOffset: 2, EndOffset: 7, NewText: "R\"EOF(a\n)EOF\""}},
			want:    "f(R\"EOF(a\n)EOF\");",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := string(fix.ApplyEdits([]byte(tt.content), tt.edits))
			if got != tt.want {
				t.Errorf("ApplyEdits() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyEdits_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	content := []byte("fmt::format")
	original := string(content)

	_ = fix.ApplyEdits(content, []fix.TextEdit{{StartOffset: 0, EndOffset: 3, NewText: "absl"}})

	if string(content) != original {
		t.Errorf("input modified: %q", content)
	}
}

func TestEditBuilder(t *testing.T) {
	t.Parallel()

	builder := fix.NewEditBuilder()
	if builder.Len() != 0 {
		t.Fatalf("new builder has %d edits", builder.Len())
	}

	builder.ReplaceRange(0, 11, "absl::Substitute")
	builder.ReplaceRange(12, 16, `"$0"`)

	if builder.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", builder.Len())
	}
	want := fix.TextEdit{StartOffset: 12, EndOffset: 16, NewText: `"$0"`}
	if builder.Edits[1] != want {
		t.Errorf("Edits[1] = %+v, want %+v", builder.Edits[1], want)
	}
}

func TestTextEdit_Overlaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b fix.TextEdit
		want bool
	}{
		{"disjoint", fix.TextEdit{StartOffset: 0, EndOffset: 3}, fix.TextEdit{StartOffset: 5, EndOffset: 8}, false},
		{"adjacent", fix.TextEdit{StartOffset: 0, EndOffset: 3}, fix.TextEdit{StartOffset: 3, EndOffset: 8}, false},
		{"crossing", fix.TextEdit{StartOffset: 0, EndOffset: 4}, fix.TextEdit{StartOffset: 3, EndOffset: 8}, true},
		{"nested", fix.TextEdit{StartOffset: 0, EndOffset: 10}, fix.TextEdit{StartOffset: 3, EndOffset: 4}, true},
		{"insertions at same offset", fix.TextEdit{StartOffset: 2, EndOffset: 2}, fix.TextEdit{StartOffset: 2, EndOffset: 2}, true},
		{"insertion at end of replacement", fix.TextEdit{StartOffset: 0, EndOffset: 2}, fix.TextEdit{StartOffset: 2, EndOffset: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("a.Overlaps(b) = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("b.Overlaps(a) = %v, want %v", got, tt.want)
			}
		})
	}
}
