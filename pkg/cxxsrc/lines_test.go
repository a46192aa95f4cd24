package cxxsrc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/fmtsubst/pkg/cxxsrc"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []cxxsrc.LineInfo
	}{
		{
			name:    "empty",
			content: "",
			want:    []cxxsrc.LineInfo{{StartOffset: 0, NewlineStart: 0, EndOffset: 0}},
		},
		{
			name:    "trailing newline",
			content: "ab\n",
			want:    []cxxsrc.LineInfo{{StartOffset: 0, NewlineStart: 2, EndOffset: 3}},
		},
		{
			name:    "crlf and unterminated last line",
			content: "a\r\nbc",
			want: []cxxsrc.LineInfo{
				{StartOffset: 0, NewlineStart: 1, EndOffset: 3},
				{StartOffset: 3, NewlineStart: 5, EndOffset: 5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cxxsrc.BuildLines([]byte(tt.content)))
		})
	}
}

func TestFile_Positions(t *testing.T) {
	t.Parallel()

	file := cxxsrc.NewFile("a.cc", []byte("int a;\n  fmt::format(\"\");\n"))

	assert.Equal(t, cxxsrc.Position{Line: 2, Column: 3}, file.LineAt(9))
	assert.Equal(t, cxxsrc.Position{Line: 2, Column: 19}, file.LineAt(len(file.Content)-1))
	assert.Equal(t, cxxsrc.Position{Line: 2, Column: 20}, file.LineAt(len(file.Content)))

	offset, ok := file.Offset(cxxsrc.Position{Line: 2, Column: 3})
	assert.True(t, ok)
	assert.Equal(t, 9, offset)

	_, ok = file.Offset(cxxsrc.Position{Line: 3, Column: 1})
	assert.False(t, ok)

	assert.Equal(t, "  fmt::format(\"\");", string(file.LineContent(2)))

	assert.Equal(t, cxxsrc.Span{
		Start: cxxsrc.Position{Line: 2, Column: 3},
		End:   cxxsrc.Position{Line: 2, Column: 14},
	}, file.PositionOf(cxxsrc.SourceRange{StartOffset: 9, EndOffset: 20}))

	assert.Zero(t, file.LineAt(-1))
	assert.Zero(t, file.LineAt(len(file.Content)+1))
}

func TestSourceRange_Cover(t *testing.T) {
	t.Parallel()

	a := cxxsrc.SourceRange{StartOffset: 4, EndOffset: 8}
	b := cxxsrc.SourceRange{StartOffset: 2, EndOffset: 6}

	assert.Equal(t, cxxsrc.SourceRange{StartOffset: 2, EndOffset: 8}, a.Cover(b))
	assert.Equal(t, 4, a.Len())
	assert.True(t, a.Contains(4))
	assert.False(t, a.Contains(8))
}
