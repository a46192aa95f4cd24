// Package cxxsrc is a lossless token-level view of C and C++ sources.
//
// A File keeps the exact bytes, a line index and a token stream that
// classifies every byte. Call matching finds calls by qualified name and
// argument shape. Nothing is resolved semantically; names match as written.
package cxxsrc

import (
	"fmt"
	"slices"
)

// File is an immutable snapshot of one source file.
type File struct {
	Path     string // empty for in-memory content
	Content  []byte
	Lines    []LineInfo
	Tokens   []Token // covers every byte of Content
	Language string  // "C++" or "C"
}

// LineInfo locates one line. Content[StartOffset:NewlineStart] is the text
// and Content[NewlineStart:EndOffset] its line ending, which is empty on an
// unterminated last line.
type LineInfo struct {
	StartOffset  int
	NewlineStart int
	EndOffset    int
}

// NewFile indexes the lines of content. Tokens are left to the lexer.
func NewFile(path string, content []byte) *File {
	return &File{Path: path, Content: content, Lines: BuildLines(content)}
}

// BuildLines indexes content by line. LF and CRLF end a line; a lone CR does
// not. Empty content has one empty line.
func BuildLines(content []byte) []LineInfo {
	lines := make([]LineInfo, 0, 1+len(content)/40)
	start := 0
	for i, b := range content {
		if b != '\n' {
			continue
		}
		nl := i
		if i > start && content[i-1] == '\r' {
			nl--
		}
		lines = append(lines, LineInfo{StartOffset: start, NewlineStart: nl, EndOffset: i + 1})
		start = i + 1
	}
	if start < len(content) || len(content) == 0 {
		lines = append(lines, LineInfo{StartOffset: start, NewlineStart: len(content), EndOffset: len(content)})
	}
	return lines
}

// SourceRange is the half-open byte range [StartOffset, EndOffset).
type SourceRange struct {
	StartOffset int
	EndOffset   int
}

func (r SourceRange) Len() int                 { return r.EndOffset - r.StartOffset }
func (r SourceRange) Contains(offset int) bool { return r.StartOffset <= offset && offset < r.EndOffset }
func (r SourceRange) String() string           { return fmt.Sprintf("[%d,%d)", r.StartOffset, r.EndOffset) }

// Cover returns the smallest range containing r and other.
func (r SourceRange) Cover(other SourceRange) SourceRange {
	return SourceRange{min(r.StartOffset, other.StartOffset), max(r.EndOffset, other.EndOffset)}
}

// Position is a 1-based line and byte column.
type Position struct {
	Line   int
	Column int
}

// Span is the position of a SourceRange.
type Span struct {
	Start, End Position
}

// Text returns the bytes of r, or nil when r is not within the file.
func (f *File) Text(r SourceRange) []byte {
	if r.StartOffset < 0 || r.EndOffset > len(f.Content) || r.StartOffset > r.EndOffset {
		return nil
	}
	return f.Content[r.StartOffset:r.EndOffset]
}

// TokenText returns the source text of tok.
func (f *File) TokenText(tok Token) string {
	return string(tok.Text(f.Content))
}

// LineCount returns the number of lines.
func (f *File) LineCount() int { return len(f.Lines) }

// LineAt returns the position of offset. The end of the content is a valid
// offset, one past the last byte. Offsets outside the file give the zero
// Position.
func (f *File) LineAt(offset int) Position {
	if offset < 0 || offset > len(f.Content) || len(f.Lines) == 0 {
		return Position{}
	}
	idx, _ := slices.BinarySearchFunc(f.Lines, offset, func(l LineInfo, off int) int {
		if l.EndOffset <= off {
			return -1
		}
		return 1
	})
	idx = min(idx, len(f.Lines)-1)
	return Position{Line: idx + 1, Column: offset - f.Lines[idx].StartOffset + 1}
}

// Offset returns the byte offset of pos. A column one past the end of the
// line text is allowed.
func (f *File) Offset(pos Position) (int, bool) {
	if pos.Line < 1 || pos.Line > len(f.Lines) || pos.Column < 1 {
		return 0, false
	}
	line := f.Lines[pos.Line-1]
	offset := line.StartOffset + pos.Column - 1
	return offset, offset <= line.EndOffset
}

// LineContent returns the text of a 1-based line without its line ending.
func (f *File) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}
	l := f.Lines[line-1]
	return f.Content[l.StartOffset:l.NewlineStart]
}

// PositionOf returns the span of r.
func (f *File) PositionOf(r SourceRange) Span {
	return Span{Start: f.LineAt(r.StartOffset), End: f.LineAt(r.EndOffset)}
}
