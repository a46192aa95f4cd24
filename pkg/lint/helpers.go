package lint

import (
	"bytes"

	"github.com/yaklabco/fmtsubst/pkg/cxxsrc"
	"github.com/yaklabco/fmtsubst/pkg/langdetect"
)

// File helpers.

// IsCXXFile reports whether rules targeting C++ calls should inspect file.
// Files whose language could not be detected are included, since the
// runner only hands over files with a configured extension.
func IsCXXFile(file *cxxsrc.File) bool {
	if file == nil {
		return false
	}
	if file.Language == langdetect.LangUnknown {
		return true
	}
	return langdetect.IsCXX(file.Language, file.Content)
}

// SourceText returns the text of rng, or "" if the range is out of bounds.
func SourceText(file *cxxsrc.File, rng cxxsrc.SourceRange) string {
	if file == nil || rng.StartOffset < 0 || rng.EndOffset > len(file.Content) || rng.StartOffset > rng.EndOffset {
		return ""
	}
	return string(file.Content[rng.StartOffset:rng.EndOffset])
}

// Line-based helpers.

// LineContent returns the content of the specified 1-based line number.
// Returns nil if the line number is out of range.
func LineContent(file *cxxsrc.File, lineNum int) []byte {
	if file == nil {
		return nil
	}
	return file.LineContent(lineNum)
}

// LineIndent returns the leading spaces and tabs of a 1-based line.
func LineIndent(file *cxxsrc.File, lineNum int) string {
	content := LineContent(file, lineNum)
	trimmed := bytes.TrimLeft(content, " \t")
	return string(content[:len(content)-len(trimmed)])
}

// IsBlankLine returns true if the line contains only whitespace.
func IsBlankLine(file *cxxsrc.File, lineNum int) bool {
	return len(bytes.TrimSpace(LineContent(file, lineNum))) == 0
}

// Call helpers.

// ReplaceableCalls filters sites down to those that can be rewritten in place.
// The input slice is not modified.
func ReplaceableCalls(sites []cxxsrc.CallSite) []cxxsrc.CallSite {
	var out []cxxsrc.CallSite
	for _, site := range sites {
		if site.Replaceable() {
			out = append(out, site)
		}
	}
	return out
}

// ArgumentOffset maps a byte offset within a call's decoded literal to a
// source offset. The mapping is exact for a single ordinary literal without
// escapes; otherwise it returns the start of the argument.
func ArgumentOffset(file *cxxsrc.File, site cxxsrc.CallSite, offset int) int {
	start := site.Arg.StartOffset
	text := SourceText(file, site.Arg)
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return start
	}
	body := text[1 : len(text)-1]
	if body != site.Literal || offset < 0 || offset > len(body) {
		return start
	}
	return start + 1 + offset
}
