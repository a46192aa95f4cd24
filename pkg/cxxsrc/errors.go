package cxxsrc

import (
	"errors"
	"fmt"
)

// Sentinel errors for lexing and literal decoding.
var (
	// ErrUnterminated indicates a raw string literal or block comment with no end.
	ErrUnterminated = errors.New("unterminated construct")

	// ErrTooLarge indicates content whose offsets do not fit the lexer cursor.
	ErrTooLarge = errors.New("content too large")

	// ErrNotStringLiteral indicates a token that is not a string literal.
	ErrNotStringLiteral = errors.New("not a string literal")

	// ErrUnsupportedEncoding indicates a wide, UTF-8, UTF-16 or UTF-32 literal.
	ErrUnsupportedEncoding = errors.New("unsupported literal encoding")

	// ErrInvalidEscape indicates a malformed escape sequence.
	ErrInvalidEscape = errors.New("invalid escape sequence")
)

// SyntaxError reports a lexing failure at a byte offset.
type SyntaxError struct {
	Path    string
	Offset  int
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *SyntaxError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
	default:
		return fmt.Sprintf("offset %d: %s", e.Offset, e.Message)
	}
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Locate fills in the path, line and column of e from f.
func (e *SyntaxError) Locate(f *File) {
	e.Path = f.Path
	pos := f.LineAt(e.Offset)
	e.Line, e.Column = pos.Line, pos.Column
}
