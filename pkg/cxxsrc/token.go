package cxxsrc

import "fmt"

// TokenKind classifies a span of C or C++ source.
type TokenKind uint16

// Token kinds cover every byte in the source.
const (
	TokWhitespace TokenKind = iota
	TokComment
	TokDirective // whole preprocessor logical line
	TokIdent
	TokNumber
	TokString
	TokChar
	TokPunct
	TokInvalid // unterminated ordinary literal or stray byte
)

var tokenKindNames = [...]string{
	TokWhitespace: "Whitespace",
	TokComment:    "Comment",
	TokDirective:  "Directive",
	TokIdent:      "Ident",
	TokNumber:     "Number",
	TokString:     "String",
	TokChar:       "Char",
	TokPunct:      "Punct",
	TokInvalid:    "Invalid",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", k)
}

// IsTrivia reports whether tokens of this kind carry no syntax.
func (k TokenKind) IsTrivia() bool {
	return k == TokWhitespace || k == TokComment
}

// Token is a classified span of bytes in the source.
// Tokens are contiguous and non-overlapping, covering [0, len(Content)).
type Token struct {
	Kind TokenKind

	// StartOffset is the byte index where this token begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where this token ends (exclusive).
	EndOffset int

	// Prefix is the encoding prefix of a string or char literal: "", "L", "u", "U" or "u8".
	Prefix string

	// Raw is set for raw string literals, R"d(...)d".
	Raw bool

	// Suffix is a user-defined literal suffix, e.g. "_sv".
	Suffix string
}

// Text returns the source text of this token from the given content.
func (t Token) Text(content []byte) []byte {
	if t.StartOffset < 0 || t.EndOffset > len(content) || t.StartOffset > t.EndOffset {
		return nil
	}
	return content[t.StartOffset:t.EndOffset]
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return t.EndOffset - t.StartOffset
}

// Range returns the byte range of this token.
func (t Token) Range() SourceRange {
	return SourceRange{StartOffset: t.StartOffset, EndOffset: t.EndOffset}
}

// IsPunct reports whether t is the punctuator p.
func (t Token) IsPunct(content []byte, p string) bool {
	return t.Kind == TokPunct && string(t.Text(content)) == p
}

// ValidateTokens checks that tokens are contiguous, non-empty, and cover
// [0, contentLen).
func ValidateTokens(tokens []Token, contentLen int) bool {
	pos := 0
	for _, tok := range tokens {
		if tok.StartOffset != pos || tok.EndOffset <= tok.StartOffset {
			return false
		}
		pos = tok.EndOffset
	}
	return pos == contentLen
}
