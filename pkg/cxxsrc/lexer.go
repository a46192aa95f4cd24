package cxxsrc

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"
)

const maxRawDelimiterLen = 16

// Tokenize classifies every byte of content into tokens.
//
// Unterminated raw string literals and block comments are errors. Other
// malformed input, such as an ordinary string literal cut off by a newline,
// becomes a TokInvalid token and lexing continues.
func Tokenize(content []byte) ([]Token, error) {
	return tokenizeRange(content, 0, len(content), true)
}

// tokenizeRange lexes content[start:end]. Directives are recognized only when
// lineStart is set, which is false when re-lexing a macro body.
func tokenizeRange(content []byte, start, end int, lineStart bool) ([]Token, error) {
	cur, err := newCursor(content[:end])
	if err != nil {
		return nil, err
	}
	if cur.off, err = safecast.Conv[uint32](start); err != nil {
		return nil, fmt.Errorf("%w: start offset %d: %w", ErrTooLarge, start, err)
	}

	lx := &lexer{cur: cur, src: content, atLineStart: lineStart}
	for !lx.cur.eof() {
		if err := lx.next(); err != nil {
			return nil, err
		}
	}
	return lx.tokens, nil
}

type lexer struct {
	cur         cursor
	src         []byte
	tokens      []Token
	atLineStart bool
}

func (lx *lexer) emit(kind TokenKind, start mark) *Token {
	lx.tokens = append(lx.tokens, Token{
		Kind:        kind,
		StartOffset: int(start),
		EndOffset:   lx.cur.pos(),
	})
	if !kind.IsTrivia() {
		lx.atLineStart = false
	}
	return &lx.tokens[len(lx.tokens)-1]
}

func (lx *lexer) syntaxError(offset int, err error, format string, args ...any) error {
	return &SyntaxError{Offset: offset, Message: fmt.Sprintf(format, args...), Err: err}
}

func (lx *lexer) next() error {
	start := lx.cur.mark()
	char := lx.cur.peek()

	switch {
	case isSpace(char) || lx.cur.hasPrefix("\\\n") || lx.cur.hasPrefix("\\\r\n"):
		lx.scanWhitespace()
		lx.emit(TokWhitespace, start)

	case lx.cur.hasPrefix("//"):
		lx.scanLineComment()
		lx.emit(TokComment, start)

	case lx.cur.hasPrefix("/*"):
		if !lx.scanBlockComment() {
			return lx.syntaxError(int(start), ErrUnterminated, "unterminated block comment")
		}
		lx.emit(TokComment, start)

	case char == '#' && lx.atLineStart:
		lx.scanDirective()
		lx.emit(TokDirective, start)

	case isIdentStart(char):
		return lx.scanIdentOrPrefixed(start)

	case isDigit(char) || (char == '.' && isDigit(lx.cur.peekAt(1))):
		lx.scanNumber()
		lx.emit(TokNumber, start)

	case char == '"':
		lx.scanQuoted(start, '"', "")

	case char == '\'':
		lx.scanQuoted(start, '\'', "")

	case lx.cur.hasPrefix("::") || lx.cur.hasPrefix("->"):
		lx.cur.off += 2
		lx.emit(TokPunct, start)

	case char > ' ' && char < 0x7f:
		lx.cur.bump()
		lx.emit(TokPunct, start)

	default:
		lx.cur.bump()
		lx.emit(TokInvalid, start)
	}
	return nil
}

func (lx *lexer) scanWhitespace() {
	for !lx.cur.eof() {
		if lx.cur.skipSplice() {
			continue
		}
		char := lx.cur.peek()
		if !isSpace(char) {
			return
		}
		if char == '\n' {
			lx.atLineStart = true
		}
		lx.cur.bump()
	}
}

// scanLineComment stops before the terminating newline; splices extend the comment.
func (lx *lexer) scanLineComment() {
	for !lx.cur.eof() {
		if lx.cur.skipSplice() {
			continue
		}
		if lx.cur.peek() == '\n' {
			return
		}
		lx.cur.bump()
	}
}

func (lx *lexer) scanBlockComment() bool {
	lx.cur.off += 2
	rest := lx.src[lx.cur.off:lx.cur.limit]
	idx := bytes.Index(rest, []byte("*/"))
	if idx < 0 {
		lx.cur.off = lx.cur.limit
		return false
	}
	lx.cur.off += uint32(idx) + 2 //nolint:gosec // idx < len(rest)
	return true
}

// scanDirective consumes one logical preprocessor line, stopping before the newline.
func (lx *lexer) scanDirective() {
	for !lx.cur.eof() {
		if lx.cur.skipSplice() {
			continue
		}
		switch char := lx.cur.peek(); {
		case char == '\n':
			return
		case lx.cur.hasPrefix("//"):
			lx.scanLineComment()
			return
		case lx.cur.hasPrefix("/*"):
			if !lx.scanBlockComment() {
				return
			}
		case char == '"' || char == '\'':
			lx.cur.bump()
			lx.skipQuotedBody(char)
		default:
			lx.cur.bump()
		}
	}
}

func (lx *lexer) scanIdentOrPrefixed(start mark) error {
	for !lx.cur.eof() && isIdentPart(lx.cur.peek()) {
		lx.cur.bump()
	}
	ident := string(lx.src[start:lx.cur.off])

	switch next := lx.cur.peek(); {
	case next == '"' && isRawPrefix(ident):
		return lx.scanRaw(start, ident[:len(ident)-1])
	case next == '"' && isEncodingPrefix(ident):
		lx.scanQuoted(start, '"', ident)
	case next == '\'' && isEncodingPrefix(ident):
		lx.scanQuoted(start, '\'', ident)
	default:
		lx.emit(TokIdent, start)
	}
	return nil
}

func (lx *lexer) scanNumber() {
	for !lx.cur.eof() {
		char := lx.cur.peek()
		switch {
		case isIdentPart(char) || char == '.':
			lx.cur.bump()
			if (char == 'e' || char == 'E' || char == 'p' || char == 'P') &&
				(lx.cur.peek() == '+' || lx.cur.peek() == '-') {
				lx.cur.bump()
			}
		case char == '\'' && isIdentPart(lx.cur.peekAt(1)):
			lx.cur.bump()
		default:
			return
		}
	}
}

// scanQuoted lexes an ordinary string or character literal whose opening
// quote is at the cursor. A newline or end of input before the closing quote
// yields TokInvalid.
func (lx *lexer) scanQuoted(start mark, quote byte, prefix string) {
	kind := TokString
	if quote == '\'' {
		kind = TokChar
	}

	lx.cur.bump()
	if !lx.skipQuotedBody(quote) {
		lx.emit(TokInvalid, start)
		return
	}

	suffix := lx.scanSuffix()
	tok := lx.emit(kind, start)
	tok.Prefix = prefix
	tok.Suffix = suffix
}

// skipQuotedBody advances past the closing quote and reports whether it was found.
func (lx *lexer) skipQuotedBody(quote byte) bool {
	for !lx.cur.eof() {
		if lx.cur.skipSplice() {
			continue
		}
		switch lx.cur.peek() {
		case quote:
			lx.cur.bump()
			return true
		case '\n':
			return false
		case '\\':
			lx.cur.bump()
			if lx.cur.peek() != '\n' {
				lx.cur.bump()
			}
		default:
			lx.cur.bump()
		}
	}
	return false
}

func (lx *lexer) scanRaw(start mark, prefix string) error {
	lx.cur.bump() // opening quote

	delimStart := lx.cur.off
	for lx.cur.peek() != '(' {
		char := lx.cur.peek()
		if lx.cur.eof() || !isRawDelimiterChar(char) || lx.cur.off-delimStart >= maxRawDelimiterLen {
			lx.emit(TokInvalid, start)
			return nil
		}
		lx.cur.bump()
	}
	delim := string(lx.src[delimStart:lx.cur.off])
	lx.cur.bump() // '('

	closing := []byte(")" + delim + `"`)
	idx := bytes.Index(lx.src[lx.cur.off:lx.cur.limit], closing)
	if idx < 0 {
		return lx.syntaxError(int(start), ErrUnterminated, "unterminated raw string literal")
	}
	lx.cur.off += uint32(idx + len(closing)) //nolint:gosec // bounded by limit

	suffix := lx.scanSuffix()
	tok := lx.emit(TokString, start)
	tok.Prefix = prefix
	tok.Raw = true
	tok.Suffix = suffix
	return nil
}

func (lx *lexer) scanSuffix() string {
	if !isIdentStart(lx.cur.peek()) {
		return ""
	}
	start := lx.cur.off
	for !lx.cur.eof() && isIdentPart(lx.cur.peek()) {
		lx.cur.bump()
	}
	return string(lx.src[start:lx.cur.off])
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isEncodingPrefix(ident string) bool {
	switch ident {
	case "L", "u", "U", "u8":
		return true
	}
	return false
}

func isRawPrefix(ident string) bool {
	switch ident {
	case "R", "LR", "uR", "UR", "u8R":
		return true
	}
	return false
}

func isRawDelimiterChar(b byte) bool {
	return b > ' ' && b < 0x7f && b != '(' && b != ')' && b != '\\'
}
