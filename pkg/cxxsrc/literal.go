package cxxsrc

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DecodeLiteral returns the content of one ordinary narrow string literal,
// given its full source text including any raw marker and suffix.
//
// Escape sequences and line splices are resolved. Raw literal bodies are
// returned verbatim. Prefixed literals (L, u, U, u8) are rejected with
// ErrUnsupportedEncoding.
func DecodeLiteral(text string) (string, error) {
	open := strings.IndexByte(text, '"')
	if open < 0 {
		return "", fmt.Errorf("%w: %q", ErrNotStringLiteral, text)
	}

	prefix := text[:open]
	raw := strings.HasSuffix(prefix, "R")
	if raw {
		prefix = prefix[:len(prefix)-1]
	}
	if prefix != "" {
		return "", fmt.Errorf("%w: prefix %q", ErrUnsupportedEncoding, prefix)
	}

	if raw {
		return decodeRaw(text[open+1:])
	}

	closing := strings.LastIndexByte(text, '"')
	if closing <= open {
		return "", fmt.Errorf("%w: missing closing quote", ErrNotStringLiteral)
	}
	return unescape(text[open+1 : closing])
}

// DecodeTokens decodes a run of adjacent string literal tokens and returns
// their concatenated content. Trivia tokens in the run are skipped.
func DecodeTokens(content []byte, tokens []Token) (string, error) {
	var out strings.Builder
	for _, tok := range tokens {
		if tok.Kind.IsTrivia() {
			continue
		}
		if tok.Kind != TokString {
			return "", fmt.Errorf("%w: %s token", ErrNotStringLiteral, tok.Kind)
		}
		text, err := DecodeLiteral(string(tok.Text(content)))
		if err != nil {
			return "", err
		}
		out.WriteString(text)
	}
	return out.String(), nil
}

// decodeRaw extracts the body from `d(body)d"suffix`.
func decodeRaw(rest string) (string, error) {
	paren := strings.IndexByte(rest, '(')
	if paren < 0 || paren > maxRawDelimiterLen {
		return "", fmt.Errorf("%w: malformed raw literal delimiter", ErrNotStringLiteral)
	}
	delim := rest[:paren]
	closing := strings.LastIndex(rest, ")"+delim+`"`)
	if closing < paren {
		return "", fmt.Errorf("%w: unterminated raw literal", ErrNotStringLiteral)
	}
	return rest[paren+1 : closing], nil
}

func unescape(body string) (string, error) {
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}

	var out strings.Builder
	out.Grow(len(body))

	for idx := 0; idx < len(body); {
		char := body[idx]
		if char != '\\' {
			out.WriteByte(char)
			idx++
			continue
		}
		if idx+1 >= len(body) {
			return "", fmt.Errorf("%w: trailing backslash", ErrInvalidEscape)
		}

		next := body[idx+1]
		idx += 2
		switch next {
		case '\n':
		case '\r':
			if idx < len(body) && body[idx] == '\n' {
				idx++
			}
		case '\'', '"', '?', '\\':
			out.WriteByte(next)
		case 'a':
			out.WriteByte('\a')
		case 'b':
			out.WriteByte('\b')
		case 'f':
			out.WriteByte('\f')
		case 'n':
			out.WriteByte('\n')
		case 'r':
			out.WriteByte('\r')
		case 't':
			out.WriteByte('\t')
		case 'v':
			out.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			end := idx - 1
			for end < len(body) && end < idx+2 && body[end] >= '0' && body[end] <= '7' {
				end++
			}
			value, _ := strconv.ParseUint(body[idx-1:end], 8, 16)
			if value > 0xff {
				return "", fmt.Errorf("%w: octal escape \\%s out of range", ErrInvalidEscape, body[idx-1:end])
			}
			out.WriteByte(byte(value))
			idx = end
		case 'x':
			end := idx
			for end < len(body) && isHexDigit(body[end]) {
				end++
			}
			if end == idx {
				return "", fmt.Errorf("%w: \\x with no digits", ErrInvalidEscape)
			}
			value, err := strconv.ParseUint(body[idx:end], 16, 64)
			if err != nil || value > 0xff {
				return "", fmt.Errorf("%w: hex escape \\x%s out of range", ErrInvalidEscape, body[idx:end])
			}
			out.WriteByte(byte(value))
			idx = end
		case 'u', 'U':
			width := 4
			if next == 'U' {
				width = 8
			}
			if idx+width > len(body) {
				return "", fmt.Errorf("%w: short \\%c escape", ErrInvalidEscape, next)
			}
			value, err := strconv.ParseUint(body[idx:idx+width], 16, 32)
			if err != nil || !utf8.ValidRune(rune(value)) {
				return "", fmt.Errorf("%w: \\%c%s", ErrInvalidEscape, next, body[idx:idx+width])
			}
			out.WriteRune(rune(value))
			idx += width
		default:
			return "", fmt.Errorf("%w: \\%c", ErrInvalidEscape, next)
		}
	}

	return out.String(), nil
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
