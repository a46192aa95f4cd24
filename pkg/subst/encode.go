package subst

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultRawDelimiter is the delimiter used for raw string literals.
const DefaultRawDelimiter = "EOF"

// maxRawDelimiterLen is the longest delimiter a C++ raw string literal allows.
const maxRawDelimiterLen = 16

// maxDelimiterAttempts bounds the search for a delimiter absent from the body.
const maxDelimiterAttempts = 100

// Encoder wraps transcoded text in C++ string literal syntax.
// The zero value is ready to use.
type Encoder struct {
	// RawDelimiter is the preferred raw literal delimiter.
	// Empty or invalid values fall back to DefaultRawDelimiter.
	RawDelimiter string
}

// Encode wraps body with the default Encoder.
func Encode(body string) (string, bool) {
	return Encoder{}.Encode(body)
}

// Encode returns the literal text for body and whether body needs raw encoding.
//
// A body containing a newline is emitted as a raw literal, R"EOF(...)EOF",
// using a delimiter that does not occur in the body. Otherwise the body is
// quoted with backslash escapes. The reported flag depends only on body: if
// no free delimiter exists, or the body holds bytes a raw literal cannot
// carry unchanged (carriage returns, other control bytes, invalid UTF-8),
// the literal falls back to quoting but the flag stays true.
func (e Encoder) Encode(body string) (string, bool) {
	needsRaw := strings.IndexByte(body, '\n') >= 0
	if !needsRaw {
		return quote(body), false
	}
	if !rawSafe(body) {
		return quote(body), true
	}

	delim, ok := e.pickDelimiter(body)
	if !ok {
		return quote(body), true
	}

	var out strings.Builder
	out.Grow(len(body) + 2*len(delim) + 5)
	out.WriteString(`R"`)
	out.WriteString(delim)
	out.WriteByte('(')
	out.WriteString(body)
	out.WriteByte(')')
	out.WriteString(delim)
	out.WriteByte('"')
	return out.String(), true
}

// rawSafe reports whether body survives verbatim inside a raw literal.
// Translation phase one folds CRLF line endings, and control bytes or
// malformed UTF-8 would leave an unreadable or ill-formed source file.
func rawSafe(body string) bool {
	if !utf8.ValidString(body) {
		return false
	}
	for idx := range len(body) {
		char := body[idx]
		if char == '\n' || char == '\t' {
			continue
		}
		if char < ' ' || char == 0x7f {
			return false
		}
	}
	return true
}

// pickDelimiter finds a delimiter whose closing sequence is absent from body.
func (e Encoder) pickDelimiter(body string) (string, bool) {
	base := e.RawDelimiter
	if !ValidRawDelimiter(base) {
		base = DefaultRawDelimiter
	}

	for attempt := range maxDelimiterAttempts {
		delim := base
		if attempt > 0 {
			delim = base + strconv.Itoa(attempt)
		}
		if len(delim) > maxRawDelimiterLen {
			return "", false
		}
		if !strings.Contains(body, ")"+delim+`"`) {
			return delim, true
		}
	}
	return "", false
}

// ValidRawDelimiter reports whether delim may appear in a raw string literal prefix.
// The empty delimiter is reported invalid so callers substitute the default.
func ValidRawDelimiter(delim string) bool {
	if delim == "" || len(delim) > maxRawDelimiterLen {
		return false
	}
	for idx := range len(delim) {
		switch char := delim[idx]; {
		case char == '(' || char == ')' || char == '\\' || char == '"':
			return false
		case char <= ' ' || char >= 0x7f:
			return false
		}
	}
	return true
}

// quote produces an ordinary string literal for body.
// Control bytes and bytes outside valid UTF-8 sequences use bounded octal
// escapes so that following digits are never absorbed.
func quote(body string) string {
	var out strings.Builder
	out.Grow(len(body) + 2)
	out.WriteByte('"')

	for idx := 0; idx < len(body); {
		char := body[idx]
		if char >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(body[idx:])
			if r == utf8.RuneError && size <= 1 {
				writeOctal(&out, char)
				idx++
				continue
			}
			out.WriteString(body[idx : idx+size])
			idx += size
			continue
		}
		idx++

		switch char {
		case '"':
			out.WriteString(`\"`)
		case '\\':
			out.WriteString(`\\`)
		case '\n':
			out.WriteString(`\n`)
		case '\t':
			out.WriteString(`\t`)
		case '\r':
			out.WriteString(`\r`)
		case '\a':
			out.WriteString(`\a`)
		case '\b':
			out.WriteString(`\b`)
		case '\f':
			out.WriteString(`\f`)
		case '\v':
			out.WriteString(`\v`)
		default:
			if char < ' ' || char == 0x7f {
				writeOctal(&out, char)
				continue
			}
			out.WriteByte(char)
		}
	}

	out.WriteByte('"')
	return out.String()
}

func writeOctal(out *strings.Builder, char byte) {
	out.WriteByte('\\')
	out.WriteByte('0' + char>>6&7)
	out.WriteByte('0' + char>>3&7)
	out.WriteByte('0' + char&7)
}
