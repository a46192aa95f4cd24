package subst

import "strings"

// Scan splits a decoded format string into tokens in a single left-to-right pass.
//
// Escaped braces take priority over placeholders at the same position, so
// "{{}}" scans as an escaped "{" followed by an escaped "}". The returned
// tokens tile the input: each byte belongs to exactly one token.
func Scan(input string) []Token {
	var tokens []Token

	// runStart marks the beginning of the pending literal run, or -1.
	runStart := -1
	flush := func(end int) {
		if runStart < 0 {
			return
		}
		tokens = append(tokens, Token{
			Kind:  TokenLiteral,
			Text:  input[runStart:end],
			Start: runStart,
			End:   end,
		})
		runStart = -1
	}

	for pos := 0; pos < len(input); {
		char := input[pos]

		if char == '}' && pos+1 < len(input) && input[pos+1] == '}' {
			flush(pos)
			tokens = append(tokens, Token{Kind: TokenLiteral, Text: "}", Start: pos, End: pos + 2})
			pos += 2
			continue
		}

		if char != '{' {
			if runStart < 0 {
				runStart = pos
			}
			pos++
			continue
		}

		flush(pos)

		if pos+1 < len(input) && input[pos+1] == '{' {
			tokens = append(tokens, Token{Kind: TokenLiteral, Text: "{", Start: pos, End: pos + 2})
			pos += 2
			continue
		}

		tok := scanPlaceholder(input, pos)
		tokens = append(tokens, tok)
		pos = tok.End
	}

	flush(len(input))

	return tokens
}

// scanPlaceholder classifies the construct opening at input[start] == '{'.
func scanPlaceholder(input string, start int) Token {
	digitsEnd := start + 1
	for digitsEnd < len(input) && isDigit(input[digitsEnd]) {
		digitsEnd++
	}

	if digitsEnd < len(input) && input[digitsEnd] == '}' {
		digits := input[start+1 : digitsEnd]
		if digits == "" {
			return Token{Kind: TokenAuto, Start: start, End: digitsEnd + 1, Closed: true}
		}
		return Token{Kind: TokenIndexed, Text: digits, Start: start, End: digitsEnd + 1, Closed: true}
	}

	// Unsupported: extend through the first closing brace, or to the end.
	closing := strings.IndexByte(input[start+1:], '}')
	if closing < 0 {
		return Token{Kind: TokenUnsupported, Text: input[start:], Start: start, End: len(input)}
	}
	end := start + 1 + closing + 1
	return Token{Kind: TokenUnsupported, Text: input[start:end], Start: start, End: end, Closed: true}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
