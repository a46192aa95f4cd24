// Package subst transcodes brace-style format strings ("{}", "{0}") into the
// dollar-indexed syntax used by absl::Substitute ("$0").
//
// The package is pure: it performs no I/O, holds no state between calls, and
// never fails. Every input yields a Result, with unsupported constructs kept
// verbatim and reported as diagnostics.
package subst

import "fmt"

// TokenKind classifies a span of a format string.
type TokenKind int

const (
	// TokenLiteral is passthrough text, including a brace resolved from "{{" or "}}".
	TokenLiteral TokenKind = iota

	// TokenAuto is an automatically numbered placeholder, "{}".
	TokenAuto

	// TokenIndexed is an explicitly numbered placeholder, "{N}".
	TokenIndexed

	// TokenUnsupported is any other "{...}" construct.
	TokenUnsupported
)

// String returns a readable name for the kind.
func (k TokenKind) String() string {
	switch k {
	case TokenLiteral:
		return "literal"
	case TokenAuto:
		return "auto"
	case TokenIndexed:
		return "indexed"
	case TokenUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is one classified unit of a scanned format string.
type Token struct {
	// Kind is the token classification.
	Kind TokenKind

	// Text is the output text for literals, the digit run for indexed
	// placeholders, and the raw source span for unsupported tokens.
	Text string

	// Start is the byte offset in the input where the token begins (inclusive).
	Start int

	// End is the byte offset in the input where the token ends (exclusive).
	End int

	// Closed is false for an unsupported token whose brace is never closed.
	Closed bool
}

// Len returns the number of input bytes covered by the token.
func (t Token) Len() int {
	return t.End - t.Start
}

// DiagnosticKind categorizes a transcoding diagnostic.
type DiagnosticKind string

const (
	// KindUnsupportedToken is a placeholder-like construct that cannot be mapped.
	KindUnsupportedToken DiagnosticKind = "unsupported-token"

	// KindMalformedPlaceholder is an opening brace with no closing brace.
	KindMalformedPlaceholder DiagnosticKind = "malformed-placeholder"

	// KindIndexOutOfRange is a placeholder index the target cannot address.
	KindIndexOutOfRange DiagnosticKind = "index-out-of-range"
)

// MessageUnsupported is the message attached to unsupported tokens.
const MessageUnsupported = "unsupported format token"

// Diagnostic reports a construct that could not be transcoded faithfully.
type Diagnostic struct {
	// Kind categorizes the diagnostic.
	Kind DiagnosticKind

	// Span is the source text of the offending token.
	Span string

	// Message describes the problem.
	Message string

	// Offset is the byte offset of Span in the decoded format string.
	Offset int
}

// String formats the diagnostic as "message /span/".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s /%s/", d.Message, d.Span)
}
