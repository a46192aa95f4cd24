package subst

import (
	"strconv"
	"strings"
)

// maxSubstituteIndex is the highest argument index absl::Substitute addresses.
const maxSubstituteIndex = 9

// messageIndexRange is attached to placeholders that need more than one digit.
const messageIndexRange = "placeholder index is not a single digit ($0-$9)"

// Transcode renders tokens in dollar-indexed syntax.
//
// Auto placeholders are numbered from zero in order of appearance. Indexed
// placeholders keep their digits and do not advance the auto numbering.
// Unsupported tokens are copied verbatim and reported in scan order.
func Transcode(tokens []Token) (string, []Diagnostic) {
	var (
		out   strings.Builder
		diags []Diagnostic
		auto  int
	)

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenLiteral:
			out.WriteString(tok.Text)

		case TokenAuto:
			out.WriteByte('$')
			out.WriteString(strconv.Itoa(auto))
			if auto > maxSubstituteIndex {
				diags = append(diags, rangeDiagnostic(tok, "{}"))
			}
			auto++

		case TokenIndexed:
			out.WriteByte('$')
			out.WriteString(tok.Text)
			if len(tok.Text) > 1 {
				diags = append(diags, rangeDiagnostic(tok, "{"+tok.Text+"}"))
			}

		case TokenUnsupported:
			out.WriteString(tok.Text)
			kind := KindUnsupportedToken
			if !tok.Closed {
				kind = KindMalformedPlaceholder
			}
			diags = append(diags, Diagnostic{
				Kind:    kind,
				Span:    tok.Text,
				Message: MessageUnsupported,
				Offset:  tok.Start,
			})
		}
	}

	return out.String(), diags
}

func rangeDiagnostic(tok Token, span string) Diagnostic {
	return Diagnostic{
		Kind:    KindIndexOutOfRange,
		Span:    span,
		Message: messageIndexRange,
		Offset:  tok.Start,
	}
}
