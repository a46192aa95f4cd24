package cxxsrc

import (
	"slices"
	"strings"
)

// ArgPredicate selects calls by the shape of the matched argument.
type ArgPredicate int

const (
	// AnyArg matches every call, with or without the argument.
	AnyArg ArgPredicate = iota

	// StringLiteralArg matches calls whose argument is one or more adjacent
	// string literals.
	StringLiteralArg

	// NonLiteralArg matches calls whose argument exists and is anything
	// other than string literals.
	NonLiteralArg
)

func (p ArgPredicate) String() string {
	switch p {
	case AnyArg:
		return "any"
	case StringLiteralArg:
		return "string-literal"
	case NonLiteralArg:
		return "non-literal"
	default:
		return "unknown"
	}
}

// CallMatcher describes the calls to find.
type CallMatcher struct {
	// Callee is the qualified function name, e.g. "fmt::format".
	// A leading "::" in source also matches.
	Callee string

	// Arg is the zero-based index of the argument the predicate inspects.
	Arg int

	// Predicate constrains the argument at index Arg.
	Predicate ArgPredicate
}

// CallSite is one matched call.
type CallSite struct {
	// Name is the callee as written, e.g. "::fmt::format".
	Name string

	// Callee spans the qualified name.
	Callee SourceRange

	// Call spans the callee through the closing parenthesis.
	Call SourceRange

	// Arg spans the inspected argument. Empty when the call has no such argument.
	Arg SourceRange

	// ArgTokens are the tokens of the argument, trivia included.
	ArgTokens []Token

	// Literal is the decoded argument when it is a string literal run.
	Literal string

	// LiteralErr is set when a string literal argument could not be decoded.
	LiteralErr error

	// InMacro is set for calls inside a #define body.
	InMacro bool

	// CalleeValid is false when the callee tokens are interleaved with
	// comments, so the callee range cannot be replaced without losing text.
	CalleeValid bool

	// ArgValid is false when comments sit between the tokens of the
	// argument, so the argument range cannot be replaced without losing them.
	ArgValid bool
}

// Replaceable reports whether the call can be rewritten in place.
func (c CallSite) Replaceable() bool {
	return c.CalleeValid && c.ArgValid && !c.InMacro && c.LiteralErr == nil
}

// FindCalls returns the calls in f that satisfy m, ordered by offset.
// Calls inside #define bodies are reported with InMacro set.
func FindCalls(f *File, m CallMatcher) []CallSite {
	parts := strings.Split(strings.TrimPrefix(m.Callee, "::"), "::")
	if m.Callee == "" || slices.Contains(parts, "") {
		return nil
	}

	sites := findIn(f.Content, f.Tokens, m, parts, false)

	for _, tok := range f.Tokens {
		if tok.Kind != TokDirective || !isDefine(tok.Text(f.Content)) {
			continue
		}
		body, err := tokenizeRange(f.Content, tok.StartOffset+1, tok.EndOffset, false)
		if err != nil {
			continue
		}
		sites = append(sites, findIn(f.Content, body, m, parts, true)...)
	}

	slices.SortFunc(sites, func(a, b CallSite) int {
		return a.Callee.StartOffset - b.Callee.StartOffset
	})
	return sites
}

func isDefine(text []byte) bool {
	rest := strings.TrimLeft(string(text[1:]), " \t")
	return strings.HasPrefix(rest, "define")
}

// matchScope is the significant-token view of one token stream.
type matchScope struct {
	content []byte
	tokens  []Token
	sig     []int // indices of non-trivia tokens
}

func (s *matchScope) tok(i int) Token {
	return s.tokens[s.sig[i]]
}

func (s *matchScope) punct(i int, p string) bool {
	return i >= 0 && i < len(s.sig) && s.tok(i).IsPunct(s.content, p)
}

func (s *matchScope) ident(i int, name string) bool {
	return i < len(s.sig) && s.tok(i).Kind == TokIdent && string(s.tok(i).Text(s.content)) == name
}

// leadingKeywords may directly precede a globally qualified name.
var leadingKeywords = []string{ //nolint:gochecknoglobals // read-only table
	"return", "case", "throw", "else", "do", "co_return", "co_yield", "co_await", "sizeof", "decltype",
}

// qualifier reports whether token i is a name that a following "::" would
// qualify.
func (s *matchScope) qualifier(i int) bool {
	if i < 0 || i >= len(s.sig) || s.tok(i).Kind != TokIdent {
		return false
	}
	return !slices.Contains(leadingKeywords, string(s.tok(i).Text(s.content)))
}

func findIn(content []byte, tokens []Token, m CallMatcher, parts []string, inMacro bool) []CallSite {
	scope := &matchScope{content: content, tokens: tokens}
	for idx, tok := range tokens {
		if !tok.Kind.IsTrivia() {
			scope.sig = append(scope.sig, idx)
		}
	}

	var sites []CallSite
	for i := range scope.sig {
		site, ok := scope.matchAt(i, m, parts)
		if !ok {
			continue
		}
		site.InMacro = inMacro
		sites = append(sites, site)
	}
	return sites
}

// matchAt tries to match the qualified callee and its argument list starting
// at significant token i.
func (s *matchScope) matchAt(i int, m CallMatcher, parts []string) (CallSite, bool) {
	// Member access or a longer qualified name is a different function.
	if s.punct(i-1, ".") || s.punct(i-1, "->") || s.punct(i-1, "::") {
		return CallSite{}, false
	}
	// A leading "::" after a name or template argument list continues that
	// qualified name, as in my::fmt::format or Tmpl<T>::fmt::format.
	if s.punct(i, "::") && (s.punct(i-1, ">") || s.qualifier(i-1)) {
		return CallSite{}, false
	}

	j := i
	if s.punct(j, "::") {
		j++
	}
	for k, part := range parts {
		if !s.ident(j, part) {
			return CallSite{}, false
		}
		if k < len(parts)-1 {
			if !s.punct(j+1, "::") {
				return CallSite{}, false
			}
			j += 2
		}
	}
	if !s.punct(j+1, "(") {
		return CallSite{}, false
	}

	args, closing, ok := s.splitArgs(j + 2)
	if !ok {
		return CallSite{}, false
	}

	first, last := s.sig[i], s.sig[j]
	callee := SourceRange{StartOffset: s.tokens[first].StartOffset, EndOffset: s.tokens[last].EndOffset}
	site := CallSite{
		Name:        string(s.content[callee.StartOffset:callee.EndOffset]),
		Callee:      callee,
		Call:        callee.Cover(s.tok(closing).Range()),
		CalleeValid: !containsComment(s.tokens[first : last+1]),
		ArgValid:    true,
	}

	var arg []int
	if m.Arg >= 0 && m.Arg < len(args) {
		arg = args[m.Arg]
	}
	if len(arg) > 0 {
		lo, hi := arg[0], arg[len(arg)-1]
		site.ArgTokens = s.tokens[s.sig[lo] : s.sig[hi]+1]
		site.ArgValid = !containsComment(site.ArgTokens)
		site.Arg = SourceRange{
			StartOffset: s.tok(lo).StartOffset,
			EndOffset:   s.tok(hi).EndOffset,
		}
	}

	literal := len(arg) > 0 && s.allStrings(arg)
	switch m.Predicate {
	case StringLiteralArg:
		if !literal {
			return CallSite{}, false
		}
		site.Literal, site.LiteralErr = DecodeTokens(s.content, site.ArgTokens)
	case NonLiteralArg:
		if len(arg) == 0 || literal {
			return CallSite{}, false
		}
	case AnyArg:
	}
	return site, true
}

// splitArgs groups the significant tokens after an opening parenthesis into
// top-level arguments and returns the index of the closing parenthesis.
func (s *matchScope) splitArgs(start int) ([][]int, int, bool) {
	var (
		args    [][]int
		current []int
		depth   int
	)
	for i := start; i < len(s.sig); i++ {
		tok := s.tok(i)
		if tok.Kind == TokPunct {
			switch string(tok.Text(s.content)) {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				if depth == 0 {
					if len(current) > 0 || len(args) > 0 {
						args = append(args, current)
					}
					return args, i, true
				}
				depth--
			case ",":
				if depth == 0 {
					args = append(args, current)
					current = nil
					continue
				}
			}
		}
		current = append(current, i)
	}
	return nil, 0, false
}

func (s *matchScope) allStrings(arg []int) bool {
	for _, i := range arg {
		tok := s.tok(i)
		if tok.Kind != TokString || tok.Suffix != "" {
			return false
		}
	}
	return true
}

func containsComment(tokens []Token) bool {
	return slices.ContainsFunc(tokens, func(tok Token) bool {
		return tok.Kind == TokComment
	})
}
