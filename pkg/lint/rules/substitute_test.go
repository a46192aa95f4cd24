package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/cxxsrc"
	"github.com/yaklabco/fmtsubst/pkg/lint"
	"github.com/yaklabco/fmtsubst/pkg/parser/cxx"
)

const rewriteMessage = "call 'absl::Substitute' instead of 'fmt::format'"

func TestFormatSubstituteRule(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		options  map[string]any
		wantMsgs []string
		wantFix  string
	}{
		{
			name:     "sequential placeholders",
			input:    "auto s = fmt::format(\"{} items in {}\", n, where);\n",
			wantMsgs: []string{rewriteMessage},
			wantFix:  "auto s = absl::Substitute(\"$0 items in $1\", n, where);\n",
		},
		{
			name:     "indexed placeholders and escaped braces",
			input:    "f(fmt::format(\"{{{1}}} {0}\", a, b));\n",
			wantMsgs: []string{rewriteMessage},
			wantFix:  "f(absl::Substitute(\"{$1} $0\", a, b));\n",
		},
		{
			name:     "globally qualified callee",
			input:    "::fmt::format(\"{}\", 1);\n",
			wantMsgs: []string{rewriteMessage},
			wantFix:  "absl::Substitute(\"$0\", 1);\n",
		},
		{
			name:     "concatenated literals form one argument",
			input:    "fmt::format(\"a{}\" \"b{}\", x, y);\n",
			wantMsgs: []string{rewriteMessage},
			wantFix:  "absl::Substitute(\"a$0b$1\", x, y);\n",
		},
		{
			name:     "multi-line call",
			input:    "fmt::format(\n    \"{}\",\n    x);\n",
			wantMsgs: []string{rewriteMessage},
			wantFix:  "absl::Substitute(\n    \"$0\",\n    x);\n",
		},
		{
			name:     "escaped newline becomes raw literal",
			input:    "fmt::format(\"a\\n{}\", x);\n",
			wantMsgs: []string{rewriteMessage},
			wantFix:  "absl::Substitute(R\"EOF(a\n$0)EOF\", x);\n",
		},
		{
			name:     "raw literal input",
			input:    "fmt::format(R\"(say \"{}\")\", x);\n",
			wantMsgs: []string{rewriteMessage},
			wantFix:  "absl::Substitute(\"say \\\"$0\\\"\", x);\n",
		},
		{
			name:  "format spec is reported and kept",
			input: "fmt::format(\"{:x} {}\", v, w);\n",
			wantMsgs: []string{
				rewriteMessage,
				"unsupported format token /{:x}/",
			},
			wantFix: "absl::Substitute(\"{:x} $0\", v, w);\n",
		},
		{
			name:  "dollar sign is reported",
			input: "fmt::format(\"${}\", price);\n",
			wantMsgs: []string{
				rewriteMessage,
				"'$' is a placeholder marker in 'absl::Substitute' /$/",
			},
			wantFix: "absl::Substitute(\"$$0\", price);\n",
		},
		{
			name:    "macro body is skipped",
			input:   "#define LOG(x) fmt::format(\"{}\", x)\nint y;\n",
			wantFix: "#define LOG(x) fmt::format(\"{}\", x)\nint y;\n",
		},
		{
			name:    "comment inside callee is skipped",
			input:   "fmt:: /* hi */ format(\"{}\", x);\n",
			wantFix: "fmt:: /* hi */ format(\"{}\", x);\n",
		},
		{
			name:    "dynamic format string is left alone",
			input:   "fmt::format(pattern, x);\n",
			wantFix: "fmt::format(pattern, x);\n",
		},
		{
			name:    "wide literal is left alone",
			input:   "fmt::format(L\"{}\", x);\n",
			wantFix: "fmt::format(L\"{}\", x);\n",
		},
		{
			name:    "member call is not the free function",
			input:   "obj.fmt::format(\"{}\", x);\nw->format(\"{}\");\n",
			wantFix: "obj.fmt::format(\"{}\", x);\nw->format(\"{}\");\n",
		},
		{
			name:    "string and comment contents are not calls",
			input:   "// fmt::format(\"{}\")\nconst char* s = \"fmt::format(\\\"{}\\\")\";\n",
			wantFix: "// fmt::format(\"{}\")\nconst char* s = \"fmt::format(\\\"{}\\\")\";\n",
		},
		{
			name:     "custom callee and target",
			input:    "str::format(\"{}\", x);\nfmt::format(\"{}\", y);\n",
			options:  map[string]any{OptionCallee: "str::format", OptionTarget: "strings::Substitute"},
			wantMsgs: []string{"call 'strings::Substitute' instead of 'str::format'"},
			wantFix:  "strings::Substitute(\"$0\", x);\nfmt::format(\"{}\", y);\n",
		},
		{
			name:     "custom raw delimiter",
			input:    "fmt::format(\"a\\n\", x);\n",
			options:  map[string]any{OptionRawDelimiter: "FMT"},
			wantMsgs: []string{rewriteMessage},
			wantFix:  "absl::Substitute(R\"FMT(a\n)FMT\", x);\n",
		},
		{
			name:    "empty file",
			input:   "",
			wantFix: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			diags, fixed := runRule(t, NewFormatSubstituteRule(), "main.cc", tt.input, tt.options)

			var msgs []string
			for _, d := range diags {
				msgs = append(msgs, d.Message)
			}
			assert.Equal(t, tt.wantMsgs, msgs)
			assert.Equal(t, tt.wantFix, fixed)
		})
	}
}

func TestFormatSubstituteRule_Positions(t *testing.T) {
	src := "int a;\nauto s = fmt::format(\"{:>4} {}\", x, y);\n"

	diags, _ := runRule(t, NewFormatSubstituteRule(), "main.cc", src, nil)
	require.Len(t, diags, 2)

	call := diags[0]
	assert.Equal(t, "FS001", call.RuleID)
	assert.Equal(t, 2, call.StartLine)
	assert.Equal(t, 10, call.StartColumn)
	assert.Equal(t, 2, call.EndLine)
	assert.Equal(t, 39, call.EndColumn)
	require.Len(t, call.FixEdits, 2)
	assert.Equal(t, "absl::Substitute", call.FixEdits[0].NewText)
	assert.Equal(t, `"{:>4} $0"`, call.FixEdits[1].NewText)
	assert.Equal(t, `absl::Substitute("{:>4} $0", ...)`, call.Suggestion)

	token := diags[1]
	assert.False(t, token.HasFix())
	assert.Equal(t, 2, token.StartLine)
	assert.Equal(t, 23, token.StartColumn)
	assert.Equal(t, 28, token.EndColumn)
}

func TestFormatSubstituteRule_EscapedLiteralFallsBackToArgument(t *testing.T) {
	src := "fmt::format(\"\\t{:x}\", v);\n"

	diags, _ := runRule(t, NewFormatSubstituteRule(), "main.cc", src, nil)
	require.Len(t, diags, 2)

	assert.Equal(t, 13, diags[1].StartColumn, "diagnostic covers the whole argument")
	assert.Equal(t, 12, diags[1].StartOffset)
}

func TestFormatSubstituteRule_IndexBeyondNine(t *testing.T) {
	src := "fmt::format(\"{}{}{}{}{}{}{}{}{}{}{}\", a,b,c,d,e,f,g,h,i,j,k);\n"

	diags, fixed := runRule(t, NewFormatSubstituteRule(), "main.cc", src, nil)

	require.Len(t, diags, 2)
	assert.Equal(t, 1, len(fixable(diags)))
	assert.Contains(t, diags[1].Message, "/{}/")
	assert.Contains(t, fixed, `"$0$1$2$3$4$5$6$7$8$9$10"`)
}

func TestFormatSubstituteRule_SkipsNonCXX(t *testing.T) {
	file := cxxsrc.NewFile("script.py", []byte(`fmt::format("{}", x)`))
	tokens, err := cxxsrc.Tokenize(file.Content)
	require.NoError(t, err)
	file.Tokens = tokens
	file.Language = "Python"

	ctx := lint.NewRuleContext(context.Background(), file, config.NewConfig(), nil)
	diags, err := NewFormatSubstituteRule().Apply(ctx)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestFormatSubstituteRule_Cancelled(t *testing.T) {
	file, err := cxx.New().Parse(context.Background(), "main.cc", []byte(`fmt::format("{}", x);`))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewFormatSubstituteRule().Apply(lint.NewRuleContext(ctx, file, nil, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatSubstituteRule_Idempotent(t *testing.T) {
	src := "auto a = fmt::format(\"{} {}\\n\", x, y);\nauto b = fmt::format(\"{0}{{\", z);\n"

	_, fixed := runRule(t, NewFormatSubstituteRule(), "main.cc", src, nil)
	diags, again := runRule(t, NewFormatSubstituteRule(), "main.cc", fixed, nil)

	assert.Empty(t, diags)
	assert.Equal(t, fixed, again)
}

func TestFormatSubstituteRule_DefaultOptions(t *testing.T) {
	opts := NewFormatSubstituteRule().DefaultOptions()

	assert.Equal(t, DefaultCallee, opts[OptionCallee])
	assert.Equal(t, DefaultTarget, opts[OptionTarget])
	assert.Equal(t, "EOF", opts[OptionRawDelimiter])
}
