package rules

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/lint"
	"github.com/yaklabco/fmtsubst/pkg/parser/cxx"
)

// benchmarkSource builds a translation unit with n formatting calls of
// mixed shapes.
func benchmarkSource(n int) []byte {
	var buf bytes.Buffer
	buf.WriteString("#include <fmt/format.h>\n\n")
	for i := range n {
		fmt.Fprintf(&buf, "std::string F%d(int a, const char* p) {\n", i)
		buf.WriteString("  // fmt::format(\"{}\") in a comment\n")
		buf.WriteString("  auto x = fmt::format(\"value {} of {}\", a, a + 1);\n")
		buf.WriteString("  auto y = fmt::format(\"{:>8} {0}\\n\", a);\n")
		buf.WriteString("  return x + y + fmt::format(p, a);\n}\n\n")
	}
	return buf.Bytes()
}

// Benchmark tokenizing C++ sources.
func BenchmarkParse(b *testing.B) {
	content := benchmarkSource(200)
	parser := cxx.New()
	ctx := context.Background()

	b.SetBytes(int64(len(content)))
	b.ResetTimer()
	for range b.N {
		file, err := parser.Parse(ctx, "bench.cc", content)
		if err != nil || file == nil {
			b.Fail()
		}
	}
}

// Benchmark linting with all rules and fix generation.
func BenchmarkLintFileWithFix(b *testing.B) {
	content := benchmarkSource(200)

	registry := lint.NewRegistry()
	RegisterAll(registry)
	engine := lint.NewEngine(cxx.New(), registry)

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.EnableRules = registry.IDs()
	ctx := context.Background()

	b.SetBytes(int64(len(content)))
	b.ResetTimer()
	for range b.N {
		result, err := engine.LintFile(ctx, "bench.cc", content, cfg)
		if err != nil || result == nil || len(result.Edits) == 0 {
			b.Fail()
		}
	}
}
