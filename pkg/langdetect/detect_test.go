package langdetect_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/fmtsubst/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		expected string
	}{
		{
			name:     "cpp extension",
			path:     "src/main.cpp",
			content:  "int main() {}\n",
			expected: langdetect.LangCPP,
		},
		{
			name:     "cc extension",
			path:     "lib/util.cc",
			content:  "",
			expected: langdetect.LangCPP,
		},
		{
			name:     "header with namespace",
			path:     "include/util.h",
			content:  "namespace util {\nstd::string Name();\n}\n",
			expected: langdetect.LangCPP,
		},
		{
			name:     "no extension",
			path:     "LICENSE",
			content:  "Apache License\n",
			expected: langdetect.LangUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := langdetect.Detect(tt.path, []byte(tt.content))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIsCXX(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lang     string
		content  string
		expected bool
	}{
		{name: "c++", lang: langdetect.LangCPP, expected: true},
		{name: "objective-c++", lang: langdetect.LangObjCPP, expected: true},
		{name: "plain c", lang: langdetect.LangC, content: "int x;\n", expected: false},
		{name: "c header using c++", lang: langdetect.LangC, content: "auto s = fmt::format(\"\");\n", expected: true},
		{name: "unknown", lang: langdetect.LangUnknown, content: "a::b", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, langdetect.IsCXX(tt.lang, []byte(tt.content)))
		})
	}
}

func TestIsVendor(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsVendor("third_party/fmt/format.h"))
	assert.True(t, langdetect.IsVendor("vendor/lib/a.cc"))
	assert.False(t, langdetect.IsVendor("src/app/main.cc"))
}

func TestIsGenerated(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsGenerated("proto/msg.pb.cc", []byte("// Generated by the protocol buffer compiler.  DO NOT EDIT!\n")))
	assert.False(t, langdetect.IsGenerated("src/main.cc", []byte("int main() {}\n")))
}

func TestIsGenerated_Markers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		content string
		want    bool
	}{
		{
			name: "protobuf source by suffix",
			path: "proto/msg.pb.cc",
			want: true,
		},
		{
			name: "grpc header by suffix",
			path: "svc/api.grpc.pb.h",
			want: true,
		},
		{
			name:    "header notice",
			path:    "gen/tables.cc",
			content: "// Code generated by tablegen. DO NOT EDIT.\n#include <map>\n",
			want:    true,
		},
		{
			name:    "at-generated tag",
			path:    "gen/parser.h",
			content: "/*\n * @generated\n */\n",
			want:    true,
		},
		{
			name:    "notice past the header is ignored",
			path:    "src/notes.cc",
			content: strings.Repeat("int x;\n", 20) + "// DO NOT EDIT\n",
		},
		{
			name:    "plain source",
			path:    "src/pb.cc",
			content: "int main() {}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, langdetect.IsGenerated(tt.path, []byte(tt.content)))
		})
	}
}
