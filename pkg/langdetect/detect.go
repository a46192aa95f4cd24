// Package langdetect identifies C-family source files.
// It uses go-enry to resolve ambiguous header extensions and to recognize
// vendored and generated files.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names as reported by go-enry.
const (
	LangCPP     = "C++"
	LangC       = "C"
	LangObjC    = "Objective-C"
	LangObjCPP  = "Objective-C++"
	LangUnknown = ""
)

// cxxMarkers are byte patterns that only occur in C++ (or Objective-C++).
var cxxMarkers = [][]byte{ //nolint:gochecknoglobals // read-only pattern table
	[]byte("::"),
	[]byte("namespace "),
	[]byte("template <"),
	[]byte("template<"),
	[]byte("#include <string>"),
}

// generatedSuffixes name outputs of C++ code generators.
var generatedSuffixes = []string{ //nolint:gochecknoglobals // read-only pattern table
	".pb.cc",
	".pb.h",
	".grpc.pb.cc",
	".grpc.pb.h",
	".pb.c",
}

// generatedMarkers appear in the header comment of generated files.
var generatedMarkers = [][]byte{ //nolint:gochecknoglobals // read-only pattern table
	[]byte("DO NOT EDIT"),
	[]byte("@generated"),
}

// generatedHeaderLines bounds how far into a file the header comment is searched.
const generatedHeaderLines = 10

// Detect returns the language of a C-family file, or LangUnknown.
func Detect(path string, content []byte) string {
	// Strategy 1: an unambiguous extension (.cc, .cpp, .c, .mm).
	if lang, safe := enry.GetLanguageByExtension(path); safe {
		return lang
	}

	// Strategy 2: C++-only syntax settles ambiguous headers.
	candidates := enry.GetLanguagesByExtension(path, content, nil)
	if len(candidates) == 0 {
		return LangUnknown
	}
	if hasCXXMarker(content) {
		for _, lang := range candidates {
			if lang == LangCPP || lang == LangObjCPP {
				return lang
			}
		}
	}

	// Strategy 3: the classifier over the extension's candidates.
	if lang, _ := enry.GetLanguageByClassifier(content, candidates); lang != "" {
		return lang
	}
	return candidates[0]
}

// IsCXX reports whether a file of the given language may contain C++ calls.
// C and Objective-C files qualify only when they use C++ syntax, which
// happens with headers shared between languages.
func IsCXX(lang string, content []byte) bool {
	switch lang {
	case LangCPP, LangObjCPP:
		return true
	case LangC, LangObjC:
		return hasCXXMarker(content)
	default:
		return false
	}
}

// IsVendor reports whether path lies in a vendored or third-party directory.
func IsVendor(path string) bool {
	return enry.IsVendor(path)
}

// IsGenerated reports whether a file looks machine-generated, such as
// protobuf or flex/bison output.
func IsGenerated(path string, content []byte) bool {
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	if hasGeneratedHeader(content) {
		return true
	}
	return enry.IsGenerated(path, content)
}

// hasGeneratedHeader reports whether one of the leading lines carries a
// "generated, do not edit" notice.
func hasGeneratedHeader(content []byte) bool {
	for range generatedHeaderLines {
		if len(content) == 0 {
			return false
		}
		line := content
		if idx := bytes.IndexByte(content, '\n'); idx >= 0 {
			line, content = content[:idx], content[idx+1:]
		} else {
			content = nil
		}
		for _, marker := range generatedMarkers {
			if bytes.Contains(line, marker) {
				return true
			}
		}
	}
	return false
}

func hasCXXMarker(content []byte) bool {
	for _, marker := range cxxMarkers {
		if bytes.Contains(content, marker) {
			return true
		}
	}
	return false
}
