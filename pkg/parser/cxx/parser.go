// Package cxx provides a lint.Parser implementation for C and C++ sources.
package cxx

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/fmtsubst/pkg/cxxsrc"
	"github.com/yaklabco/fmtsubst/pkg/langdetect"
)

// Parser implements lint.Parser by tokenizing C-family sources.
// It is stateless and safe for concurrent use.
type Parser struct{}

// New creates a new C++ parser.
func New() *Parser {
	return &Parser{}
}

// Parse converts raw source bytes into a fully-populated cxxsrc.File.
//
// The method:
//  1. Checks for context cancellation.
//  2. Builds the file shell with path, a copy of content, and lines.
//  3. Tokenizes the content.
//  4. Detects the language from the path and content.
//  5. Validates the token stream.
//
// Lexing failures are returned as *cxxsrc.SyntaxError with line and column set.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*cxxsrc.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	file := cxxsrc.NewFile(path, copyContent(content))

	tokens, err := cxxsrc.Tokenize(file.Content)
	if err != nil {
		var syntaxErr *cxxsrc.SyntaxError
		if errors.As(err, &syntaxErr) {
			syntaxErr.Locate(file)
		}
		return nil, err
	}
	file.Tokens = tokens
	file.Language = langdetect.Detect(path, file.Content)

	if !cxxsrc.ValidateTokens(file.Tokens, len(file.Content)) {
		return nil, errors.New("invalid token stream: tokens do not cover content")
	}

	return file, nil
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
