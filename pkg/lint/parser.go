package lint

import (
	"context"

	"github.com/yaklabco/fmtsubst/pkg/cxxsrc"
)

// Parser parses C and C++ source into a cxxsrc.File.
//
// The lint package defines this interface in the consumer package.
// Implementations (e.g., parser/cxx) provide the concrete tokenization.
//
// Implementations must be:
//   - deterministic for a given (path, content) pair,
//   - safe for concurrent use by multiple goroutines, if documented as such,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw source bytes into a fully-populated File.
	//
	// Parameters:
	//   - ctx: context for cancellation and timeout propagation.
	//   - path: logical file path (for diagnostics and language detection; must not be used for I/O).
	//   - content: raw source bytes (must not be mutated by the implementation).
	//
	// The returned File must satisfy:
	//   - file.Path == path
	//   - bytes.Equal(file.Content, content)
	//   - cxxsrc.ValidateTokens(file.Tokens, len(file.Content)) == true
	Parse(ctx context.Context, path string, content []byte) (*cxxsrc.File, error)
}
