package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/fmtsubst/pkg/analysis"
)

// JSONRenderer writes an analysis.Report as JSON.
type JSONRenderer struct {
	opts Options
}

// NewJSONRenderer creates a new JSON renderer.
func NewJSONRenderer(opts Options) *JSONRenderer {
	return &JSONRenderer{opts: opts}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(_ context.Context, report *analysis.Report) error {
	return r.opts.buffered(func(bw *bufio.Writer) error {
		enc := json.NewEncoder(bw)
		enc.SetEscapeHTML(false)
		if !r.opts.Compact {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	})
}
