package subst

// Result is the outcome of converting one format string.
type Result struct {
	// Body is the replacement string literal, quotes included.
	Body string

	// Text is the transcoded content before quoting.
	Text string

	// NeedsRawEncoding is true when Text contains a newline.
	NeedsRawEncoding bool

	// Diagnostics lists constructs that were kept verbatim, in scan order.
	Diagnostics []Diagnostic
}

// HasDiagnostics reports whether the conversion was lossy in any way.
func (r Result) HasDiagnostics() bool {
	return len(r.Diagnostics) > 0
}

// Converter runs the scan, transcode and encode stages with options.
// The zero value is ready to use and safe for concurrent use.
type Converter struct {
	Encoder Encoder
}

// Convert transcodes a decoded format string with default options.
func Convert(raw string) Result {
	return Converter{}.Convert(raw)
}

// Convert transcodes raw and wraps the result in a string literal.
func (c Converter) Convert(raw string) Result {
	text, diags := Transcode(Scan(raw))
	body, needsRaw := c.Encoder.Encode(text)

	return Result{
		Body:             body,
		Text:             text,
		NeedsRawEncoding: needsRaw,
		Diagnostics:      diags,
	}
}
