// Package pretty renders diagnostics, diffs and summaries for a terminal
// with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles holds one lipgloss style per kind of output element.
type Styles struct {
	Error, Warning, Info lipgloss.Style

	FilePath, RuleID, Message, Suggestion lipgloss.Style
	SourceLine, Caret                     lipgloss.Style

	DiffHeader, DiffHunk, DiffAdd, DiffRemove, DiffContext lipgloss.Style

	Success, Failure            lipgloss.Style
	TableHeader, TableSeparator lipgloss.Style
	TableErrorRow, TableWarnRow lipgloss.Style
	Dim, Bold                   lipgloss.Style
}

// look describes a style by ANSI 256 palette index and attributes.
type look struct {
	fg     lipgloss.Color // "" keeps the terminal color
	bold   bool
	italic bool
}

// Palette indexes.
const (
	red    lipgloss.Color = "9"
	green  lipgloss.Color = "10"
	yellow lipgloss.Color = "11"
	blue   lipgloss.Color = "12"
	cyan   lipgloss.Color = "14"
	gray   lipgloss.Color = "8"
	light  lipgloss.Color = "7"
)

func (l look) style(color bool) lipgloss.Style {
	s := lipgloss.NewStyle()
	if !color {
		return s
	}
	if l.fg != "" {
		s = s.Foreground(l.fg)
	}
	return s.Bold(l.bold).Italic(l.italic)
}

// NewStyles returns the color styles, or plain ones when color is false.
func NewStyles(color bool) *Styles {
	st := func(l look) lipgloss.Style { return l.style(color) }
	return &Styles{
		Error:   st(look{fg: red, bold: true}),
		Warning: st(look{fg: yellow, bold: true}),
		Info:    st(look{fg: blue, bold: true}),

		FilePath:   st(look{bold: true}),
		RuleID:     st(look{fg: gray}),
		Message:    st(look{}),
		Suggestion: st(look{fg: green, italic: true}),
		SourceLine: st(look{fg: light}),
		Caret:      st(look{fg: green, bold: true}),

		DiffHeader:  st(look{bold: true}),
		DiffHunk:    st(look{fg: cyan}),
		DiffAdd:     st(look{fg: green}),
		DiffRemove:  st(look{fg: red}),
		DiffContext: st(look{fg: gray}),

		Success:        st(look{fg: green, bold: true}),
		Failure:        st(look{fg: red, bold: true}),
		TableHeader:    st(look{fg: light, bold: true}),
		TableSeparator: st(look{fg: gray}),
		TableErrorRow:  st(look{fg: red}),
		TableWarnRow:   st(look{fg: yellow}),
		Dim:            st(look{fg: gray}),
		Bold:           st(look{bold: true}),
	}
}

// IsColorEnabled resolves a color mode for writer. Auto enables color only
// for a terminal and only while NO_COLOR is unset (https://no-color.org/).
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
