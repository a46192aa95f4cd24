// Package fix applies byte-range text edits and renders their effect as a
// unified diff.
package fix

// TextEdit replaces the bytes [StartOffset, EndOffset) with NewText.
type TextEdit struct {
	StartOffset int
	EndOffset   int
	NewText     string
}

// Len returns the number of bytes the edit replaces.
func (e TextEdit) Len() int {
	return e.EndOffset - e.StartOffset
}

// Overlaps reports whether e and other touch the same bytes. Two insertions
// at the same offset overlap, since their order would be ambiguous.
func (e TextEdit) Overlaps(other TextEdit) bool {
	if e.StartOffset == other.StartOffset {
		return true
	}
	return e.StartOffset < other.EndOffset && other.StartOffset < e.EndOffset
}

// EditBuilder collects the edits proposed for one diagnostic.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates an empty EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// Len returns the number of collected edits.
func (b *EditBuilder) Len() int {
	return len(b.Edits)
}
