package fix

// ApplyEdits returns a new buffer holding content with edits applied. The
// edits must be sorted and disjoint, as PrepareEdits and
// PrepareEditsFiltered return them. Without edits content itself is
// returned.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	size := len(content)
	for _, e := range edits {
		size += len(e.NewText) - e.Len()
	}

	out := make([]byte, 0, size)
	prev := 0
	for _, e := range edits {
		out = append(out, content[prev:e.StartOffset]...)
		out = append(out, e.NewText...)
		prev = e.EndOffset
	}
	return append(out, content[prev:]...)
}
