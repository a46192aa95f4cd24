package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError reports an edit whose range does not fit the content.
type ValidationError struct {
	Edit   TextEdit
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Reason)
}

// ConflictError reports two overlapping edits, in offset order.
type ConflictError struct {
	First, Second TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.StartOffset, e.First.EndOffset, e.Second.StartOffset, e.Second.EndOffset)
}

// ValidateEdits returns a *ValidationError for the first edit whose range is
// not within [0, contentLen].
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, e := range edits {
		var reason string
		switch {
		case e.StartOffset < 0:
			reason = "start offset is negative"
		case e.EndOffset < e.StartOffset:
			reason = "end offset is before start offset"
		case e.EndOffset > contentLen:
			reason = fmt.Sprintf("end offset %d exceeds content length %d", e.EndOffset, contentLen)
		default:
			continue
		}
		return &ValidationError{Edit: e, Reason: reason}
	}
	return nil
}

// SortEdits orders edits by range. Edits with equal ranges keep their order.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		return cmp.Or(cmp.Compare(a.StartOffset, b.StartOffset), cmp.Compare(a.EndOffset, b.EndOffset))
	})
}

// normalize validates edits and returns a sorted copy without duplicates.
func normalize(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, err
	}
	sorted := slices.Clone(edits)
	SortEdits(sorted)
	return slices.Compact(sorted), nil
}

// PrepareEdits returns edits sorted and deduplicated, ready for ApplyEdits.
// Any remaining overlap is a *ConflictError.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return nil, nil
	}
	sorted, err := normalize(edits, contentLen)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Overlaps(sorted[i]) {
			return nil, &ConflictError{First: sorted[i-1], Second: sorted[i]}
		}
	}
	return sorted, nil
}

// FilterConflicts walks sorted edits and keeps each one that does not
// overlap the last kept edit. The rest are returned as skipped.
func FilterConflicts(edits []TextEdit) (accepted, skipped []TextEdit) {
	for _, e := range edits {
		if n := len(accepted); n > 0 && accepted[n-1].Overlaps(e) {
			skipped = append(skipped, e)
			continue
		}
		accepted = append(accepted, e)
	}
	return accepted, skipped
}

// PrepareEditsFiltered is PrepareEdits that sets overlapping edits aside
// instead of failing; the earlier edit wins. It fails only on invalid ranges.
func PrepareEditsFiltered(edits []TextEdit, contentLen int) (accepted, skipped []TextEdit, err error) {
	if len(edits) == 0 {
		return nil, nil, nil
	}
	sorted, err := normalize(edits, contentLen)
	if err != nil {
		return nil, nil, err
	}
	accepted, skipped = FilterConflicts(sorted)
	return accepted, skipped, nil
}
