// Package textedit provides raw-text transforms that operate on source
// offsets, independent of the rendered block model.
package textedit

import "sort"

// TextEdit represents a single text replacement.
type TextEdit struct {
	// Start is the byte index where the edit begins (inclusive).
	Start int

	// End is the byte index where the edit ends (exclusive).
	End int

	// NewText is the replacement text.
	NewText string
}

// Apply applies non-overlapping edits to text, in offset order. Edits
// with out-of-range or inverted offsets are skipped.
func Apply(text string, edits []TextEdit) string {
	if len(edits) == 0 {
		return text
	}

	sorted := make([]TextEdit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var out []byte
	pos := 0
	for _, e := range sorted {
		if e.Start < pos || e.End > len(text) || e.Start > e.End {
			continue
		}
		out = append(out, text[pos:e.Start]...)
		out = append(out, e.NewText...)
		pos = e.End
	}
	out = append(out, text[pos:]...)

	return string(out)
}
