package mdast

// SourceRange represents a byte range in the source content.
type SourceRange struct {
	// Start is the byte index where the range begins (inclusive).
	Start int

	// End is the byte index where the range ends (exclusive).
	End int
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r SourceRange) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if the given offset is within this range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Shift returns the range translated by delta bytes.
func (r SourceRange) Shift(delta int) SourceRange {
	return SourceRange{Start: r.Start + delta, End: r.End + delta}
}

// Union returns the smallest range covering both r and other.
// An empty range is treated as the identity.
func (r SourceRange) Union(other SourceRange) SourceRange {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}

	out := r
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}
