package mdast

import "sort"

// LineIndex holds the byte offset of every line start, in ascending order.
// It is built once per document and reused for every position lookup,
// turning offset-to-line conversion into a binary search instead of a
// forward scan over the content.
type LineIndex []int

// BuildLineIndex scans content once and records each line start offset.
// Line 1 always starts at offset 0, even for empty content.
func BuildLineIndex(content []byte) LineIndex {
	starts := LineIndex{0}
	for idx, char := range content {
		if char == '\n' {
			starts = append(starts, idx+1)
		}
	}
	return starts
}

// LineCount returns the number of lines.
func (li LineIndex) LineCount() int {
	return len(li)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes. Offsets past the end of content map
// onto the last line.
func (li LineIndex) LineAt(offset int) (line, col int) {
	if offset < 0 || len(li) == 0 {
		return 0, 0
	}

	// First line whose start is past the offset; the offset's own line
	// is the one before it.
	idx := sort.Search(len(li), func(i int) bool {
		return li[i] > offset
	})

	line = idx // idx is 1-based line because li[0] == 0 always matches
	col = offset - li[idx-1] + 1
	return line, col
}

// LineStart returns the byte offset of the start of the 1-based line,
// or -1 if the line number is out of range.
func (li LineIndex) LineStart(line int) int {
	if line < 1 || line > len(li) {
		return -1
	}
	return li[line-1]
}

// LineSpan returns the byte range of the 1-based line including its
// trailing newline, bounded by contentLen for the final line.
func (li LineIndex) LineSpan(line, contentLen int) SourceRange {
	start := li.LineStart(line)
	if start < 0 {
		return SourceRange{}
	}

	end := contentLen
	if line < len(li) {
		end = li[line]
	}
	return SourceRange{Start: start, End: end}
}
