package mathspan

import "github.com/yaklabco/mdview/pkg/mdast"

// InlineMath is a single $...$ expression found inside a text run.
type InlineMath struct {
	// Latex is the captured content between the delimiters, verbatim
	// (interior spaces preserved).
	Latex string

	// Span is the byte range in the scanned text, delimiters included.
	Span mdast.SourceRange
}

// FindInline locates every $...$ expression in a single text run.
//
// Delimiter rules, in priority order:
//  1. A $ preceded by \ is escaped and never opens or closes a match.
//  2. A $ directly adjacent to another $ is presumed to belong to a $$
//     display delimiter and never acts as a single-dollar delimiter.
//     Ambiguous sequences like $a$$b$ therefore yield no matches at all.
//  3. Content must be non-empty and must not itself contain an
//     unescaped $.
//
// Matching is non-greedy: the nearest valid closing delimiter ends the
// match.
func FindInline(text string) []InlineMath {
	var matches []InlineMath

	i := 0
	for i < len(text) {
		if text[i] != '$' || !canOpen(text, i) {
			i++
			continue
		}

		end := findCloser(text, i+1)
		if end == errNoCloser {
			// No valid closer anywhere after this opener; later dollars
			// were all rejected, so nothing beyond here can match.
			break
		}
		if end == errAmbiguous {
			// Closer search hit an adjacent-$ sequence; resume scanning
			// after the opener.
			i++
			continue
		}

		if end > i+1 {
			matches = append(matches, InlineMath{
				Latex: text[i+1 : end],
				Span:  mdast.SourceRange{Start: i, End: end + 1},
			})
		}
		i = end + 1
	}

	return matches
}

// canOpen reports whether the $ at position i may open an inline match:
// not escaped and not adjacent to another $ on either side.
func canOpen(text string, i int) bool {
	if i > 0 && (text[i-1] == '\\' || text[i-1] == '$') {
		return false
	}
	if i+1 >= len(text) || text[i+1] == '$' {
		return false
	}
	return true
}

// Sentinel results for findCloser.
const (
	errNoCloser  = -1
	errAmbiguous = -2
)

// findCloser returns the index of the first valid closing $ at or after
// position from. Returns errAmbiguous when the first unescaped candidate
// is part of a $$ pair (reject conservatively) and errNoCloser when no
// candidate exists at all.
func findCloser(text string, from int) int {
	for j := from; j < len(text); j++ {
		if text[j] != '$' {
			continue
		}
		if text[j-1] == '\\' {
			// Escaped dollar inside the content; keep scanning.
			continue
		}
		if j+1 < len(text) && text[j+1] == '$' {
			return errAmbiguous
		}
		return j
	}
	return errNoCloser
}
