// Package search finds literal or regex matches inside arbitrary text:
// raw Markdown source (for replace operations, which must address raw
// offsets) or a rendered block's plain-text projection (for on-screen
// highlight positioning). The two are never mixed, since rendered text
// offsets do not align with source offsets.
package search

import (
	"regexp"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/yaklabco/mdview/pkg/mdast"
)

// Options controls match behavior.
type Options struct {
	// CaseSensitive disables the default case-insensitive comparison.
	CaseSensitive bool

	// Regex compiles the query as a regular expression instead of a
	// literal. An invalid pattern yields no matches, never an error.
	Regex bool
}

// Match is one hit, with its exact byte range in the searched string and
// the 1-based line number of the match start.
type Match struct {
	Span mdast.SourceRange
	Line int
}

// FindMatches returns all non-overlapping matches of query in text,
// scanned left to right. The empty query matches nothing.
func FindMatches(query, text string, opts Options) []Match {
	if query == "" || text == "" {
		return nil
	}

	var spans []mdast.SourceRange
	if opts.Regex {
		spans = regexSpans(query, text, opts.CaseSensitive)
	} else if opts.CaseSensitive {
		spans = literalSpans(query, text)
	} else {
		spans = foldedSpans(query, text)
	}

	if len(spans) == 0 {
		return nil
	}

	lines := mdast.BuildLineIndex([]byte(text))
	matches := make([]Match, len(spans))
	for i, span := range spans {
		line, _ := lines.LineAt(span.Start)
		matches[i] = Match{Span: span, Line: line}
	}
	return matches
}

// RangePart is one span of a gap-free partition of searched text.
type RangePart struct {
	Span    mdast.SourceRange
	IsMatch bool
}

// HighlightedRanges partitions the entire input into alternating
// matched and unmatched spans. Concatenating the parts in order always
// reconstructs the full input, so highlighted text renders without gaps.
func HighlightedRanges(query, text string, opts Options) []RangePart {
	if text == "" {
		return nil
	}

	var parts []RangePart
	pos := 0

	for _, m := range FindMatches(query, text, opts) {
		if m.Span.Start > pos {
			parts = append(parts, RangePart{
				Span: mdast.SourceRange{Start: pos, End: m.Span.Start},
			})
		}
		parts = append(parts, RangePart{Span: m.Span, IsMatch: true})
		pos = m.Span.End
	}

	if pos < len(text) {
		parts = append(parts, RangePart{
			Span: mdast.SourceRange{Start: pos, End: len(text)},
		})
	}

	return parts
}

// regexSpans compiles and runs a regex query. Case insensitivity is
// expressed through the engine's (?i) flag rather than by rewriting the
// pattern body. Compilation failure is soft: no matches.
func regexSpans(query, text string, caseSensitive bool) []mdast.SourceRange {
	pattern := query
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}

	var spans []mdast.SourceRange
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[1] > loc[0] {
			spans = append(spans, mdast.SourceRange{Start: loc[0], End: loc[1]})
		}
	}
	return spans
}

// literalSpans scans for exact occurrences, advancing past each match so
// overlapping candidates are skipped ("aa" in "aaaa" hits 0 and 2 only).
func literalSpans(query, text string) []mdast.SourceRange {
	var spans []mdast.SourceRange

	pos := 0
	for pos <= len(text)-len(query) {
		idx := strings.Index(text[pos:], query)
		if idx < 0 {
			break
		}
		start := pos + idx
		spans = append(spans, mdast.SourceRange{Start: start, End: start + len(query)})
		pos = start + len(query)
	}

	return spans
}

// foldedSpans performs case-insensitive literal search that stays
// correct for multi-byte text: both needle and haystack are case-folded
// per grapheme cluster, and folded offsets are mapped back onto the
// original bytes so match spans always slice whole clusters.
func foldedSpans(query, text string) []mdast.SourceRange {
	needle := strings.ToLower(query)
	folded, starts, ends := foldGraphemes(text)

	var spans []mdast.SourceRange
	pos := 0
	for pos <= len(folded)-len(needle) {
		idx := strings.Index(folded[pos:], needle)
		if idx < 0 {
			break
		}
		foldStart := pos + idx
		foldEnd := foldStart + len(needle)

		spans = append(spans, mdast.SourceRange{
			Start: starts[foldStart],
			End:   ends[foldEnd-1],
		})
		pos = foldEnd
	}

	return spans
}

// foldGraphemes lower-cases text one grapheme cluster at a time and
// records, for every folded byte, the original byte range of the cluster
// it came from.
func foldGraphemes(text string) (folded string, starts, ends []int) {
	var b strings.Builder
	b.Grow(len(text))

	graphemes := uniseg.NewGraphemes(text)
	for graphemes.Next() {
		start, end := graphemes.Positions()
		low := strings.ToLower(graphemes.Str())
		b.WriteString(low)

		for range len(low) {
			starts = append(starts, start)
			ends = append(ends, end)
		}
	}

	return b.String(), starts, ends
}
