// Package mathspan segments Markdown source into math and non-math spans.
//
// Two independent grammars operate at two granularities: a block-level
// $$...$$ splitter applied to raw source before Markdown parsing, and an
// inline $...$ scanner applied to individual text runs during rendering.
package mathspan

import (
	"regexp"
	"strings"

	"github.com/yaklabco/mdview/pkg/mdast"
)

// SegmentKind distinguishes the two kinds of block-level segments.
type SegmentKind int

const (
	// SegmentMarkdown is ordinary Markdown source to be parsed.
	SegmentMarkdown SegmentKind = iota

	// SegmentMath is the inside of a $$...$$ display-math block.
	SegmentMath
)

// Segment is one block-level span of the source, in source order.
type Segment struct {
	Kind SegmentKind

	// Text is the segment content. For SegmentMath this is the captured
	// LaTeX with surrounding whitespace stripped.
	Text string

	// Span is the byte range of the segment in the original source,
	// delimiters included for math segments.
	Span mdast.SourceRange
}

// displayMathPattern matches $$...$$ across lines, non-greedily.
var displayMathPattern = regexp.MustCompile(`(?s)\$\$(.+?)\$\$`)

// SplitBlocks partitions source into alternating Markdown and Math
// segments. Markdown segments are parsed independently by the caller;
// Math segments bypass the Markdown parser entirely.
//
// Sources without display math come back as a single Markdown segment.
func SplitBlocks(source string) []Segment {
	matches := displayMathPattern.FindAllStringSubmatchIndex(source, -1)
	if len(matches) == 0 {
		return []Segment{{
			Kind: SegmentMarkdown,
			Text: source,
			Span: mdast.SourceRange{Start: 0, End: len(source)},
		}}
	}

	var segments []Segment
	pos := 0

	for _, m := range matches {
		start, end := m[0], m[1]
		latexStart, latexEnd := m[2], m[3]

		if start > pos {
			segments = append(segments, Segment{
				Kind: SegmentMarkdown,
				Text: source[pos:start],
				Span: mdast.SourceRange{Start: pos, End: start},
			})
		}

		segments = append(segments, Segment{
			Kind: SegmentMath,
			Text: strings.TrimSpace(source[latexStart:latexEnd]),
			Span: mdast.SourceRange{Start: start, End: end},
		})

		pos = end
	}

	if pos < len(source) {
		segments = append(segments, Segment{
			Kind: SegmentMarkdown,
			Text: source[pos:],
			Span: mdast.SourceRange{Start: pos, End: len(source)},
		})
	}

	return segments
}
