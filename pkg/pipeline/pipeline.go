// Package pipeline ties the stages together: source text in, a typed
// document model out. Every entry point is a synchronous pure function;
// debouncing and scheduling policy belong to the caller, which discards
// stale results by generation instead of interrupting running work.
package pipeline

import (
	"github.com/yaklabco/mdview/pkg/parser"
	"github.com/yaklabco/mdview/pkg/render"
	"github.com/yaklabco/mdview/pkg/search"
)

// Document is the pipeline's primary output: the ordered block sequence
// plus the navigation outline, all derived from one source snapshot.
// It is immutable once produced; an edit produces a wholly new Document.
type Document struct {
	// Source is the exact input text the document was built from.
	Source string

	// Blocks is the ordered content block sequence.
	Blocks []render.Block

	// Headings is the outline, in source order.
	Headings []parser.HeadingInfo
}

// Build runs the full pipeline over source with the given style.
// Deterministic: identical inputs produce identical documents.
func Build(source string, style render.Style) *Document {
	return &Document{
		Source:   source,
		Blocks:   render.Render(source, style),
		Headings: parser.ExtractHeadings(parser.Parse([]byte(source))),
	}
}

// BlockMatch locates a search hit inside a specific block's plain-text
// projection. Offsets address the projection, not the raw source; use
// search.FindMatches over Document.Source when raw offsets are needed
// (replace operations).
type BlockMatch struct {
	// BlockIndex is the index into Document.Blocks.
	BlockIndex int

	Match search.Match
}

// SearchBlocks runs the search engine over every block's plain-text
// projection, in block order.
func (d *Document) SearchBlocks(query string, opts search.Options) []BlockMatch {
	var matches []BlockMatch
	for i, block := range d.Blocks {
		for _, m := range search.FindMatches(query, block.PlainText(), opts) {
			matches = append(matches, BlockMatch{BlockIndex: i, Match: m})
		}
	}
	return matches
}
