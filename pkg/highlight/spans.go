// Package highlight computes per-token color spans over raw Markdown
// source for an editable source view. Spans address the exact bytes the
// user is editing, not the rendered block text, so the two never share
// offsets.
package highlight

import "github.com/yaklabco/mdview/pkg/mdast"

//go:generate stringer -type=Token -trimprefix=Token

// Token is a semantic color token; the presentation layer maps tokens to
// concrete theme colors.
type Token int

// Color tokens emitted by the mapper.
const (
	TokenHeading Token = iota
	TokenEmphasis
	TokenLink
	TokenCode
	TokenList
	TokenQuote
	TokenMuted
)

// ColorSpan pairs a byte range of the source with a color token.
type ColorSpan struct {
	Span  mdast.SourceRange
	Token Token
}

// RebaseSpans translates spans computed over an extracted substring back
// onto full-document offsets. Callers highlighting only a visible window
// extract the window, highlight it, and re-base by the window start.
func RebaseSpans(spans []ColorSpan, base int) []ColorSpan {
	if base == 0 {
		return spans
	}

	out := make([]ColorSpan, len(spans))
	for i, s := range spans {
		out[i] = ColorSpan{Span: s.Span.Shift(base), Token: s.Token}
	}
	return out
}
