package highlight

import (
	"bytes"
	"sort"

	"github.com/yaklabco/mdview/pkg/mdast"
	"github.com/yaklabco/mdview/pkg/parser"
)

// Highlight parses source and maps every colorable construct to a span
// of the raw bytes. The walk addresses the original source, so span
// offsets are valid indices into exactly the string passed in; for a
// sub-range of a larger document, highlight the extracted window and
// re-base with RebaseSpans.
//
// Spans come back sorted by start offset. The operation is total: any
// input produces a (possibly empty) span list.
func Highlight(source []byte) []ColorSpan {
	doc := parser.Parse(source)

	h := &highlighter{doc: doc}
	h.visit(doc.Root)
	h.thematicBreaks()

	sort.SliceStable(h.spans, func(i, j int) bool {
		return h.spans[i].Span.Start < h.spans[j].Span.Start
	})
	return h.spans
}

type highlighter struct {
	doc   *mdast.Document
	spans []ColorSpan

	// covered collects block spans already colored, so the trailing
	// line scans (thematic breaks) skip lines owned by other constructs.
	covered []mdast.SourceRange
}

func (h *highlighter) visit(n *mdast.Node) {
	switch n.Kind {
	case mdast.NodeHeading:
		span := h.lineSnapped(n.Span)
		h.emit(span, TokenHeading)
		h.cover(span)
		return // heading content stays one color

	case mdast.NodeStrong, mdast.NodeStrikethrough:
		h.emitMarkers(n.Span, 2)

	case mdast.NodeEmphasis:
		h.emitMarkers(n.Span, 1)

	case mdast.NodeLink, mdast.NodeImage:
		span := h.extendLink(n)
		h.emit(span, TokenLink)
		return // whole range one color, content included

	case mdast.NodeCodeSpan:
		h.emit(h.extendBackticks(n.Span), TokenCode)
		return

	case mdast.NodeCodeBlock:
		span := h.extendFences(n)
		h.emit(span, TokenCode)
		h.cover(span)
		return // block body is verbatim, nothing inside to walk

	case mdast.NodeListItem:
		h.emitListMarker(n.Span)

	case mdast.NodeBlockquote:
		h.emitQuoteMarkers(n.Span)

	case mdast.NodeTable:
		span := h.lineSnapped(n.Span)
		h.emitTableChrome(span)
		h.cover(span)
		return // pipes and dashes only; cell content stays base color
	}

	for child := n.FirstChild; child != nil; child = child.Next {
		h.visit(child)
	}
}

func (h *highlighter) emit(span mdast.SourceRange, token Token) {
	if span.IsEmpty() || span.Start < 0 || span.End > len(h.doc.Content) {
		return
	}
	h.spans = append(h.spans, ColorSpan{Span: span, Token: token})
}

func (h *highlighter) cover(span mdast.SourceRange) {
	h.covered = append(h.covered, span)
}

// emitMarkers colors only the opening and closing delimiter characters
// of an emphasis-family construct; the content keeps the base color.
func (h *highlighter) emitMarkers(content mdast.SourceRange, markerLen int) {
	if content.IsEmpty() {
		return
	}

	open := mdast.SourceRange{Start: content.Start - markerLen, End: content.Start}
	if open.Start >= 0 {
		h.emit(open, TokenEmphasis)
	}

	closing := mdast.SourceRange{Start: content.End, End: content.End + markerLen}
	if closing.End <= len(h.doc.Content) {
		h.emit(closing, TokenEmphasis)
	}
}

// emitListMarker colors the item marker substring: from line start to the
// first space after the marker.
func (h *highlighter) emitListMarker(span mdast.SourceRange) {
	if span.IsEmpty() {
		return
	}

	line, _ := h.doc.Lines.LineAt(span.Start)
	start := h.doc.Lines.LineStart(line)
	if start < 0 {
		return
	}

	content := h.doc.Content
	pos := start
	for pos < len(content) && (content[pos] == ' ' || content[pos] == '\t') {
		pos++
	}

	markerEnd := pos
	for markerEnd < len(content) {
		c := content[markerEnd]
		if c == '-' || c == '+' || c == '*' || c == '.' || c == ')' || (c >= '0' && c <= '9') {
			markerEnd++
			continue
		}
		break
	}

	if markerEnd == pos {
		return
	}
	if markerEnd < len(content) && content[markerEnd] == ' ' {
		markerEnd++
	}

	h.emit(mdast.SourceRange{Start: start, End: markerEnd}, TokenList)
}

// emitQuoteMarkers colors the leading > of every line in the blockquote.
func (h *highlighter) emitQuoteMarkers(span mdast.SourceRange) {
	snapped := h.lineSnapped(span)
	if snapped.IsEmpty() {
		return
	}

	content := h.doc.Content
	startLine, _ := h.doc.Lines.LineAt(snapped.Start)
	endLine, _ := h.doc.Lines.LineAt(snapped.End - 1)

	for line := startLine; line <= endLine; line++ {
		lineSpan := h.doc.Lines.LineSpan(line, len(content))
		for pos := lineSpan.Start; pos < lineSpan.End; pos++ {
			c := content[pos]
			if c == ' ' || c == '\t' {
				continue
			}
			if c == '>' {
				h.emit(mdast.SourceRange{Start: pos, End: pos + 1}, TokenQuote)
			}
			break
		}
	}
}

// emitTableChrome colors every literal pipe and dash inside the table
// range with a character-by-character scan, since the delimiters are not
// separately-addressable AST nodes.
func (h *highlighter) emitTableChrome(span mdast.SourceRange) {
	content := h.doc.Content
	for pos := span.Start; pos < span.End && pos < len(content); pos++ {
		if content[pos] == '|' || content[pos] == '-' {
			h.emit(mdast.SourceRange{Start: pos, End: pos + 1}, TokenMuted)
		}
	}
}

// thematicBreaks colors horizontal-rule lines with a whole-line scan.
// goldmark does not record positions for thematic breaks, so they are
// recovered from the source directly, skipping lines already claimed by
// code blocks, headings, or tables.
func (h *highlighter) thematicBreaks() {
	content := h.doc.Content
	for line := 1; line <= h.doc.Lines.LineCount(); line++ {
		span := h.doc.Lines.LineSpan(line, len(content))
		if span.IsEmpty() || h.isCovered(span.Start) {
			continue
		}

		text := bytes.TrimRight(content[span.Start:span.End], "\r\n")
		if isThematicBreakLine(text) {
			h.emit(mdast.SourceRange{Start: span.Start, End: span.Start + len(text)}, TokenMuted)
		}
	}
}

func (h *highlighter) isCovered(offset int) bool {
	for _, span := range h.covered {
		if span.Contains(offset) {
			return true
		}
	}
	return false
}

// isThematicBreakLine reports whether a line is 3+ of the same marker
// character (-, _, *) with only spaces between.
func isThematicBreakLine(line []byte) bool {
	var marker byte
	count := 0

	for _, c := range line {
		switch {
		case c == ' ' || c == '\t':
			continue
		case c == '-' || c == '_' || c == '*':
			if marker == 0 {
				marker = c
			}
			if c != marker {
				return false
			}
			count++
		default:
			return false
		}
	}

	return count >= 3
}

// lineSnapped extends a span to cover whole lines.
func (h *highlighter) lineSnapped(span mdast.SourceRange) mdast.SourceRange {
	if span.IsEmpty() {
		return span
	}

	startLine, _ := h.doc.Lines.LineAt(span.Start)
	start := h.doc.Lines.LineStart(startLine)
	if start < 0 {
		start = span.Start
	}

	endLine, _ := h.doc.Lines.LineAt(span.End - 1)
	endSpan := h.doc.Lines.LineSpan(endLine, len(h.doc.Content))
	end := endSpan.End
	for end > span.End && end > 0 && (h.doc.Content[end-1] == '\n' || h.doc.Content[end-1] == '\r') {
		end--
	}

	return mdast.SourceRange{Start: start, End: end}
}

// extendLink grows a link/image content span over its surrounding
// syntax: the [ or ![ opener and the ](...) or [label] tail.
func (h *highlighter) extendLink(n *mdast.Node) mdast.SourceRange {
	span := n.Span
	if span.IsEmpty() {
		return span
	}
	content := h.doc.Content

	start := span.Start
	if start > 0 && content[start-1] == '[' {
		start--
		if n.Kind == mdast.NodeImage && start > 0 && content[start-1] == '!' {
			start--
		}
	}

	end := span.End
	if end < len(content) && content[end] == ']' {
		end++
		switch {
		case end < len(content) && content[end] == '(':
			if idx := bytes.IndexByte(content[end:], ')'); idx >= 0 {
				end += idx + 1
			}
		case end < len(content) && content[end] == '[':
			if idx := bytes.IndexByte(content[end:], ']'); idx >= 0 {
				end += idx + 1
			}
		}
	}

	return mdast.SourceRange{Start: start, End: end}
}

// extendBackticks grows an inline-code content span over its delimiters.
func (h *highlighter) extendBackticks(span mdast.SourceRange) mdast.SourceRange {
	if span.IsEmpty() {
		return span
	}
	content := h.doc.Content

	start := span.Start
	for start > 0 && content[start-1] == '`' {
		start--
	}

	end := span.End
	for end < len(content) && content[end] == '`' {
		end++
	}

	return mdast.SourceRange{Start: start, End: end}
}

// extendFences grows a fenced code block's body span over the fence
// lines above and below it.
func (h *highlighter) extendFences(n *mdast.Node) mdast.SourceRange {
	span := h.lineSnapped(n.Span)
	if n.Code == nil || !n.Code.Fenced {
		return span
	}
	if span.IsEmpty() {
		// Empty fenced block; nothing reliable to anchor on.
		return span
	}

	startLine, _ := h.doc.Lines.LineAt(span.Start)
	if startLine > 1 && h.isFenceLine(startLine-1) {
		span.Start = h.doc.Lines.LineStart(startLine - 1)
	}

	endLine, _ := h.doc.Lines.LineAt(span.End - 1)
	if endLine < h.doc.Lines.LineCount() && h.isFenceLine(endLine+1) {
		tail := h.doc.Lines.LineSpan(endLine+1, len(h.doc.Content))
		end := tail.End
		for end > tail.Start && (h.doc.Content[end-1] == '\n' || h.doc.Content[end-1] == '\r') {
			end--
		}
		span.End = end
	}

	return span
}

func (h *highlighter) isFenceLine(line int) bool {
	span := h.doc.Lines.LineSpan(line, len(h.doc.Content))
	text := bytes.TrimSpace(h.doc.Content[span.Start:span.End])
	return bytes.HasPrefix(text, []byte("```")) || bytes.HasPrefix(text, []byte("~~~"))
}
