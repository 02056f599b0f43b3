package render

import (
	"strings"

	"github.com/yaklabco/mdview/pkg/mathspan"
	"github.com/yaklabco/mdview/pkg/mdast"
)

// imagePlaceholder labels inline images with no alt text.
const imagePlaceholder = "[image]"

// appendInline walks an inline subtree and appends styled runs. The base
// style carries the flags accumulated by enclosing constructs (heading
// level, quote, emphasis). Used both by the main block walker and by the
// cell/task renderer, which handles all inline constructs but not lists.
func appendInline(runs []StyledRun, base RunStyle, n *mdast.Node, content []byte) []StyledRun {
	switch n.Kind {
	case mdast.NodeText:
		return appendTextRun(runs, base, string(n.Literal))

	case mdast.NodeSoftBreak:
		return appendRun(runs, StyledRun{Text: " ", Style: base})

	case mdast.NodeHardBreak:
		return appendRun(runs, StyledRun{Text: "\n", Style: base})

	case mdast.NodeCodeSpan:
		style := base
		style.Code = true
		return appendRun(runs, StyledRun{Text: string(n.Literal), Style: style})

	case mdast.NodeEmphasis:
		style := base
		style.Italic = true
		return appendInlineChildren(runs, style, n, content)

	case mdast.NodeStrong:
		style := base
		style.Bold = true
		return appendInlineChildren(runs, style, n, content)

	case mdast.NodeStrikethrough:
		style := base
		style.Strikethrough = true
		return appendInlineChildren(runs, style, n, content)

	case mdast.NodeLink:
		style := base
		if n.Link != nil {
			style.Link = n.Link.Destination
		}
		return appendInlineChildren(runs, style, n, content)

	case mdast.NodeImage:
		// An image inside flowing text renders as its alt text linked to
		// its source; standalone images are promoted to Image blocks by
		// the block walker before reaching here.
		style := base
		alt := n.PlainText()
		if alt == "" {
			alt = imagePlaceholder
		}
		if n.Link != nil {
			style.Link = n.Link.Destination
		}
		return appendRun(runs, StyledRun{Text: alt, Style: style})

	case mdast.NodeTaskCheckbox:
		// Handled by the task-list path; invisible in flowing text.
		return runs

	case mdast.NodeHTMLInline:
		if span := n.Span; !span.IsEmpty() && span.End <= len(content) {
			return appendRun(runs, StyledRun{Text: string(content[span.Start:span.End]), Style: base})
		}
		return runs

	default:
		// Unrecognized inline content degrades to its children's text.
		return appendInlineChildren(runs, base, n, content)
	}
}

func appendInlineChildren(runs []StyledRun, base RunStyle, n *mdast.Node, content []byte) []StyledRun {
	for child := n.FirstChild; child != nil; child = child.Next {
		runs = appendInline(runs, base, child, content)
	}
	return runs
}

// appendTextRun splits a text run around inline $...$ math, emitting
// alternating plain and math runs in original order. Backslash escapes
// must survive until math extraction (an escaped dollar never opens
// math), then the plain segments drop the backslashes; math segments
// keep their source verbatim for the math backend.
func appendTextRun(runs []StyledRun, base RunStyle, text string) []StyledRun {
	spans := mathspan.FindInline(text)
	if len(spans) == 0 {
		return appendRun(runs, StyledRun{Text: unescapePunctuation(text), Style: base})
	}

	pos := 0
	for _, m := range spans {
		if m.Span.Start > pos {
			runs = appendRun(runs, StyledRun{Text: unescapePunctuation(text[pos:m.Span.Start]), Style: base})
		}

		mathStyle := base
		mathStyle.Math = true
		runs = appendRun(runs, StyledRun{Text: m.Latex, Style: mathStyle})

		pos = m.Span.End
	}
	if pos < len(text) {
		runs = appendRun(runs, StyledRun{Text: unescapePunctuation(text[pos:]), Style: base})
	}

	return runs
}

// unescapePunctuation removes the backslash from backslash-punctuation
// escape sequences. A backslash before anything else stays literal.
func unescapePunctuation(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isEscapable(s[i+1]) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// isEscapable reports whether b is ASCII punctuation, the escapable set.
func isEscapable(b byte) bool {
	switch b {
	case '!', '"', '#', '$', '%', '&', '\'', '(', ')', '*', '+', ',', '-',
		'.', '/', ':', ';', '<', '=', '>', '?', '@', '[', '\\', ']', '^',
		'_', '`', '{', '|', '}', '~':
		return true
	}
	return false
}

func appendRun(runs []StyledRun, run StyledRun) []StyledRun {
	if run.Text == "" {
		return runs
	}

	// Merge with the previous run when styles agree, keeping the run
	// sequence minimal.
	if len(runs) > 0 && runs[len(runs)-1].Style == run.Style {
		runs[len(runs)-1].Text += run.Text
		return runs
	}

	return append(runs, run)
}

// renderInlineContent renders an inline subtree in isolation, for table
// cells and task items.
func renderInlineContent(n *mdast.Node, content []byte) TextContent {
	return TextContent{Runs: appendInlineChildren(nil, RunStyle{}, n, content)}
}
