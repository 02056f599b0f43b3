package parser

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdview/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree, translating
// goldmark's line-segment positions into flat byte spans as it goes.
type mapper struct {
	content []byte
}

func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// mapDocument converts a goldmark document node to an mdast tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewRoot()
	m.mapChildren(gmDoc, doc)
	fillSpans(doc)
	return doc
}

// mapChildren recursively maps all children of a goldmark node. Text
// leaves are handled here rather than in mapNode because goldmark flags
// a line break on the text node preceding it, which maps to two mdast
// nodes.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			m.appendText(parent, t)
			continue
		}
		if node := m.mapNode(child); node != nil {
			mdast.AppendChild(parent, node)
		}
	}
}

// appendText adds a text leaf and, when the goldmark node ends in a line
// break, a trailing break node.
func (m *mapper) appendText(parent *mdast.Node, t *ast.Text) {
	if t.Segment.Len() > 0 {
		literal := t.Value(m.content)
		if t.HardLineBreak() {
			// The break's marker spaces are not text content.
			literal = bytes.TrimRight(literal, " \t")
		}
		if len(literal) > 0 {
			node := mdast.NewNode(mdast.NodeText)
			node.Literal = literal
			node.Span = mdast.SourceRange{Start: t.Segment.Start, End: t.Segment.Stop}
			mdast.AppendChild(parent, node)
		}
	}

	switch {
	case t.HardLineBreak():
		br := mdast.NewNode(mdast.NodeHardBreak)
		br.Span = mdast.SourceRange{Start: t.Segment.Stop, End: t.Segment.Stop}
		mdast.AppendChild(parent, br)
	case t.SoftLineBreak():
		br := mdast.NewNode(mdast.NodeSoftBreak)
		br.Span = mdast.SourceRange{Start: t.Segment.Stop, End: t.Segment.Stop}
		mdast.AppendChild(parent, br)
	}
}

// mapNode converts a single goldmark node to an mdast.Node.
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	var node *mdast.Node

	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		node = mdast.NewNode(mdast.NodeHeading)
		node.Heading = &mdast.HeadingAttrs{Level: gmn.Level}
		node.Span = m.blockSpan(gmNode)
		m.mapChildren(gmNode, node)

	case *ast.Paragraph:
		node = mdast.NewNode(mdast.NodeParagraph)
		node.Span = m.blockSpan(gmNode)
		m.mapChildren(gmNode, node)

	case *ast.TextBlock:
		// Tight list items wrap their content in a TextBlock instead of
		// a Paragraph; treat them the same.
		node = mdast.NewNode(mdast.NodeParagraph)
		node.Span = m.blockSpan(gmNode)
		m.mapChildren(gmNode, node)

	case *ast.List:
		node = m.mapList(gmn)

	case *ast.ListItem:
		node = mdast.NewNode(mdast.NodeListItem)
		node.Span = m.blockSpan(gmNode)
		m.mapChildren(gmNode, node)

	case *ast.Blockquote:
		node = mdast.NewNode(mdast.NodeBlockquote)
		node.Span = m.blockSpan(gmNode)
		m.mapChildren(gmNode, node)

	case *ast.FencedCodeBlock:
		node = m.mapFencedCodeBlock(gmn)

	case *ast.CodeBlock:
		node = m.mapIndentedCodeBlock(gmn)

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.NodeThematicBreak)

	case *ast.HTMLBlock:
		node = mdast.NewNode(mdast.NodeHTMLBlock)
		node.Span = m.blockSpan(gmNode)

	// Inline-level nodes. *ast.Text never reaches here; mapChildren
	// intercepts it.
	case *ast.String:
		node = mdast.NewNode(mdast.NodeText)
		node.Literal = gmn.Value

	case *ast.Emphasis:
		if gmn.Level == 2 {
			node = mdast.NewNode(mdast.NodeStrong)
		} else {
			node = mdast.NewNode(mdast.NodeEmphasis)
		}
		m.mapChildren(gmNode, node)

	case *ast.CodeSpan:
		node = m.mapCodeSpan(gmn)

	case *ast.Link:
		node = mdast.NewNode(mdast.NodeLink)
		node.Link = &mdast.LinkAttrs{
			Destination: string(gmn.Destination),
			Title:       string(gmn.Title),
		}
		m.mapChildren(gmNode, node)

	case *ast.Image:
		node = mdast.NewNode(mdast.NodeImage)
		node.Link = &mdast.LinkAttrs{
			Destination: string(gmn.Destination),
			Title:       string(gmn.Title),
		}
		m.mapChildren(gmNode, node)

	case *ast.AutoLink:
		node = m.mapAutoLink(gmn)

	case *ast.RawHTML:
		node = mdast.NewNode(mdast.NodeHTMLInline)
		node.Span = rawHTMLSpan(gmn)

	// GFM extension nodes.
	case *east.Strikethrough:
		node = mdast.NewNode(mdast.NodeStrikethrough)
		m.mapChildren(gmNode, node)

	case *east.TaskCheckBox:
		node = mdast.NewNode(mdast.NodeTaskCheckbox)
		node.Task = &mdast.TaskAttrs{Checked: gmn.IsChecked}

	case *east.Table:
		node = mdast.NewNode(mdast.NodeTable)
		node.Table = &mdast.TableAttrs{Alignments: mapAlignments(gmn.Alignments)}
		m.mapChildren(gmNode, node)

	case *east.TableHeader:
		node = mdast.NewNode(mdast.NodeTableHeader)
		m.mapChildren(gmNode, node)

	case *east.TableRow:
		node = mdast.NewNode(mdast.NodeTableRow)
		m.mapChildren(gmNode, node)

	case *east.TableCell:
		node = mdast.NewNode(mdast.NodeTableCell)
		node.Cell = &mdast.CellAttrs{Alignment: mapAlignment(gmn.Alignment)}
		node.Span = m.blockSpan(gmNode)
		m.mapChildren(gmNode, node)

	default:
		// Fallback for unrecognized node types.
		node = mdast.NewNode(mdast.NodeRaw)
		m.mapChildren(gmNode, node)
	}

	return node
}

func (m *mapper) mapList(list *ast.List) *mdast.Node {
	node := mdast.NewNode(mdast.NodeList)

	attrs := &mdast.ListAttrs{
		Ordered: list.IsOrdered(),
		Tight:   list.IsTight,
	}
	if list.IsOrdered() {
		attrs.Start = list.Start
	} else {
		attrs.Marker = string(list.Marker)
	}

	node.List = attrs
	m.mapChildren(list, node)
	return node
}

func (m *mapper) mapFencedCodeBlock(cb *ast.FencedCodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)

	info := ""
	if cb.Info != nil {
		info = string(cb.Info.Value(m.content))
	}

	node.Code = &mdast.CodeAttrs{
		Info:    info,
		Literal: m.codeLines(cb),
		Fenced:  true,
	}
	node.Span = m.blockSpan(cb)
	return node
}

func (m *mapper) mapIndentedCodeBlock(cb *ast.CodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)
	node.Code = &mdast.CodeAttrs{
		Literal: m.codeLines(cb),
	}
	node.Span = m.blockSpan(cb)
	return node
}

// codeLines concatenates the verbatim body lines of a code block.
func (m *mapper) codeLines(gmNode ast.Node) []byte {
	lines := gmNode.Lines()
	var body []byte
	for i := range lines.Len() {
		seg := lines.At(i)
		body = append(body, m.content[seg.Start:seg.Stop]...)
	}
	return body
}

func (m *mapper) mapCodeSpan(cs *ast.CodeSpan) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeSpan)

	var literal []byte
	span := mdast.SourceRange{}
	for child := cs.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			literal = append(literal, t.Value(m.content)...)
			span = span.Union(mdast.SourceRange{Start: t.Segment.Start, End: t.Segment.Stop})
		}
	}

	node.Literal = literal
	node.Span = span
	return node
}

func (m *mapper) mapAutoLink(al *ast.AutoLink) *mdast.Node {
	node := mdast.NewNode(mdast.NodeLink)
	node.Link = &mdast.LinkAttrs{
		Destination: string(al.URL(m.content)),
	}

	textNode := mdast.NewNode(mdast.NodeText)
	textNode.Literal = al.Label(m.content)
	mdast.AppendChild(node, textNode)

	return node
}

// blockSpan extracts the byte span covered by a goldmark node's line
// segments. Returns an empty span for nodes without line information.
func (m *mapper) blockSpan(gmNode ast.Node) mdast.SourceRange {
	lines := gmNode.Lines()
	if lines == nil || lines.Len() == 0 {
		return mdast.SourceRange{}
	}

	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	return mdast.SourceRange{Start: first.Start, End: last.Stop}
}

func rawHTMLSpan(raw *ast.RawHTML) mdast.SourceRange {
	span := mdast.SourceRange{}
	for i := range raw.Segments.Len() {
		seg := raw.Segments.At(i)
		span = span.Union(mdast.SourceRange{Start: seg.Start, End: seg.Stop})
	}
	return span
}

// fillSpans gives container nodes without their own position the union of
// their children's spans, bottom-up. Containers like lists and blockquotes
// have no line segments of their own in goldmark.
func fillSpans(node *mdast.Node) mdast.SourceRange {
	span := node.Span
	for child := node.FirstChild; child != nil; child = child.Next {
		span = span.Union(fillSpans(child))
	}
	node.Span = span
	return span
}

func mapAlignments(in []east.Alignment) []mdast.CellAlignment {
	out := make([]mdast.CellAlignment, len(in))
	for i, a := range in {
		out[i] = mapAlignment(a)
	}
	return out
}

func mapAlignment(a east.Alignment) mdast.CellAlignment {
	switch a {
	case east.AlignLeft:
		return mdast.AlignLeft
	case east.AlignCenter:
		return mdast.AlignCenter
	case east.AlignRight:
		return mdast.AlignRight
	default:
		return mdast.AlignNone
	}
}
