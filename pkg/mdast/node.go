package mdast

//go:generate stringer -type=NodeKind -trimprefix=Node

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock
	NodeTable
	NodeTableHeader
	NodeTableRow
	NodeTableCell

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeStrikethrough
	NodeCodeSpan
	NodeLink
	NodeImage
	NodeTaskCheckbox
	NodeSoftBreak
	NodeHardBreak
	NodeHTMLInline

	// Fallback for unrecognized content.
	NodeRaw
)

// CellAlignment is a per-column table alignment.
type CellAlignment int

// Table column alignments in GFM pipe-table order.
const (
	AlignNone CellAlignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// HeadingAttrs holds attributes specific to heading nodes.
type HeadingAttrs struct {
	// Level is the heading level, 1 through 6.
	Level int
}

// ListAttrs holds attributes specific to list nodes.
type ListAttrs struct {
	// Ordered is true for numbered lists.
	Ordered bool

	// Start is the first item number of an ordered list.
	Start int

	// Marker is the bullet character for unordered lists ("-", "*", "+").
	Marker string

	// Tight is true when the list has no blank lines between items.
	Tight bool
}

// CodeAttrs holds attributes specific to code block nodes.
type CodeAttrs struct {
	// Info is the fence info string ("go", "mermaid", ...); empty for
	// indented code blocks and bare fences.
	Info string

	// Literal is the verbatim body of the block, fences excluded.
	Literal []byte

	// Fenced is false for indented code blocks.
	Fenced bool
}

// LinkAttrs holds attributes for link and image nodes.
type LinkAttrs struct {
	// Destination is the link target or image source.
	Destination string

	// Title is the optional link/image title.
	Title string
}

// TaskAttrs holds attributes for GFM task checkboxes.
type TaskAttrs struct {
	Checked bool
}

// TableAttrs holds attributes for GFM table nodes.
type TableAttrs struct {
	// Alignments has one entry per column, in source order.
	Alignments []CellAlignment
}

// CellAttrs holds attributes for GFM table cell nodes.
type CellAttrs struct {
	Alignment CellAlignment
}

// Node is a single node in the Markdown AST. Nodes form a tree with
// parent/child/sibling links and carry their byte range in the source.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Span is the byte range this node covers in the source content.
	// Zero-width spans mark nodes whose exact extent is unknown
	// (synthetic nodes, constructs goldmark does not track).
	Span SourceRange

	// Literal is the text content for leaf nodes (NodeText, NodeCodeSpan).
	Literal []byte

	// Kind-specific attributes; nil for kinds they do not apply to.
	Heading *HeadingAttrs
	List    *ListAttrs
	Code    *CodeAttrs
	Link    *LinkAttrs
	Task    *TaskAttrs
	Table   *TableAttrs
	Cell    *CellAttrs
}

// NewNode creates a detached node of the given kind.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewRoot creates an empty document root node.
func NewRoot() *Node {
	return NewNode(NodeDocument)
}

// AppendChild attaches child as the last child of parent.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeParagraph, NodeHeading, NodeList, NodeListItem,
		NodeBlockquote, NodeCodeBlock, NodeThematicBreak, NodeHTMLBlock,
		NodeTable, NodeTableHeader, NodeTableRow, NodeTableCell:
		return true
	default:
		return false
	}
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	switch n.Kind {
	case NodeText, NodeEmphasis, NodeStrong, NodeStrikethrough, NodeCodeSpan,
		NodeLink, NodeImage, NodeTaskCheckbox, NodeSoftBreak, NodeHardBreak,
		NodeHTMLInline:
		return true
	default:
		return false
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// PlainText returns the markup-stripped text projection of the subtree:
// the concatenation of every descendant text leaf, with soft breaks
// collapsed to single spaces.
func (n *Node) PlainText() string {
	var buf []byte
	appendPlainText(n, &buf)
	return string(buf)
}

func appendPlainText(n *Node, buf *[]byte) {
	switch n.Kind {
	case NodeText, NodeCodeSpan:
		*buf = append(*buf, n.Literal...)
		return
	case NodeSoftBreak:
		*buf = append(*buf, ' ')
		return
	case NodeHardBreak:
		*buf = append(*buf, '\n')
		return
	case NodeCodeBlock:
		if n.Code != nil {
			*buf = append(*buf, n.Code.Literal...)
		}
		return
	}

	for child := n.FirstChild; child != nil; child = child.Next {
		appendPlainText(child, buf)
	}
}
