package render

import (
	"strconv"
	"strings"

	"github.com/yaklabco/mdview/pkg/langdetect"
	"github.com/yaklabco/mdview/pkg/mathspan"
	"github.com/yaklabco/mdview/pkg/mdast"
	"github.com/yaklabco/mdview/pkg/parser"
)

// listIndent is prepended once per nesting level to flattened list items.
const listIndent = "    "

// diagramFence is the fence info word recognized as a diagram block.
const diagramFence = "mermaid"

// Render turns Markdown source into an ordered block sequence.
//
// The source is first partitioned around $$...$$ display math; each math
// segment becomes a math block directly, and each Markdown segment is
// parsed and walked. Rendering is deterministic and total: for a fixed
// (source, style) pair, repeated calls produce identical output, and no
// input fails.
func Render(source string, style Style) []Block {
	r := &renderer{style: style}

	for _, seg := range mathspan.SplitBlocks(source) {
		if seg.Kind == mathspan.SegmentMath {
			r.flush()
			r.blocks = append(r.blocks, Block{
				Kind: BlockMath,
				Math: &MathContent{Latex: seg.Text, Display: true},
			})
			continue
		}

		doc := parser.Parse([]byte(seg.Text))
		for child := doc.Root.FirstChild; child != nil; child = child.Next {
			r.renderBlockNode(child, doc.Content)
		}
	}

	r.flush()
	return r.blocks
}

// renderer accumulates inline runs into a buffer that is flushed into a
// Text block whenever a structural element interrupts the inline flow.
type renderer struct {
	style  Style
	blocks []Block

	// runs is the pending inline buffer.
	runs []StyledRun

	// base carries flags from enclosing constructs (heading, quote).
	base RunStyle

	// ordinals is the ordered-list counter stack, one entry per nesting
	// level, incremented per item and popped on list exit.
	ordinals []int
}

func (r *renderer) renderBlockNode(n *mdast.Node, content []byte) {
	switch n.Kind {
	case mdast.NodeHeading:
		r.separator()
		level := 1
		if n.Heading != nil {
			level = n.Heading.Level
		}
		style := r.base
		style.HeadingLevel = level
		style.Bold = true
		style.Scale = r.style.HeadingScale(level)
		r.runs = appendInlineChildren(r.runs, style, n, content)

	case mdast.NodeParagraph:
		if img := standaloneImage(n); img != nil {
			r.flush()
			r.blocks = append(r.blocks, imageBlock(img))
			return
		}
		r.separator()
		r.runs = appendInlineChildren(r.runs, r.base, n, content)

	case mdast.NodeBlockquote:
		r.separator()
		saved := r.base
		r.base.Quote = true
		for child := n.FirstChild; child != nil; child = child.Next {
			r.renderBlockNode(child, content)
		}
		r.base = saved

	case mdast.NodeList:
		if !isOrdered(n) && containsTask(n) {
			r.flush()
			r.blocks = append(r.blocks, r.taskListBlock(n, content))
			return
		}
		r.separator()
		r.renderListFlattened(n, content, 0, true)

	case mdast.NodeCodeBlock:
		r.flush()
		r.blocks = append(r.blocks, r.codeBlock(n))

	case mdast.NodeTable:
		r.flush()
		r.blocks = append(r.blocks, r.tableBlock(n, content))

	case mdast.NodeThematicBreak:
		// A boundary with no content of its own.
		r.separator()

	case mdast.NodeHTMLBlock:
		r.separator()
		if span := n.Span; !span.IsEmpty() && span.End <= len(content) {
			r.runs = appendRun(r.runs, StyledRun{
				Text:  strings.TrimRight(string(content[span.Start:span.End]), "\n"),
				Style: r.base,
			})
		}

	default:
		// Unrecognized block shape degrades to its plain-text projection.
		r.separator()
		r.runs = appendTextRun(r.runs, r.base, n.PlainText())
	}
}

// separator inserts the double line-break between two inline-bearing
// blocks. Skipped when the buffer is empty (the very first block, or a
// buffer just flushed by a structural block) and when a separator is
// already pending, so adjacent boundaries never stack.
func (r *renderer) separator() {
	if len(r.runs) == 0 {
		return
	}
	if last := r.runs[len(r.runs)-1].Text; strings.HasSuffix(last, "\n\n") {
		return
	}
	r.runs = append(r.runs, StyledRun{Text: "\n\n", Style: r.base})
}

// flush converts the pending buffer into a Text block.
func (r *renderer) flush() {
	if len(r.runs) == 0 {
		return
	}

	content := TextContent{Runs: r.runs}
	r.runs = nil

	if content.IsEmpty() {
		return
	}
	resolveRuns(content.Runs, r.style)
	r.blocks = append(r.blocks, Block{Kind: BlockText, Text: &content})
}

// resolveRuns bakes the style's resolved palette into each run: the
// foreground color implied by the run's flags and the font family (mono
// for code and math). Rendering with a different style therefore yields
// different runs, which is what makes a theme change a full re-render.
func resolveRuns(runs []StyledRun, style Style) {
	for i := range runs {
		s := &runs[i].Style

		switch {
		case s.HeadingLevel > 0:
			s.Color = style.ResolvedAccentColor()
		case s.Math:
			s.Color = style.ResolvedAccentColor()
		case s.Code:
			s.Color = style.ResolvedCodeColor()
		case s.Link != "":
			s.Color = style.ResolvedLinkColor()
		case s.Quote:
			s.Color = style.ResolvedQuoteColor()
		}

		if s.Code || s.Math {
			s.Font = style.MonoFontFamily
		} else {
			s.Font = style.FontFamily
		}
	}
}

// renderListFlattened writes a plain list into the inline buffer with
// marker glyphs and 4-space-per-level indentation prepended to each item.
func (r *renderer) renderListFlattened(n *mdast.Node, content []byte, depth int, firstLine bool) {
	ordered := isOrdered(n)
	if ordered {
		start := 1
		if n.List != nil && n.List.Start > 0 {
			start = n.List.Start
		}
		r.ordinals = append(r.ordinals, start-1)
		defer func() { r.ordinals = r.ordinals[:len(r.ordinals)-1] }()
	}

	for item := n.FirstChild; item != nil; item = item.Next {
		if item.Kind != mdast.NodeListItem {
			continue
		}

		if !firstLine {
			r.runs = appendRun(r.runs, StyledRun{Text: "\n", Style: r.base})
		}
		firstLine = false

		marker := r.style.Bullet(depth)
		if ordered {
			r.ordinals[len(r.ordinals)-1]++
			marker = strconv.Itoa(r.ordinals[len(r.ordinals)-1]) + "."
		}
		r.runs = appendRun(r.runs, StyledRun{
			Text:  strings.Repeat(listIndent, depth) + marker + " ",
			Style: r.base,
		})

		for child := item.FirstChild; child != nil; child = child.Next {
			switch child.Kind {
			case mdast.NodeList:
				r.runs = appendRun(r.runs, StyledRun{Text: "\n", Style: r.base})
				r.renderListFlattened(child, content, depth+1, true)
			case mdast.NodeParagraph:
				r.runs = appendInlineChildren(r.runs, r.base, child, content)
			default:
				r.runs = appendTextRun(r.runs, r.base, child.PlainText())
			}
		}
	}
}

// taskListBlock renders every item of a checkbox-bearing list as a task.
// Items without a checkbox are included unchecked.
func (r *renderer) taskListBlock(n *mdast.Node, content []byte) Block {
	var tasks []TaskItem

	for item := n.FirstChild; item != nil; item = item.Next {
		if item.Kind != mdast.NodeListItem {
			continue
		}

		checked := false
		if box := mdast.FindFirst(item, func(c *mdast.Node) bool {
			return c.Kind == mdast.NodeTaskCheckbox
		}); box != nil && box.Task != nil {
			checked = box.Task.Checked
		}

		itemContent := renderInlineContent(item, content)
		trimLeadingSpace(&itemContent)
		resolveRuns(itemContent.Runs, r.style)

		tasks = append(tasks, TaskItem{Checked: checked, Content: itemContent})
	}

	return Block{Kind: BlockTaskList, Tasks: tasks}
}

func (r *renderer) codeBlock(n *mdast.Node) Block {
	code := ""
	info := ""
	if n.Code != nil {
		code = string(n.Code.Literal)
		info = n.Code.Info
	}

	lang := strings.ToLower(firstWord(info))
	if lang == diagramFence {
		return Block{Kind: BlockDiagram, Diagram: &DiagramContent{Source: code}}
	}
	if lang == "" {
		lang = langdetect.Infer([]byte(code))
	}

	return Block{Kind: BlockCode, Code: &CodeContent{
		Code:     code,
		Info:     info,
		Language: lang,
	}}
}

// tableBlock builds TableData from a table node, enforcing the shape
// invariant: every row and the alignment list match the header width.
func (r *renderer) tableBlock(n *mdast.Node, content []byte) Block {
	data := &TableData{}
	if n.Table != nil {
		data.Alignments = append(data.Alignments, n.Table.Alignments...)
	}

	for child := n.FirstChild; child != nil; child = child.Next {
		switch child.Kind {
		case mdast.NodeTableHeader:
			data.Headers = r.rowCells(child, content)
		case mdast.NodeTableRow:
			data.Rows = append(data.Rows, r.rowCells(child, content))
		}
	}

	width := len(data.Headers)

	// Pad alignments with left; truncate extras.
	for len(data.Alignments) < width {
		data.Alignments = append(data.Alignments, mdast.AlignLeft)
	}
	data.Alignments = data.Alignments[:width]

	for i, row := range data.Rows {
		for len(row) < width {
			row = append(row, TextContent{})
		}
		data.Rows[i] = row[:width]
	}

	return Block{Kind: BlockTable, Table: data}
}

func (r *renderer) rowCells(row *mdast.Node, content []byte) []TextContent {
	var cells []TextContent
	for cell := row.FirstChild; cell != nil; cell = cell.Next {
		if cell.Kind == mdast.NodeTableCell {
			c := renderInlineContent(cell, content)
			resolveRuns(c.Runs, r.style)
			cells = append(cells, c)
		}
	}
	return cells
}

// standaloneImage returns the image node when a paragraph consists of
// exactly one image child, which is promoted to an Image block instead
// of floating in text.
func standaloneImage(paragraph *mdast.Node) *mdast.Node {
	only := paragraph.FirstChild
	if only != nil && only.Next == nil && only.Kind == mdast.NodeImage {
		return only
	}
	return nil
}

func imageBlock(img *mdast.Node) Block {
	alt := img.PlainText()
	if alt == "" {
		alt = imagePlaceholder
	}

	image := &ImageContent{Alt: alt}
	if img.Link != nil {
		image.Source = img.Link.Destination
		image.Title = img.Link.Title
	}

	return Block{Kind: BlockImage, Image: image}
}

func isOrdered(n *mdast.Node) bool {
	return n.List != nil && n.List.Ordered
}

// containsTask reports whether any list item carries a task checkbox.
func containsTask(n *mdast.Node) bool {
	return mdast.FindFirst(n, func(c *mdast.Node) bool {
		return c.Kind == mdast.NodeTaskCheckbox
	}) != nil
}

func trimLeadingSpace(t *TextContent) {
	if len(t.Runs) > 0 {
		t.Runs[0].Text = strings.TrimLeft(t.Runs[0].Text, " ")
	}
}

func firstWord(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexAny(s, " \t"); idx >= 0 {
		return s[:idx]
	}
	return s
}
