// Package render walks parsed Markdown into an ordered sequence of typed
// content blocks with styled inline runs, ready for layout by a
// presentation layer. Rendering is a pure function of (source, style);
// a new edit produces a wholly new block sequence.
package render

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/yaklabco/mdview/pkg/mdast"
)

//go:generate stringer -type=BlockKind -trimprefix=Block

// BlockKind classifies a content block.
type BlockKind int

// Content block variants.
const (
	BlockText BlockKind = iota
	BlockTable
	BlockTaskList
	BlockCode
	BlockImage
	BlockDiagram
	BlockMath
)

// Block is one self-contained unit of rendered content. Exactly the
// payload field matching Kind is non-nil.
type Block struct {
	Kind BlockKind

	Text    *TextContent
	Table   *TableData
	Tasks   []TaskItem
	Code    *CodeContent
	Image   *ImageContent
	Diagram *DiagramContent
	Math    *MathContent
}

// TableData is the payload of a table block.
// Invariant: len(Alignments) == len(Headers), and every row in Rows has
// len(Headers) cells (short rows are padded with empty cells).
type TableData struct {
	Headers    []TextContent
	Rows       [][]TextContent
	Alignments []mdast.CellAlignment
}

// TaskItem is one entry of a task list. Its position in the Tasks slice
// is the ordinal index used by toggle-by-index operations.
type TaskItem struct {
	Checked bool
	Content TextContent
}

// CodeContent is the payload of a code block.
type CodeContent struct {
	// Code is the verbatim block body, fences excluded.
	Code string

	// Info is the declared fence info string, possibly empty.
	Info string

	// Language is the resolved highlighting language: the first word of
	// Info when present, otherwise an inferred guess (never empty).
	Language string
}

// ImageContent is the payload of a standalone image block. Source is the
// exact, unvalidated path or URL extracted from the document; resolving
// and loading it belongs to the image backend.
type ImageContent struct {
	Source string
	Alt    string
	Title  string
}

// DiagramContent carries the exact fence body for the diagram backend.
type DiagramContent struct {
	Source string
}

// MathContent carries LaTeX source for the math backend.
type MathContent struct {
	Latex string

	// Display is true for $$...$$ blocks, false for inline math
	// promoted to its own block.
	Display bool
}

// PlainText returns the searchable plain-text projection of the block.
func (b Block) PlainText() string {
	switch b.Kind {
	case BlockText:
		if b.Text != nil {
			return b.Text.PlainText()
		}
	case BlockTable:
		if b.Table != nil {
			return b.Table.plainText()
		}
	case BlockTaskList:
		var parts []string
		for _, task := range b.Tasks {
			parts = append(parts, task.Content.PlainText())
		}
		return strings.Join(parts, "\n")
	case BlockCode:
		if b.Code != nil {
			return b.Code.Code
		}
	case BlockImage:
		if b.Image != nil {
			return b.Image.Alt
		}
	case BlockDiagram:
		if b.Diagram != nil {
			return b.Diagram.Source
		}
	case BlockMath:
		if b.Math != nil {
			return b.Math.Latex
		}
	}
	return ""
}

// ID returns a structural identity for the block, derived from its kind
// and content. Equal blocks hash equal regardless of position.
func (b Block) ID() string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d\x00%s", b.Kind, b.PlainText())

	// Fold in attributes the plain text misses.
	switch b.Kind {
	case BlockCode:
		if b.Code != nil {
			fmt.Fprintf(h, "\x00%s", b.Code.Language)
		}
	case BlockImage:
		if b.Image != nil {
			fmt.Fprintf(h, "\x00%s\x00%s", b.Image.Source, b.Image.Title)
		}
	case BlockTaskList:
		for _, task := range b.Tasks {
			fmt.Fprintf(h, "\x00%t", task.Checked)
		}
	case BlockMath:
		if b.Math != nil {
			fmt.Fprintf(h, "\x00%t", b.Math.Display)
		}
	}

	return fmt.Sprintf("%016x", h.Sum64())
}

func (t *TableData) plainText() string {
	var parts []string
	for _, h := range t.Headers {
		parts = append(parts, h.PlainText())
	}
	for _, row := range t.Rows {
		for _, cell := range row {
			parts = append(parts, cell.PlainText())
		}
	}
	return strings.Join(parts, " ")
}
