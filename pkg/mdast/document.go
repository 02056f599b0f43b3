// Package mdast provides the core Markdown AST representation for mdview.
// It defines an immutable view of a parsed Markdown document:
// - Document: raw content, line index, and the AST root
// - Nodes: a tagged-kind tree referencing byte spans of the content
// - Walk helpers for switch-based visitors
package mdast

// Document is an immutable view of parsed Markdown content.
// It is produced by a Parser and discarded after the pipeline stages
// that consume it complete; edits produce a wholly new Document.
type Document struct {
	// Content is the full source bytes. Never mutated.
	Content []byte

	// Lines is the precomputed line-start index for Content.
	Lines LineIndex

	// Root is the AST root node (NodeDocument).
	Root *Node
}

// NewDocument creates a Document shell with its line index built.
// The Root is populated by a parser.
func NewDocument(content []byte) *Document {
	return &Document{
		Content: content,
		Lines:   BuildLineIndex(content),
	}
}

// SpanText returns the content slice for a range, clipped to bounds.
func (d *Document) SpanText(r SourceRange) []byte {
	if r.Start < 0 || r.End > len(d.Content) || r.Start > r.End {
		return nil
	}
	return d.Content[r.Start:r.End]
}
