// Package parser wraps the goldmark CommonMark/GFM parser and converts its
// AST into the owned mdast representation used by the rest of the pipeline.
package parser

import (
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdview/pkg/mdast"
)

// Parser converts raw Markdown bytes into an mdast.Document.
// A Parser is safe for concurrent use and should be reused across calls.
type Parser struct {
	md goldmark.Markdown
}

// New creates a GFM-enabled parser (tables, task lists, strikethrough,
// autolinks layered on CommonMark).
func New() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Parse converts content into a fully-populated Document.
//
// Parsing is total: malformed Markdown degrades to literal text nodes per
// the CommonMark grammar, so there is no error return. The input slice is
// copied; the returned Document never aliases caller memory.
func (p *Parser) Parse(content []byte) *mdast.Document {
	doc := mdast.NewDocument(copyContent(content))

	reader := text.NewReader(doc.Content)
	gmDoc := p.md.Parser().Parse(reader, gmparser.WithContext(gmparser.NewContext()))

	m := newMapper(doc.Content)
	doc.Root = m.mapDocument(gmDoc)

	return doc
}

// defaultParser is the shared package-level parser instance.
//
//nolint:gochecknoglobals // Shared parser is immutable after construction
var defaultParser = sync.OnceValue(New)

// Parse converts content using the shared package-level parser.
func Parse(content []byte) *mdast.Document {
	return defaultParser().Parse(content)
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
