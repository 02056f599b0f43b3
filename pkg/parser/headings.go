package parser

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdview/pkg/mdast"
)

// HeadingInfo is a navigation entry for one heading, in document order.
type HeadingInfo struct {
	// Level is the heading level, 1 through 6.
	Level int

	// Text is the plain-text projection of the heading content,
	// with all inline markup stripped.
	Text string

	// ID is a stable identity for the heading, unique within the
	// document even when two headings share the same text.
	ID string
}

// ExtractHeadings collects every heading among the document's top-level
// block children, in source order.
func ExtractHeadings(doc *mdast.Document) []HeadingInfo {
	if doc == nil || doc.Root == nil {
		return nil
	}

	var headings []HeadingInfo
	for child := doc.Root.FirstChild; child != nil; child = child.Next {
		if child.Kind != mdast.NodeHeading || child.Heading == nil {
			continue
		}

		text := child.PlainText()
		headings = append(headings, HeadingInfo{
			Level: child.Heading.Level,
			Text:  text,
			ID:    headingID(text, len(headings)),
		})
	}

	return headings
}

// headingID derives a stable anchor-style identity. The ordinal keeps
// duplicate heading texts distinct.
func headingID(text string, ordinal int) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, text)

	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "heading"
	}

	return fmt.Sprintf("%s-%d", slug, ordinal)
}
