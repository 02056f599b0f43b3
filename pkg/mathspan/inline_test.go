package mathspan_test

import (
	"testing"

	"github.com/yaklabco/mdview/pkg/mathspan"
	"github.com/yaklabco/mdview/pkg/mdast"
)

func TestFindInline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []mathspan.InlineMath
	}{
		{
			name: "simple expression",
			text: "$x$",
			want: []mathspan.InlineMath{
				{Latex: "x", Span: mdast.SourceRange{Start: 0, End: 3}},
			},
		},
		{
			name: "double dollars never match inline",
			text: "$$x$$",
			want: nil,
		},
		{
			name: "escaped dollar",
			text: `\$50`,
			want: nil,
		},
		{
			name: "ambiguous adjacency rejected entirely",
			text: "$a$$b$",
			want: nil,
		},
		{
			name: "interior spaces preserved",
			text: "$ x $",
			want: []mathspan.InlineMath{
				{Latex: " x ", Span: mdast.SourceRange{Start: 0, End: 5}},
			},
		},
		{
			name: "empty content rejected",
			text: "$$",
			want: nil,
		},
		{
			name: "unclosed dollar",
			text: "costs $5 total",
			want: nil,
		},
		{
			name: "expression embedded in prose",
			text: "see $E=mc^2$ for details",
			want: []mathspan.InlineMath{
				{Latex: "E=mc^2", Span: mdast.SourceRange{Start: 4, End: 12}},
			},
		},
		{
			name: "two separate expressions",
			text: "$a$ and $b$",
			want: []mathspan.InlineMath{
				{Latex: "a", Span: mdast.SourceRange{Start: 0, End: 3}},
				{Latex: "b", Span: mdast.SourceRange{Start: 8, End: 11}},
			},
		},
		{
			name: "escaped dollar inside content is not a closer",
			text: `$a\$b$`,
			want: []mathspan.InlineMath{
				{Latex: `a\$b`, Span: mdast.SourceRange{Start: 0, End: 6}},
			},
		},
		{
			name: "no dollars at all",
			text: "plain text",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mathspan.FindInline(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d matches, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("match[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
