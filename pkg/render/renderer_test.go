package render_test

import (
	"reflect"
	"testing"

	"github.com/yaklabco/mdview/pkg/render"
)

func renderDefault(source string) []render.Block {
	return render.Render(source, render.DefaultStyle())
}

func TestRenderDocumentShape(t *testing.T) {
	t.Parallel()

	source := "# Title\n\nSee $E=mc^2$ and:\n\n| A | B |\n|---|---|\n| 1 | 2 |\n\n- [ ] task one\n- [x] task two\n"
	blocks := renderDefault(source)

	wantKinds := []render.BlockKind{render.BlockText, render.BlockTable, render.BlockTaskList}
	if len(blocks) != len(wantKinds) {
		t.Fatalf("got %d blocks, want %d: %+v", len(blocks), len(wantKinds), blocks)
	}
	for i, k := range wantKinds {
		if blocks[i].Kind != k {
			t.Errorf("block[%d].Kind = %v, want %v", i, blocks[i].Kind, k)
		}
	}

	// The text block holds the heading and the paragraph, separated by a
	// double line break, with the inline math as its own run.
	text := blocks[0].Text
	if text == nil {
		t.Fatal("text block has nil payload")
	}
	if got := text.PlainText(); got != "Title\n\nSee E=mc^2 and:" {
		t.Errorf("text projection = %q", got)
	}

	var mathRun *render.StyledRun
	for i := range text.Runs {
		if text.Runs[i].Style.Math {
			mathRun = &text.Runs[i]
		}
	}
	if mathRun == nil {
		t.Fatal("no math run in text block")
	}
	if mathRun.Text != "E=mc^2" {
		t.Errorf("math run = %q, want %q", mathRun.Text, "E=mc^2")
	}

	// Task list items carry their checkbox state in order.
	tasks := blocks[2].Tasks
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].Checked || !tasks[1].Checked {
		t.Errorf("task states = [%t, %t], want [false, true]", tasks[0].Checked, tasks[1].Checked)
	}
	if got := tasks[0].Content.PlainText(); got != "task one" {
		t.Errorf("task[0] text = %q, want %q", got, "task one")
	}
}

func TestRenderDeterministic(t *testing.T) {
	t.Parallel()

	source := "# A\n\npara with *emphasis* and `code`\n\n```go\nx := 1\n```\n\n- one\n- two\n"
	first := renderDefault(source)
	second := renderDefault(source)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated renders differ")
	}
}

func TestRenderHeadingStyle(t *testing.T) {
	t.Parallel()

	blocks := renderDefault("## Section\n")

	if len(blocks) != 1 || blocks[0].Kind != render.BlockText {
		t.Fatalf("unexpected blocks: %+v", blocks)
	}
	run := blocks[0].Text.Runs[0]
	if run.Style.HeadingLevel != 2 {
		t.Errorf("HeadingLevel = %d, want 2", run.Style.HeadingLevel)
	}
	if !run.Style.Bold {
		t.Error("heading run should be bold")
	}
}

func TestRenderInlineStyles(t *testing.T) {
	t.Parallel()

	blocks := renderDefault("*it* **bold** ~~strike~~ `code` [link](https://example.com)\n")

	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	runs := blocks[0].Text.Runs

	find := func(text string) *render.StyledRun {
		for i := range runs {
			if runs[i].Text == text {
				return &runs[i]
			}
		}
		t.Fatalf("no run %q in %+v", text, runs)
		return nil
	}

	if !find("it").Style.Italic {
		t.Error("italic flag missing")
	}
	if !find("bold").Style.Bold {
		t.Error("bold flag missing")
	}
	if !find("strike").Style.Strikethrough {
		t.Error("strikethrough flag missing")
	}
	if !find("code").Style.Code {
		t.Error("code flag missing")
	}
	if find("link").Style.Link != "https://example.com" {
		t.Error("link destination missing")
	}
}

func TestRenderBlockquote(t *testing.T) {
	t.Parallel()

	blocks := renderDefault("> quoted text\n\nplain after\n")

	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	runs := blocks[0].Text.Runs
	if !runs[0].Style.Quote {
		t.Error("quoted run missing quote flag")
	}
	last := runs[len(runs)-1]
	if last.Style.Quote {
		t.Error("text after the quote should not carry the quote flag")
	}
}

func TestRenderListFlattening(t *testing.T) {
	t.Parallel()

	blocks := renderDefault("- top\n    - nested\n- back\n")

	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	got := blocks[0].Text.PlainText()
	want := "• top\n    ◦ nested\n• back"
	if got != want {
		t.Errorf("flattened list = %q, want %q", got, want)
	}
}

func TestRenderOrderedList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "counts from one",
			source: "1. a\n2. b\n3. c\n",
			want:   "1. a\n2. b\n3. c",
		},
		{
			name:   "honors start number",
			source: "4. a\n5. b\n",
			want:   "4. a\n5. b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			blocks := renderDefault(tt.source)
			if len(blocks) != 1 {
				t.Fatalf("got %d blocks, want 1", len(blocks))
			}
			if got := blocks[0].Text.PlainText(); got != tt.want {
				t.Errorf("ordered list = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderStandaloneImagePromoted(t *testing.T) {
	t.Parallel()

	blocks := renderDefault("before\n\n![diagram](img.png \"A title\")\n\nafter\n")

	wantKinds := []render.BlockKind{render.BlockText, render.BlockImage, render.BlockText}
	if len(blocks) != len(wantKinds) {
		t.Fatalf("got %d blocks, want %d", len(blocks), len(wantKinds))
	}
	for i, k := range wantKinds {
		if blocks[i].Kind != k {
			t.Errorf("block[%d].Kind = %v, want %v", i, blocks[i].Kind, k)
		}
	}

	img := blocks[1].Image
	if img.Source != "img.png" || img.Alt != "diagram" || img.Title != "A title" {
		t.Errorf("image = %+v", img)
	}
}

func TestRenderInlineImageStaysInText(t *testing.T) {
	t.Parallel()

	blocks := renderDefault("see ![icon](i.png) here\n")

	if len(blocks) != 1 || blocks[0].Kind != render.BlockText {
		t.Fatalf("unexpected blocks: %+v", blocks)
	}
	if got := blocks[0].Text.PlainText(); got != "see icon here" {
		t.Errorf("text = %q", got)
	}
}

func TestRenderImageEmptyAltPlaceholder(t *testing.T) {
	t.Parallel()

	blocks := renderDefault("![](bare.png)\n")

	if len(blocks) != 1 || blocks[0].Kind != render.BlockImage {
		t.Fatalf("unexpected blocks: %+v", blocks)
	}
	if blocks[0].Image.Alt != "[image]" {
		t.Errorf("Alt = %q, want placeholder", blocks[0].Image.Alt)
	}
}

func TestRenderCodeBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		wantKind render.BlockKind
		wantLang string
	}{
		{
			name:     "labeled fence",
			source:   "```go\nx := 1\n```\n",
			wantKind: render.BlockCode,
			wantLang: "go",
		},
		{
			name:     "unlabeled fence inferred",
			source:   "```\npackage main\n\nfunc main() {}\n```\n",
			wantKind: render.BlockCode,
			wantLang: "go",
		},
		{
			name:     "mermaid fence becomes diagram",
			source:   "```mermaid\ngraph TD;\nA-->B;\n```\n",
			wantKind: render.BlockDiagram,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			blocks := renderDefault(tt.source)
			if len(blocks) != 1 {
				t.Fatalf("got %d blocks, want 1", len(blocks))
			}
			if blocks[0].Kind != tt.wantKind {
				t.Fatalf("Kind = %v, want %v", blocks[0].Kind, tt.wantKind)
			}
			if tt.wantKind == render.BlockCode && blocks[0].Code.Language != tt.wantLang {
				t.Errorf("Language = %q, want %q", blocks[0].Code.Language, tt.wantLang)
			}
		})
	}
}

func TestRenderTableShapeInvariant(t *testing.T) {
	t.Parallel()

	// The short row is padded to the header width.
	blocks := renderDefault("| A | B | C |\n|---|---|---|\n| 1 |\n")

	if len(blocks) != 1 || blocks[0].Kind != render.BlockTable {
		t.Fatalf("unexpected blocks: %+v", blocks)
	}
	table := blocks[0].Table
	if len(table.Headers) != 3 {
		t.Fatalf("got %d headers, want 3", len(table.Headers))
	}
	if len(table.Alignments) != 3 {
		t.Errorf("got %d alignments, want 3", len(table.Alignments))
	}
	for i, row := range table.Rows {
		if len(row) != 3 {
			t.Errorf("row[%d] has %d cells, want 3", i, len(row))
		}
	}
}

func TestRenderDisplayMath(t *testing.T) {
	t.Parallel()

	blocks := renderDefault("intro\n\n$$\n\\int_0^1 x\n$$\n\noutro\n")

	wantKinds := []render.BlockKind{render.BlockText, render.BlockMath, render.BlockText}
	if len(blocks) != len(wantKinds) {
		t.Fatalf("got %d blocks, want %d: %+v", len(blocks), len(wantKinds), blocks)
	}
	math := blocks[1].Math
	if math.Latex != "\\int_0^1 x" {
		t.Errorf("Latex = %q", math.Latex)
	}
	if !math.Display {
		t.Error("Display = false for block math")
	}
}

func TestRenderThematicBreakSeparatesOnly(t *testing.T) {
	t.Parallel()

	blocks := renderDefault("above\n\n---\n\nbelow\n")

	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if got := blocks[0].Text.PlainText(); got != "above\n\nbelow" {
		t.Errorf("text = %q, want %q", got, "above\n\nbelow")
	}
}

func TestRenderTaskListAnyCheckbox(t *testing.T) {
	t.Parallel()

	// One checkbox makes the whole list a task list; plain items come
	// along unchecked.
	blocks := renderDefault("- [x] done\n- plain sibling\n")

	if len(blocks) != 1 || blocks[0].Kind != render.BlockTaskList {
		t.Fatalf("unexpected blocks: %+v", blocks)
	}
	tasks := blocks[0].Tasks
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if !tasks[0].Checked || tasks[1].Checked {
		t.Errorf("task states = [%t, %t], want [true, false]", tasks[0].Checked, tasks[1].Checked)
	}
}

func TestRenderEmptySource(t *testing.T) {
	t.Parallel()

	if blocks := renderDefault(""); len(blocks) != 0 {
		t.Errorf("empty source produced %d blocks", len(blocks))
	}
}

func TestRenderEscapedDollarStaysLiteral(t *testing.T) {
	t.Parallel()

	blocks := renderDefault("price is \\$50 today\n")

	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	for _, run := range blocks[0].Text.Runs {
		if run.Style.Math {
			t.Errorf("escaped dollar produced a math run: %+v", run)
		}
	}
}

func TestRenderUnescapesBackslashPunctuation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"escaped dollars", "pay \\$50 and \\$60 today\n", "pay $50 and $60 today"},
		{"escaped emphasis markers", "\\*not emphasis\\*\n", "*not emphasis*"},
		{"escaped backslash", "a \\\\ b\n", "a \\ b"},
		{"backslash before letter stays", "a \\b c\n", "a \\b c"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			blocks := render.Render(testCase.source, render.DefaultStyle())
			if len(blocks) != 1 || blocks[0].Kind != render.BlockText {
				t.Fatalf("unexpected blocks: %+v", blocks)
			}
			if got := blocks[0].Text.PlainText(); got != testCase.want {
				t.Errorf("PlainText = %q, want %q", got, testCase.want)
			}
			for _, run := range blocks[0].Text.Runs {
				if run.Style.Math {
					t.Errorf("escape produced a math run: %+v", run)
				}
			}
		})
	}
}

func TestRenderEscapeSurvivesUntilMathExtraction(t *testing.T) {
	t.Parallel()

	// The first dollar is escaped, so no inline math opens; both
	// backslashes disappear from the plain text.
	blocks := renderDefault("cost \\$a\\$ only\n")

	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if got := blocks[0].Text.PlainText(); got != "cost $a$ only" {
		t.Errorf("PlainText = %q, want %q", got, "cost $a$ only")
	}
	for _, run := range blocks[0].Text.Runs {
		if run.Style.Math {
			t.Errorf("escaped delimiters produced a math run: %+v", run)
		}
	}
}

func TestRenderResolvesStyleAttributes(t *testing.T) {
	t.Parallel()

	style := render.Style{
		FontFamily:     "Inter",
		MonoFontFamily: "Jet Mono",
		HeadingScales:  [6]float64{3.0},
		AccentColor:    "#101010",
		LinkColor:      "#202020",
		CodeColor:      "#303030",
		QuoteColor:     "#404040",
	}

	blocks := render.Render("# Title\n\nbody `c` [l](https://example.com) $x$\n\n> q\n", style)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	runs := blocks[0].Text.Runs

	find := func(text string) render.StyledRun {
		for _, run := range runs {
			if run.Text == text {
				return run
			}
		}
		t.Fatalf("no run %q in %+v", text, runs)
		return render.StyledRun{}
	}

	heading := find("Title")
	if heading.Style.Color != "#101010" {
		t.Errorf("heading color = %q, want accent", heading.Style.Color)
	}
	if heading.Style.Scale != 3.0 {
		t.Errorf("heading scale = %v, want 3.0", heading.Style.Scale)
	}
	if heading.Style.Font != "Inter" {
		t.Errorf("heading font = %q", heading.Style.Font)
	}

	if got := find("c").Style; got.Color != "#303030" || got.Font != "Jet Mono" {
		t.Errorf("code run style = %+v", got)
	}
	if got := find("l").Style; got.Color != "#202020" {
		t.Errorf("link color = %q", got.Color)
	}
	if got := find("x").Style; got.Color != "#101010" || got.Font != "Jet Mono" {
		t.Errorf("math run style = %+v", got)
	}
	if got := find("q").Style; got.Color != "#404040" {
		t.Errorf("quote color = %q", got.Color)
	}
}

func TestRenderStyleFallbackColors(t *testing.T) {
	t.Parallel()

	// A zero style resolves every color through the documented
	// fallbacks; link and code inherit the accent.
	blocks := render.Render("`c` [l](https://example.com)\n", render.Style{})
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}

	for _, run := range blocks[0].Text.Runs {
		switch {
		case run.Style.Code, run.Style.Link != "":
			if run.Style.Color != render.DefaultAccentColor {
				t.Errorf("run %q color = %q, want %q", run.Text, run.Style.Color, render.DefaultAccentColor)
			}
		}
	}
}

func TestRenderThemeChangeProducesNewRuns(t *testing.T) {
	t.Parallel()

	source := "# Title\n\nsee [docs](https://example.com)\n"

	base := render.Render(source, render.DefaultStyle())

	restyled := render.DefaultStyle()
	restyled.AccentColor = "#ff0000"
	changed := render.Render(source, restyled)

	if reflect.DeepEqual(base, changed) {
		t.Error("render output did not change with the style")
	}
	if base[0].PlainText() != changed[0].PlainText() {
		t.Error("text content should not depend on the style")
	}
}

func TestRenderTableAndTaskRunsCarryColors(t *testing.T) {
	t.Parallel()

	style := render.DefaultStyle()
	style.CodeColor = "#303030"

	source := "| H |\n| - |\n| `v` |\n\n- [ ] run `cmd`\n"
	blocks := render.Render(source, style)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2: %+v", len(blocks), blocks)
	}

	cell := blocks[0].Table.Rows[0][0]
	if got := cell.Runs[0].Style; !got.Code || got.Color != "#303030" {
		t.Errorf("table cell code run = %+v", got)
	}

	var codeRun *render.StyledRun
	for i := range blocks[1].Tasks[0].Content.Runs {
		if blocks[1].Tasks[0].Content.Runs[i].Style.Code {
			codeRun = &blocks[1].Tasks[0].Content.Runs[i]
		}
	}
	if codeRun == nil || codeRun.Style.Color != "#303030" {
		t.Errorf("task code run = %+v", codeRun)
	}
}
