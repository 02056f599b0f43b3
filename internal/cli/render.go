package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdview/internal/logging"
	"github.com/yaklabco/mdview/internal/ui/pretty"
	"github.com/yaklabco/mdview/pkg/pipeline"
	"github.com/yaklabco/mdview/pkg/render"
)

func newRenderCommand(color *string) *cobra.Command {
	var format string
	var stylePath string

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a Markdown file into its content block sequence",
		Long: `Render runs the full pipeline over a Markdown file and prints the
resulting block sequence: a styled terminal preview by default, or a
structured dump with --format json|yaml.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			style, err := loadStyle(stylePath)
			if err != nil {
				return err
			}

			doc := pipeline.Build(string(source), style)
			logging.Default().Debug("rendered document",
				logging.FieldPath, args[0],
				logging.FieldBlocks, len(doc.Blocks),
			)

			switch format {
			case "json":
				return dumpJSON(cmd, doc.Blocks)
			case "yaml":
				return dumpYAML(cmd, doc.Blocks)
			case "pretty":
				return dumpPretty(cmd, doc.Blocks, *color)
			default:
				return fmt.Errorf("%w: unknown format %q (want pretty, json, or yaml)", ErrUsage, format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "pretty", "output format: pretty, json, yaml")
	cmd.Flags().StringVar(&stylePath, "style", "", "path to a YAML style file")

	return cmd
}

func loadStyle(path string) (render.Style, error) {
	if path == "" {
		return render.DefaultStyle(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return render.Style{}, fmt.Errorf("open style %s: %w", path, err)
	}
	defer f.Close()

	style, err := render.LoadStyle(f)
	if err != nil {
		return render.Style{}, fmt.Errorf("load style %s: %w", path, err)
	}
	return style, nil
}

// blockDump is the stable serialized form of a block for json/yaml output.
type blockDump struct {
	Kind     string `json:"kind" yaml:"kind"`
	ID       string `json:"id" yaml:"id"`
	Text     string `json:"text,omitempty" yaml:"text,omitempty"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Source   string `json:"source,omitempty" yaml:"source,omitempty"`
	Columns  int    `json:"columns,omitempty" yaml:"columns,omitempty"`
	Rows     int    `json:"rows,omitempty" yaml:"rows,omitempty"`
	Tasks    []bool `json:"tasks,omitempty" yaml:"tasks,omitempty"`
	Display  bool   `json:"display,omitempty" yaml:"display,omitempty"`
}

func dumpBlocks(blocks []render.Block) []blockDump {
	dumps := make([]blockDump, len(blocks))
	for i, b := range blocks {
		d := blockDump{
			Kind: blockKindName(b.Kind),
			ID:   b.ID(),
			Text: b.PlainText(),
		}

		switch b.Kind {
		case render.BlockCode:
			if b.Code != nil {
				d.Language = b.Code.Language
			}
		case render.BlockTable:
			if b.Table != nil {
				d.Columns = len(b.Table.Headers)
				d.Rows = len(b.Table.Rows)
			}
		case render.BlockImage:
			if b.Image != nil {
				d.Source = b.Image.Source
			}
		case render.BlockTaskList:
			for _, task := range b.Tasks {
				d.Tasks = append(d.Tasks, task.Checked)
			}
		case render.BlockMath:
			if b.Math != nil {
				d.Display = b.Math.Display
			}
		}

		dumps[i] = d
	}
	return dumps
}

func blockKindName(kind render.BlockKind) string {
	switch kind {
	case render.BlockText:
		return "text"
	case render.BlockTable:
		return "table"
	case render.BlockTaskList:
		return "tasklist"
	case render.BlockCode:
		return "code"
	case render.BlockImage:
		return "image"
	case render.BlockDiagram:
		return "diagram"
	case render.BlockMath:
		return "math"
	default:
		return "unknown"
	}
}

func dumpJSON(cmd *cobra.Command, blocks []render.Block) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(dumpBlocks(blocks)); err != nil {
		return fmt.Errorf("encode blocks: %w", err)
	}
	return nil
}

func dumpYAML(cmd *cobra.Command, blocks []render.Block) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	defer enc.Close()
	if err := enc.Encode(dumpBlocks(blocks)); err != nil {
		return fmt.Errorf("encode blocks: %w", err)
	}
	return nil
}

func dumpPretty(cmd *cobra.Command, blocks []render.Block, colorMode string) error {
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

	width := 80
	if f, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	renderer := pretty.NewBlockRenderer(styles, width)
	fmt.Fprint(out, renderer.Render(blocks))
	return nil
}
