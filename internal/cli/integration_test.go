package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdview/internal/cli"
)

const sampleDocument = `# Getting Started

Install the tool and enjoy.

## Tasks

- [ ] write docs
- [x] ship it
`

func writeMarkdown(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	info := cli.BuildInfo{Version: "test", Commit: "test", Date: "test"}
	cmd := cli.NewRootCommand(info)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestIntegration_Outline(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, sampleDocument)

	output, err := runCommand(t, "outline", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "getting-started-0 Getting Started", lines[0])
	assert.Equal(t, "  tasks-0 Tasks", lines[1])
}

func TestIntegration_Search(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, sampleDocument)

	output, err := runCommand(t, "search", path, "INSTALL")
	require.NoError(t, err)

	// Matching is case-insensitive by default; the hit is on line 3.
	assert.True(t, strings.HasPrefix(output, "3:"), "output %q should report line 3", output)
	assert.Contains(t, output, "Install")
}

func TestIntegration_SearchCaseSensitive(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, sampleDocument)

	output, err := runCommand(t, "search", path, "INSTALL", "--case-sensitive")
	require.NoError(t, err)
	assert.Empty(t, output, "case-sensitive search for INSTALL should find nothing")
}

func TestIntegration_SearchRegex(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, sampleDocument)

	output, err := runCommand(t, "search", path, `sh\w+ it`, "--regex")
	require.NoError(t, err)
	assert.Contains(t, output, "ship it")
}

func TestIntegration_RenderJSON(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, sampleDocument)

	output, err := runCommand(t, "render", path, "--format", "json")
	require.NoError(t, err)

	var dumps []struct {
		Kind  string `json:"kind"`
		ID    string `json:"id"`
		Text  string `json:"text"`
		Tasks []bool `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &dumps))
	require.Len(t, dumps, 2)

	// Headings and paragraphs merge into one flowing text block; the
	// task list stands alone.
	assert.Equal(t, "text", dumps[0].Kind)
	assert.Contains(t, dumps[0].Text, "Getting Started")
	assert.Equal(t, "tasklist", dumps[1].Kind)
	assert.Equal(t, []bool{false, true}, dumps[1].Tasks)
	assert.NotEmpty(t, dumps[0].ID)
}

func TestIntegration_RenderUnknownFormat(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, sampleDocument)

	_, err := runCommand(t, "render", path, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestIntegration_RenderMissingFile(t *testing.T) {
	t.Parallel()

	_, err := runCommand(t, "render", filepath.Join(t.TempDir(), "absent.md"))
	require.Error(t, err)
}

func TestIntegration_Highlight(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, "# Title\n")

	output, err := runCommand(t, "highlight", path)
	require.NoError(t, err)
	assert.Contains(t, output, "heading")
}

func TestIntegration_TogglePrintsUpdatedSource(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, sampleDocument)

	output, err := runCommand(t, "toggle", path, "0")
	require.NoError(t, err)

	assert.Contains(t, output, "- [x] write docs")
	assert.Contains(t, output, "- [x] ship it")

	// Without --write the file itself is untouched.
	onDisk, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, sampleDocument, string(onDisk))
}

func TestIntegration_ToggleWrite(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, sampleDocument)

	_, err := runCommand(t, "toggle", path, "1", "--state", "unchecked", "--write")
	require.NoError(t, err)

	onDisk, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Contains(t, string(onDisk), "- [ ] ship it")
	assert.NotContains(t, string(onDisk), "- [x]")
}

func TestIntegration_ToggleBadState(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, sampleDocument)

	_, err := runCommand(t, "toggle", path, "0", "--state", "maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown state")
}

func TestIntegration_ToggleBadIndex(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, sampleDocument)

	_, err := runCommand(t, "toggle", path, "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid task index")
}
