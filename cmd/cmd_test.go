package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `{
  "name": "Document",
  "type": "DOCUMENT",
  "children": [
    {
      "id": "1:1",
      "name": "Cards",
      "type": "PAGE",
      "children": [
        {"name": "card-1", "type": "FRAME", "children": [
          {"name": "title", "type": "TEXT", "characters": "Jab"},
          {"name": "cost", "type": "TEXT", "characters": "1 ap"}
        ]},
        {"name": "card-?", "type": "FRAME", "children": [
          {"name": "title", "type": "TEXT", "characters": "Hook"},
          {"name": "cost", "type": "TEXT", "characters": "2 ap"},
          {"name": "rules", "type": "TEXT", "characters": "(Melee) Swing.\nOn Hit: Stun",
           "styledRuns": [
             {"characters": "(Melee) Swing.\n", "fontStyle": "Regular"},
             {"characters": "On Hit: Stun", "fontStyle": "Bold"}
           ]}
        ]},
        {"name": "token-fire", "type": "FRAME", "children": []}
      ]
    },
    {
      "id": "1:2",
      "name": "Decks",
      "type": "PAGE",
      "children": [
        {"name": "Brawler", "type": "FRAME", "children": [
          {"name": "Common", "type": "FRAME", "children": [
            {"name": "card-1", "type": "FRAME", "children": [
              {"name": "title", "type": "TEXT", "characters": "Jab"},
              {"name": "cost", "type": "TEXT", "characters": "1 ap"}
            ]}
          ]}
        ]}
      ]
    }
  ]
}`

func setupWorkspace(t *testing.T) (docPath, outDir string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir := t.TempDir()
	docPath = filepath.Join(dir, "deck.json")
	require.NoError(t, os.WriteFile(docPath, []byte(testDocument), 0644))
	return docPath, filepath.Join(dir, "out")
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	RootCmd.SetArgs(append([]string{"--no-color", "--log-level", "error"}, args...))
	return RootCmd.Execute()
}

func TestExportCommand(t *testing.T) {
	docPath, outDir := setupWorkspace(t)

	require.NoError(t, run(t, "export", "--out", outDir, "--base-url", "https://img.test", docPath))

	data, err := os.ReadFile(filepath.Join(outDir, "cards.json"))
	require.NoError(t, err)
	var records map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &records))

	require.Contains(t, records, "1")
	require.Contains(t, records, "2")
	require.Contains(t, records, "t-fire")
	assert.Equal(t, "Hook", records["2"]["name"])
	assert.Equal(t, []any{"On Hit Stun"}, records["2"]["keywords"])
	assert.Equal(t, "Swing.\nOn Hit: Stun", records["2"]["Text"])
	assert.Equal(t, "Token: Fire", records["t-fire"]["name"])

	saved, err := os.ReadFile(docPath)
	require.NoError(t, err)
	assert.Contains(t, string(saved), `"card-2"`)
	assert.NotContains(t, string(saved), `"card-?"`)
}

func TestExportCommandDryRun(t *testing.T) {
	docPath, outDir := setupWorkspace(t)

	require.NoError(t, run(t, "export", "--dry-run", "--out", outDir, docPath))

	saved, err := os.ReadFile(docPath)
	require.NoError(t, err)
	assert.Contains(t, string(saved), `"card-?"`)
	assert.FileExists(t, filepath.Join(outDir, "cards.json"))
}

func TestExportCommandMissingPage(t *testing.T) {
	docPath, outDir := setupWorkspace(t)
	err := run(t, "export", "--page", "Nope", "--out", outDir, docPath)
	assert.ErrorContains(t, err, "not found")
}

func TestPoolsCommand(t *testing.T) {
	docPath, outDir := setupWorkspace(t)

	require.NoError(t, run(t, "pools", "--page", "Decks", "--seed", "3", "--out", outDir, docPath))

	data, err := os.ReadFile(filepath.Join(outDir, "pools.json"))
	require.NoError(t, err)
	var pools []map[string]any
	require.NoError(t, json.Unmarshal(data, &pools))
	require.Len(t, pools, 1)
	assert.Equal(t, "Brawler", pools[0]["name"])
	assert.Regexp(t, `^#[0-9A-F]{6}$`, pools[0]["color"])
	assert.Len(t, pools[0]["cardPool"], 1)
}

func TestValidateCommand(t *testing.T) {
	docPath, _ := setupWorkspace(t)
	assert.NoError(t, run(t, "validate", "--page", "Cards", docPath))
}

func TestRecordID(t *testing.T) {
	assert.Equal(t, "12", recordID("card-12"))
	assert.Equal(t, "12", recordID("12"))
	assert.Equal(t, "t-fire", recordID("token-fire"))
	assert.Equal(t, "t-fire", recordID("t-fire"))
	assert.Equal(t, "card-x", recordID("card-x"))
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four five six\nOn Hit: Stun", 10)
	assert.Equal(t, []string{"one two", "three four", "five six", "On Hit:", "Stun"}, got)
}

func TestGuardLine(t *testing.T) {
	name, amount := guardLine(-40)
	assert.Equal(t, "Dodge:", name)
	assert.Equal(t, "40", amount)

	name, amount = guardLine(5)
	assert.Equal(t, "Block:", name)
	assert.Equal(t, "5", amount)
}

func TestStripAnsi(t *testing.T) {
	assert.Equal(t, "▀x", stripAnsi("\x1b[38;2;1;2;3m\x1b[48;2;4;5;6m▀\x1b[0mx"))
}
