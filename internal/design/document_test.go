package design

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "id": "0:0",
  "name": "Document",
  "type": "DOCUMENT",
  "children": [
    {
      "id": "1:1",
      "name": "Cards",
      "type": "PAGE",
      "children": [
        {
          "name": "card-?",
          "type": "FRAME",
          "children": [
            {"name": "cost", "type": "TEXT", "characters": "2 ap"},
            {"name": "art", "type": "RECTANGLE"},
            {"name": "empty", "type": "FRAME", "children": []}
          ]
        }
      ]
    },
    {"id": "1:2", "name": "Decks", "type": "PAGE", "children": []}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadJSON(t *testing.T) {
	doc, err := Load(writeFile(t, "doc.json", sampleJSON))
	require.NoError(t, err)

	assert.Equal(t, KindContainer, doc.Root.Kind)
	require.Len(t, doc.Pages(), 2)

	frame := doc.Pages()[0].Children[0]
	assert.Equal(t, "card-?", frame.Name)
	require.Len(t, frame.Children, 3)
	assert.Equal(t, KindText, frame.Children[0].Kind)
	assert.Equal(t, KindOther, frame.Children[1].Kind)
	assert.False(t, frame.Children[1].HasChildren())
	assert.True(t, frame.Children[2].HasChildren())
	assert.Empty(t, frame.Children[2].Children)
}

func TestLoadYAML(t *testing.T) {
	src := `
name: Page
type: PAGE
children:
  - name: token-fire
    type: FRAME
    children:
      - name: label
        type: TEXT
        characters: Fire
        fontStyle: Bold
`
	doc, err := Load(writeFile(t, "doc.yaml", src))
	require.NoError(t, err)

	page, err := doc.Page("")
	require.NoError(t, err)
	assert.Same(t, doc.Root, page)

	label := page.Children[0].Children[0]
	assert.Equal(t, []StyledRun{{Characters: "Fire", FontStyle: "Bold"}}, label.StyledRuns())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Load(writeFile(t, "doc.txt", "{}"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "doc.json", "{"))
	assert.Error(t, err)
}

func TestPage(t *testing.T) {
	doc, err := Load(writeFile(t, "doc.json", sampleJSON))
	require.NoError(t, err)

	byID, err := doc.Page("1:2")
	require.NoError(t, err)
	assert.Equal(t, "Decks", byID.Name)

	byName, err := doc.Page("Cards")
	require.NoError(t, err)
	assert.Equal(t, "1:1", byName.ID)

	_, err = doc.Page("Nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRenameAndSave(t *testing.T) {
	path := writeFile(t, "doc.json", sampleJSON)
	doc, err := Load(path)
	require.NoError(t, err)
	assert.False(t, doc.Modified())

	frame := doc.Pages()[0].Children[0]
	require.NoError(t, doc.Rename(frame, "card-1"))
	assert.True(t, doc.Modified())
	require.NoError(t, doc.Save())
	assert.False(t, doc.Modified())

	reloaded, err := Load(path)
	require.NoError(t, err)
	again := reloaded.Pages()[0].Children[0]
	assert.Equal(t, "card-1", again.Name)
	assert.True(t, again.Children[2].HasChildren(), "empty children list survives a round trip")
	assert.False(t, again.Children[0].HasChildren())
}

func TestRenameLocked(t *testing.T) {
	el := &Element{Name: "card-?", Locked: true}
	doc := NewDocument(&Element{Name: "root", Children: []*Element{el}})

	err := doc.Rename(el, "card-1")
	assert.ErrorIs(t, err, ErrLocked)
	assert.Equal(t, "card-?", el.Name)
	assert.False(t, doc.Modified())
}

func TestTextNodes(t *testing.T) {
	a := &Element{Name: "a", Kind: KindText}
	b := &Element{Name: "b", Kind: KindText}
	c := &Element{Name: "c", Kind: KindText}
	root := &Element{Kind: KindContainer, Children: []*Element{
		a,
		{Kind: KindContainer, Children: []*Element{b, {Kind: KindOther}}},
		c,
	}}

	assert.Equal(t, []*Element{a, b, c}, TextNodes(root))
	assert.Equal(t, []*Element{a}, TextNodes(a))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindText, KindOf("TEXT", false))
	assert.Equal(t, KindText, KindOf("text", false))
	assert.Equal(t, KindContainer, KindOf("FRAME", false))
	assert.Equal(t, KindContainer, KindOf("BOOLEAN_OPERATION", true))
	assert.Equal(t, KindOther, KindOf("VECTOR", false))
	assert.Equal(t, "container", KindContainer.String())
}

func TestSaveKeepsUnmodelledAttributes(t *testing.T) {
	src := `{
  "name": "Cards",
  "type": "PAGE",
  "children": [
    {
      "name": "card-?",
      "type": "FRAME",
      "absoluteBoundingBox": {"x": 10.5, "y": -4, "width": 250, "height": 350},
      "fills": [{"type": "SOLID", "color": {"r": 1, "g": 0.25, "b": 0}}],
      "pluginData": {"owner": "<team>"},
      "children": []
    }
  ]
}`
	path := writeFile(t, "doc.json", src)
	doc, err := Load(path)
	require.NoError(t, err)

	frame := doc.Root.Children[0]
	require.NoError(t, doc.Rename(frame, "card-1"))
	require.NoError(t, doc.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var saved map[string]any
	require.NoError(t, json.Unmarshal(data, &saved))

	card := saved["children"].([]any)[0].(map[string]any)
	assert.Equal(t, "card-1", card["name"])
	assert.Equal(t, map[string]any{"x": 10.5, "y": -4.0, "width": 250.0, "height": 350.0}, card["absoluteBoundingBox"])
	assert.Equal(t, []any{map[string]any{"type": "SOLID", "color": map[string]any{"r": 1.0, "g": 0.25, "b": 0.0}}}, card["fills"])
	assert.Equal(t, map[string]any{"owner": "<team>"}, card["pluginData"])
	assert.Contains(t, string(data), `"x": 10.5`)
}

func TestSaveYAMLOnlyChangesNames(t *testing.T) {
	src := `# card sheet
name: Cards
type: PAGE
children:
  - name: card-?
    type: FRAME
    constraints:
      horizontal: LEFT
      vertical: TOP
    opacity: 0.8
    children: []
`
	path := writeFile(t, "doc.yaml", src)
	doc, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, doc.Rename(doc.Root.Children[0], "card-7"))
	require.NoError(t, doc.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "# card sheet")
	assert.Contains(t, out, "name: card-7")
	assert.Contains(t, out, "horizontal: LEFT")
	assert.Contains(t, out, "opacity: 0.8")
	assert.NotContains(t, out, "card-?")

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "card-7", reloaded.Root.Children[0].Name)
	assert.True(t, reloaded.Root.Children[0].HasChildren())
}
