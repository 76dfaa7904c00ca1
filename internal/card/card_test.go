package card

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/cardsmith/internal/design"
)

const base = "https://example.test/img"

func textLayer(chars string) *design.Element {
	return &design.Element{Type: "TEXT", Kind: design.KindText, Characters: chars}
}

func TestBuildCard(t *testing.T) {
	el := &design.Element{Name: "card-4", Kind: design.KindContainer, Children: []*design.Element{
		textLayer("Slash"),
		textLayer("1 ap"),
		textLayer("3 dmg"),
		textLayer("40% dodge"),
		textLayer("(Melee) Cut."),
		textLayer("Head Leg"),
	}}

	got := NewBuilder(base+"/").Card(el, 4)

	want := Card{
		ID:      "4",
		IsToken: false,
		Face: Faces{
			Front: Face{Name: "Front", Type: "Melee", Cost: 1, Image: base + "/card-4.png"},
			Back:  &Face{Name: "Back", Type: "", Cost: 1, Image: base + "/cardback.png"},
		},
		Name:       "Slash",
		Type:       "Melee",
		Types:      []string{"Melee"},
		Keywords:   []string{},
		Cost:       1,
		DMG:        3,
		Block:      -40,
		Text:       "Cut.",
		AttackHead: true,
		AttackLeg:  true,
		Filename:   "card-4.png",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Card() mismatch (-want +got):\n%s", diff)
	}

	var r Record = got
	assert.Equal(t, "4", r.RecordID())
	assert.Equal(t, "card-4.png", r.ImageFile())
}

func TestCardJSONShape(t *testing.T) {
	c := NewBuilder(base).Card(&design.Element{Name: "card-1", Kind: design.KindContainer}, 1)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))

	for _, key := range []string{"id", "isToken", "face", "name", "type", "types", "keywords",
		"cost", "DMG", "Block", "Text", "AttackHead?", "AttackBody?", "AttackLeg?"} {
		assert.Contains(t, m, key)
	}
	assert.NotContains(t, m, "Filename")
	assert.Equal(t, "Unknown", m["name"])
	assert.Equal(t, []any{}, m["types"])

	face := m["face"].(map[string]any)
	assert.Contains(t, face, "back")
	front := face["front"].(map[string]any)
	assert.Equal(t, false, front["isHorizontal"])
}

func TestBuildToken(t *testing.T) {
	tok := NewBuilder(base).Token(&design.Element{Name: "token-fire"})

	want := Token{
		ID:      "t-fire",
		IsToken: true,
		Face: Faces{
			Front: Face{Name: "", Type: "false", Image: base + "/token-fire.png"},
		},
		Name:     "Token: Fire",
		Type:     "false",
		Filename: "token-fire.png",
	}
	if diff := cmp.Diff(want, tok); diff != "" {
		t.Errorf("Token() mismatch (-want +got):\n%s", diff)
	}

	data, err := json.Marshal(tok)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.NotContains(t, m["face"], "back")
	assert.NotContains(t, m, "types")
	assert.Equal(t, float64(0), m["DMG"])
}

func TestTokenNames(t *testing.T) {
	b := NewBuilder(base)
	assert.Equal(t, "Token: Fire Ball", b.Token(&design.Element{Name: "token-fire-ball"}).Name)
	assert.Equal(t, "t-ICE", b.Token(&design.Element{Name: "token-ICE"}).ID)
	assert.Equal(t, "Token: Ice", b.Token(&design.Element{Name: "token-ICE"}).Name)
	assert.Equal(t, "t-unknown", b.Token(&design.Element{Name: "Token-x"}).ID)
}

func TestCardFilename(t *testing.T) {
	assert.Equal(t, "card-12.png", CardFilename(12))
	assert.Equal(t, "fire", TokenSuffix("token-fire"))
	assert.Equal(t, "card-3.png", FilenameForID("3"))
	assert.Equal(t, "token-fire.png", FilenameForID("t-fire"))
}
