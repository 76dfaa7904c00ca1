package card

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arcanaland/cardsmith/internal/classify"
	"github.com/arcanaland/cardsmith/internal/design"
)

// CardBackImage is the shared back face artwork of every card.
const CardBackImage = "cardback.png"

var tokenPattern = regexp.MustCompile(`^token-(.+)$`)

// Record is an exported card or token.
type Record interface {
	RecordID() string  // key in the exported map, e.g. "12" or "t-fire"
	ImageFile() string // artwork filename, e.g. "card-12.png"
}

// Face is one printed side of a card
type Face struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Cost         int    `json:"cost"`
	Image        string `json:"image"`
	IsHorizontal bool   `json:"isHorizontal"`
}

// Faces holds the front and, for cards, the back face.
type Faces struct {
	Front Face  `json:"front"`
	Back  *Face `json:"back,omitempty"`
}

// Card represents an exported game card
type Card struct {
	ID         string   `json:"id"`
	IsToken    bool     `json:"isToken"`
	Face       Faces    `json:"face"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Types      []string `json:"types"`
	Keywords   []string `json:"keywords"`
	Cost       int      `json:"cost"`
	DMG        int      `json:"DMG"`
	Block      int      `json:"Block"` // negative values are dodge
	Text       string   `json:"Text"`
	AttackHead bool     `json:"AttackHead?"`
	AttackBody bool     `json:"AttackBody?"`
	AttackLeg  bool     `json:"AttackLeg?"`

	Filename string `json:"-"`
}

func (c Card) RecordID() string  { return c.ID }
func (c Card) ImageFile() string { return c.Filename }

// Token represents an exported token. Tokens carry no stats.
type Token struct {
	ID         string `json:"id"`
	IsToken    bool   `json:"isToken"`
	Face       Faces  `json:"face"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Cost       int    `json:"cost"`
	AttackHead bool   `json:"AttackHead?"`
	AttackBody bool   `json:"AttackBody?"`
	AttackLeg  bool   `json:"AttackLeg?"`
	Text       string `json:"Text"`
	Block      int    `json:"Block"`
	DMG        int    `json:"DMG"`

	Filename string `json:"-"`
}

func (t Token) RecordID() string  { return t.ID }
func (t Token) ImageFile() string { return t.Filename }

// Builder assembles records with image URLs under BaseURL.
type Builder struct {
	BaseURL string
}

// NewBuilder creates a builder for the given image base URL
func NewBuilder(baseURL string) *Builder {
	return &Builder{BaseURL: strings.TrimRight(baseURL, "/")}
}

func (b *Builder) imageURL(filename string) string {
	return fmt.Sprintf("%s/%s", b.BaseURL, filename)
}

// CardFilename returns the artwork filename of card number seq.
func CardFilename(seq int) string {
	return fmt.Sprintf("card-%d.png", seq)
}

// FilenameForID returns the artwork filename of an exported record id.
func FilenameForID(id string) string {
	if suffix, ok := strings.CutPrefix(id, "t-"); ok {
		return fmt.Sprintf("token-%s.png", suffix)
	}
	return fmt.Sprintf("card-%s.png", id)
}

// TokenSuffix returns the part of a token name after "token-".
func TokenSuffix(name string) string {
	if m := tokenPattern.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return "unknown"
}

// Card classifies el and builds the record for card number seq.
func (b *Builder) Card(el *design.Element, seq int) Card {
	return b.FromFields(classify.Classify(el), seq)
}

// FromFields builds the record for card number seq from extracted fields.
func (b *Builder) FromFields(f classify.Fields, seq int) Card {
	filename := CardFilename(seq)

	return Card{
		ID:      strconv.Itoa(seq),
		IsToken: false,
		Face: Faces{
			Front: Face{
				Name:  "Front",
				Type:  f.Type,
				Cost:  f.Cost,
				Image: b.imageURL(filename),
			},
			Back: &Face{
				Name:  "Back",
				Type:  "",
				Cost:  f.Cost,
				Image: b.imageURL(CardBackImage),
			},
		},
		Name:       f.Name,
		Type:       f.Type,
		Types:      f.Types,
		Keywords:   f.Keywords,
		Cost:       f.Cost,
		DMG:        f.Damage,
		Block:      f.Block,
		Text:       f.Text,
		AttackHead: f.Head,
		AttackBody: f.Body,
		AttackLeg:  f.Leg,
		Filename:   filename,
	}
}

// Token builds the record of a token element. The display name comes from
// the element name: "token-fire-ball" becomes "Token: Fire Ball".
func (b *Builder) Token(el *design.Element) Token {
	suffix := TokenSuffix(el.Name)
	displayName := classify.TitleCase(strings.ReplaceAll(suffix, "-", " "))
	filename := fmt.Sprintf("token-%s.png", suffix)

	return Token{
		ID:      "t-" + suffix,
		IsToken: true,
		Face: Faces{
			Front: Face{
				Name:  "",
				Type:  "false",
				Cost:  0,
				Image: b.imageURL(filename),
			},
		},
		Name:     "Token: " + displayName,
		Type:     "false",
		Filename: filename,
	}
}
