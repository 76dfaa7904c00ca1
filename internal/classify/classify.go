// Package classify turns the text layers of a card element into card fields.
//
// Every text layer is matched against an ordered list of rules: cost, damage,
// block/dodge, type and description, attack zones. The first rule that
// matches claims the layer. Layers no rule claims become the card name unless
// they are purely numeric, so the last such layer in the tree wins.
package classify

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/arcanaland/cardsmith/internal/design"
)

// DefaultName is the name of a card with no name layer.
const DefaultName = "Unknown"

var (
	costPattern    = regexp.MustCompile(`(?i)^(\d+)\s*ap$`)
	damagePattern  = regexp.MustCompile(`(?i)^(\d+|-)\s*dmg$`)
	guardKeyword   = regexp.MustCompile(`(?i)block|dodge`)
	dodgeKeyword   = regexp.MustCompile(`(?i)dodge`)
	guardZoneForm  = regexp.MustCompile(`(?i)(?:block|dodge)\s*(?:all|head|body|leg)?\s*(\d+)`)
	guardPctForm   = regexp.MustCompile(`(?i)(\d+)%\s*(?:block|dodge)`)
	typePattern    = regexp.MustCompile(`^\(([^)]+)\)\s*(.*)`)
	numericPattern = regexp.MustCompile(`^\d+$`)
	lineBreaks     = regexp.MustCompile(`[\r\n]+`)
)

var zones = map[string]bool{"head": true, "body": true, "leg": true}

// Fields holds everything extracted from a card's text layers.
type Fields struct {
	Name     string
	Type     string
	Types    []string
	Keywords []string
	Cost     int
	Damage   int
	// Block is negative for dodge values.
	Block int
	Text  string
	Head  bool
	Body  bool
	Leg   bool
}

// NewFields returns Fields with every default filled in.
func NewFields() Fields {
	return Fields{
		Name:     DefaultName,
		Types:    []string{},
		Keywords: []string{},
	}
}

// Classify extracts the fields of a card element. It never fails; fields with
// no matching layer keep their defaults.
func Classify(card *design.Element) Fields {
	f := NewFields()
	for _, layer := range design.TextNodes(card) {
		f.apply(layer)
	}
	return f
}

func (f *Fields) apply(layer *design.Element) {
	content := normalize(layer.Characters)
	if content == "" {
		return
	}

	if f.matchCost(content) ||
		f.matchDamage(content) ||
		f.matchGuard(content) ||
		f.matchTypeLine(content, layer) ||
		f.matchZones(content) {
		return
	}

	if !numericPattern.MatchString(content) {
		f.Name = TitleCase(content)
	}
}

// normalize flattens the line breaks of a text layer and trims it, giving
// the fragment every rule matches against.
func normalize(chars string) string {
	return strings.TrimSpace(lineBreaks.ReplaceAllString(chars, " "))
}

// IsCost reports whether a text layer holds an AP cost such as "2 ap".
func IsCost(chars string) bool {
	return costPattern.MatchString(normalize(chars))
}

func (f *Fields) matchCost(content string) bool {
	m := costPattern.FindStringSubmatch(content)
	if m == nil {
		return false
	}
	f.Cost = atoi(m[1])
	return true
}

func (f *Fields) matchDamage(content string) bool {
	m := damagePattern.FindStringSubmatch(content)
	if m == nil {
		return false
	}
	if m[1] == "-" {
		f.Damage = 0
		return true
	}
	f.Damage = atoi(m[1])
	return true
}

// matchGuard reads block and dodge values. The zone form ("block head 3")
// is tried before the percentage form ("40% dodge"). A layer mentioning
// block or dodge without a number is left for later rules.
func (f *Fields) matchGuard(content string) bool {
	if !guardKeyword.MatchString(content) {
		return false
	}

	m := guardZoneForm.FindStringSubmatch(content)
	if m == nil {
		m = guardPctForm.FindStringSubmatch(content)
	}
	if m == nil {
		return false
	}
	n := atoi(m[1])
	if dodgeKeyword.MatchString(content) {
		n = -n
	}
	f.Block = n
	return true
}

// matchTypeLine reads "(Type, Type) description" layers. The description is
// taken from the raw characters so it keeps its line breaks.
func (f *Fields) matchTypeLine(content string, layer *design.Element) bool {
	m := typePattern.FindStringSubmatch(content)
	if m == nil {
		return false
	}

	types := []string{}
	for _, t := range strings.Split(m[1], ",") {
		types = append(types, TitleCase(strings.TrimSpace(t)))
	}
	f.Types = types
	f.Type = ""
	if len(types) > 0 {
		f.Type = types[0]
	}

	if i := strings.Index(layer.Characters, ")"); i >= 0 {
		f.Text = strings.TrimSpace(layer.Characters[i+1:])
	} else {
		f.Text = m[2]
	}

	f.Keywords = withoutLabels(Emphasized(layer.StyledRuns()), types)
	return true
}

func (f *Fields) matchZones(content string) bool {
	words := strings.Fields(content)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !zones[strings.ToLower(w)] {
			return false
		}
	}

	for _, w := range words {
		switch strings.ToLower(w) {
		case "head":
			f.Head = true
		case "body":
			f.Body = true
		case "leg":
			f.Leg = true
		}
	}
	return true
}

// atoi parses a run of digits. Values too large for an int are clamped.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return math.MaxInt
	}
	return n
}
