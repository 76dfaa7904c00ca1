package deck

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/arcanaland/cardsmith/internal/classify"
	"github.com/arcanaland/cardsmith/internal/design"
	"github.com/arcanaland/cardsmith/internal/palette"
)

// DefaultDescription is used for pools when no description is configured.
const DefaultDescription = "Generated from design"

// GeneratedGrouping names rarity groupings that are skipped.
const GeneratedGrouping = "generated"

var poolCardPattern = regexp.MustCompile(`^(cards?)-`)

// Element types accepted as deck and rarity groupings. Components and
// instances are card templates, not groupings.
var (
	deckTypes   = map[string]bool{"FRAME": true, "GROUP": true, "SECTION": true}
	rarityTypes = map[string]bool{"FRAME": true, "GROUP": true}
)

func isGrouping(el *design.Element, types map[string]bool) bool {
	return types[strings.ToUpper(el.Type)]
}

// Pool represents a deck pool derived from a grouping on a page
type Pool struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Color       string     `json:"color"`
	CardPool    []PoolCard `json:"cardPool"`
}

// PoolCard is a card entry of a pool
type PoolCard struct {
	Name      string   `json:"name"`
	Rarity    string   `json:"rarity"`
	Synergies []string `json:"synergies"`
}

// Options configures pool derivation
type Options struct {
	Description string
	Rand        palette.Rand
}

// DerivePools builds one pool per grouping on the page. Each grouping is a
// frame, group or section whose frame or group children are rarity groupings holding card elements:
//
//	page
//	└── Fire Deck          -> pool
//	    ├── Common         -> rarity "common"
//	    │   ├── card-1
//	    │   └── card-?
//	    └── generated      -> skipped
//
// Groupings named card-* are cards lying on the page and are skipped.
func DerivePools(page *design.Element, opts Options) []Pool {
	if opts.Description == "" {
		opts.Description = DefaultDescription
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	pools := []Pool{}
	var hues []int

	for _, grouping := range page.Children {
		if !isGrouping(grouping, deckTypes) {
			continue
		}
		if strings.HasPrefix(strings.ToLower(grouping.Name), "card-") {
			continue
		}

		var color string
		color, hues, _ = palette.Next(opts.Rand, hues)

		pool := Pool{
			Name:        grouping.Name,
			Description: opts.Description,
			Color:       color,
			CardPool:    []PoolCard{},
		}

		for _, rarityGroup := range grouping.Children {
			if !isGrouping(rarityGroup, rarityTypes) {
				continue
			}
			rarity := strings.ToLower(rarityGroup.Name)
			if rarity == GeneratedGrouping {
				continue
			}

			for _, el := range rarityGroup.Children {
				if !poolCardPattern.MatchString(el.Name) {
					continue
				}
				pool.CardPool = append(pool.CardPool, poolCard(classify.Classify(el), rarity))
			}
		}

		pools = append(pools, pool)
	}

	return pools
}

// poolCard derives the synergies of a card: its cost, then its types.
func poolCard(f classify.Fields, rarity string) PoolCard {
	synergies := []string{fmt.Sprintf("%d AP", f.Cost)}
	synergies = append(synergies, f.Types...)

	return PoolCard{
		Name:      f.Name,
		Rarity:    rarity,
		Synergies: synergies,
	}
}
