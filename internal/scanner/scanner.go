package scanner

import (
	"regexp"

	"github.com/arcanaland/cardsmith/internal/design"
)

// DefaultDepth is how deep below a page cards are usually nested.
const DefaultDepth = 3

var candidatePattern = regexp.MustCompile(`(?i)^(cards?|token)-(.+)$`)

// IsCandidate reports whether name looks like a card or token element.
func IsCandidate(name string) bool {
	return candidatePattern.MatchString(name)
}

// Scan walks the tree depth-first from root and returns every element whose
// name matches the card or token pattern, in pre-order. The root sits at
// depth 0 and children are only visited while depth < maxDepth.
func Scan(root *design.Element, maxDepth int) []*design.Element {
	return scan(root, 0, maxDepth, nil)
}

func scan(el *design.Element, depth, maxDepth int, results []*design.Element) []*design.Element {
	if el.Name != "" && IsCandidate(el.Name) {
		results = append(results, el)
	}
	if depth < maxDepth {
		for _, child := range el.Children {
			results = scan(child, depth+1, maxDepth, results)
		}
	}
	return results
}
