package validator

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/arcanaland/cardsmith/internal/classify"
	"github.com/arcanaland/cardsmith/internal/design"
	"github.com/arcanaland/cardsmith/internal/scanner"
)

var (
	numberedPattern = regexp.MustCompile(`^card-(\d+)$`)
	pendingPattern  = regexp.MustCompile(`^cards?-[?x]+$`)
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	Page    *design.Element
	Depth   int
	Results ValidationResults
}

func NewValidator(page *design.Element, depth int) *Validator {
	if depth <= 0 {
		depth = scanner.DefaultDepth
	}
	return &Validator{
		Page:    page,
		Depth:   depth,
		Results: ValidationResults{},
	}
}

// Validate checks the page for problems an export pass would hit or hide.
// It never modifies the document.
func (v *Validator) Validate() (ValidationResults, error) {
	if v.Page == nil {
		return v.Results, fmt.Errorf("no page to validate")
	}

	candidates := scanner.Scan(v.Page, v.Depth)
	if len(candidates) == 0 {
		v.warn("no cards or tokens found within depth %d", v.Depth)
		return v.Results, nil
	}

	v.validateNames(candidates)
	v.validateNumbers(candidates)
	v.validateTokens(candidates)
	v.validateContent(candidates)

	return v.Results, nil
}

func (v *Validator) warn(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

func (v *Validator) fail(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

// validateNames reports candidates that the export pass would drop and
// placeholders it would rename
func (v *Validator) validateNames(candidates []*design.Element) {
	for _, el := range candidates {
		name := el.Name
		switch {
		case strings.HasPrefix(name, "token-"), numberedPattern.MatchString(name):
		case pendingPattern.MatchString(name):
			if el.Locked {
				v.warn("placeholder %s is locked and cannot be renamed", name)
			} else {
				v.warn("placeholder %s will be numbered on export", name)
			}
		default:
			v.warn("%s looks like a card but will be skipped (expected card-<number>, card-? or token-<name>)", name)
		}
	}
}

// validateNumbers checks that no two cards share a number
func (v *Validator) validateNumbers(candidates []*design.Element) {
	seen := map[int]int{}
	for _, el := range candidates {
		m := numberedPattern.FindStringSubmatch(el.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			v.fail("card number out of range: %s", el.Name)
			continue
		}
		seen[n]++
	}

	var dupes []int
	for n, count := range seen {
		if count > 1 {
			dupes = append(dupes, n)
		}
	}
	sort.Ints(dupes)
	for _, n := range dupes {
		v.fail("card-%d is used by %d elements", n, seen[n])
	}
}

// validateTokens checks that no two tokens share a name
func (v *Validator) validateTokens(candidates []*design.Element) {
	seen := map[string]int{}
	var order []string
	for _, el := range candidates {
		if !strings.HasPrefix(el.Name, "token-") {
			continue
		}
		if seen[el.Name] == 0 {
			order = append(order, el.Name)
		}
		seen[el.Name]++
	}
	for _, name := range order {
		if seen[name] > 1 {
			v.fail("%s is used by %d elements", name, seen[name])
		}
	}
}

// validateContent checks the text layers of each card
func (v *Validator) validateContent(candidates []*design.Element) {
	for _, el := range candidates {
		if !numberedPattern.MatchString(el.Name) && !pendingPattern.MatchString(el.Name) {
			continue
		}

		texts := design.TextNodes(el)
		if len(texts) == 0 {
			v.warn("%s has no text layers", el.Name)
			continue
		}

		if classify.Classify(el).Name == classify.DefaultName {
			v.warn("%s has no name layer", el.Name)
		}

		hasCost := false
		for _, t := range texts {
			if classify.IsCost(t.Characters) {
				hasCost = true
				break
			}
		}
		if !hasCost {
			v.warn("%s has no cost layer (e.g. \"2 ap\")", el.Name)
		}
	}
}
