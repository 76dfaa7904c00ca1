package classify

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/arcanaland/cardsmith/internal/design"
)

var (
	emphasisPattern = regexp.MustCompile(`(?i)bold|heavy|black`)
	lineBreak       = regexp.MustCompile(`\r\n|\r|\n`)
	wordPattern     = regexp.MustCompile(`\S+`)

	keywordStripper = strings.NewReplacer("-", "", ".", "", ":", "", "→", "")
)

// IsEmphasized reports whether a font style renders as bold.
func IsEmphasized(fontStyle string) bool {
	return emphasisPattern.MatchString(fontStyle)
}

// Emphasized returns the bold phrases of a text layer's styled runs. Each
// line of a bold run is a separate phrase. Phrases keep run order and are
// not deduplicated.
func Emphasized(runs []design.StyledRun) []string {
	keywords := []string{}
	for _, run := range runs {
		if !IsEmphasized(run.FontStyle) {
			continue
		}
		for _, piece := range lineBreak.Split(run.Characters, -1) {
			cleaned := strings.TrimSpace(keywordStripper.Replace(piece))
			if len([]rune(cleaned)) > 1 || hasAlnum(cleaned) {
				keywords = append(keywords, TitleCase(cleaned))
			}
		}
	}
	return keywords
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// TitleCase upper-cases the first letter or digit of every
// whitespace-delimited word and lower-cases the rest of it. Leading
// punctuation such as "(" or a quote is kept as is.
func TitleCase(s string) string {
	return wordPattern.ReplaceAllStringFunc(s, func(word string) string {
		runes := []rune(strings.ToLower(word))
		for i, r := range runes {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				runes[i] = unicode.ToUpper(r)
				break
			}
		}
		return string(runes)
	})
}

// normalizeLabel drops punctuation and symbols and lower-cases s, for
// comparing keywords against type labels.
func normalizeLabel(s string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, s)
	return strings.ToLower(strings.TrimSpace(stripped))
}

func withoutLabels(keywords, labels []string) []string {
	excluded := make(map[string]bool, len(labels))
	for _, l := range labels {
		excluded[normalizeLabel(l)] = true
	}

	kept := []string{}
	for _, k := range keywords {
		if !excluded[normalizeLabel(k)] {
			kept = append(kept, k)
		}
	}
	return kept
}
