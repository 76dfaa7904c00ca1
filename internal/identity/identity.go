// Package identity assigns sequence numbers to card elements and persists
// them on placeholder cards by renaming.
package identity

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/arcanaland/cardsmith/internal/design"
	"github.com/arcanaland/cardsmith/internal/scanner"
)

var (
	numberedPattern = regexp.MustCompile(`^card-(\d+)$`)
	pendingPattern  = regexp.MustCompile(`^cards?-[?x]+$`)
)

// Renamer persists a new element name back to the source document.
type Renamer interface {
	Rename(el *design.Element, name string) error
}

// Numbered is a card element with its sequence number.
type Numbered struct {
	Element *design.Element
	Seq     int
}

// RenameFailure records a placeholder whose new name was not persisted.
// The card keeps its assigned number in memory.
type RenameFailure struct {
	Element *design.Element
	Name    string
	Err     error
}

func (f RenameFailure) Error() string {
	return fmt.Sprintf("rename to %s failed: %v", f.Name, f.Err)
}

// Resolution is the output of a resolve pass.
type Resolution struct {
	Cards    []Numbered
	Tokens   []*design.Element
	Failures []RenameFailure
}

// Resolve partitions candidates into numbered cards, placeholders and
// tokens, numbers the placeholders after the highest existing number and
// renames them to card-<n>. Candidates matching none of the three shapes
// are dropped.
//
// Passes over the same document must not run concurrently.
func Resolve(candidates []*design.Element, renamer Renamer, logger *slog.Logger) Resolution {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		res     Resolution
		pending []*design.Element
		maxID   int
	)

	for _, el := range candidates {
		name := el.Name
		if strings.HasPrefix(name, "token-") {
			res.Tokens = append(res.Tokens, el)
		} else if m := numberedPattern.FindStringSubmatch(name); m != nil {
			seq, err := strconv.Atoi(m[1])
			if err != nil {
				logger.Warn("card number out of range", "name", name)
				continue
			}
			if seq > maxID {
				maxID = seq
			}
			res.Cards = append(res.Cards, Numbered{Element: el, Seq: seq})
		} else if pendingPattern.MatchString(name) {
			pending = append(pending, el)
		}
	}

	next := maxID + 1
	for _, el := range pending {
		newName := fmt.Sprintf("card-%d", next)
		if err := renamer.Rename(el, newName); err != nil {
			logger.Warn("renaming failed", "name", el.Name, "target", newName, "error", err)
			res.Failures = append(res.Failures, RenameFailure{Element: el, Name: newName, Err: err})
		} else {
			logger.Debug("renamed placeholder", "target", newName)
		}
		res.Cards = append(res.Cards, Numbered{Element: el, Seq: next})
		next++
	}

	sort.SliceStable(res.Cards, func(i, j int) bool {
		return res.Cards[i].Seq < res.Cards[j].Seq
	})
	sort.SliceStable(res.Tokens, func(i, j int) bool {
		return res.Tokens[i].Name < res.Tokens[j].Name
	})

	return res
}

// ScanAndResolve scans root for candidates and resolves them.
func ScanAndResolve(root *design.Element, maxDepth int, renamer Renamer, logger *slog.Logger) Resolution {
	return Resolve(scanner.Scan(root, maxDepth), renamer, logger)
}
