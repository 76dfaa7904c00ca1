package design

import "strings"

// Kind discriminates the elements the extractor cares about.
type Kind int

const (
	KindOther     Kind = iota // vectors, shapes, images, anything without text or children
	KindContainer             // pages, frames, groups, sections, components
	KindText                  // text layers
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindText:
		return "text"
	default:
		return "other"
	}
}

// containerTypes are the document types that always hold children.
var containerTypes = map[string]bool{
	"DOCUMENT":      true,
	"PAGE":          true,
	"FRAME":         true,
	"GROUP":         true,
	"SECTION":       true,
	"COMPONENT":     true,
	"COMPONENT_SET": true,
	"INSTANCE":      true,
}

// KindOf maps a raw document type to its Kind. Unknown types that carry a
// children list are treated as containers.
func KindOf(rawType string, hasChildren bool) Kind {
	t := strings.ToUpper(rawType)
	switch {
	case t == "TEXT":
		return KindText
	case containerTypes[t], hasChildren:
		return KindContainer
	default:
		return KindOther
	}
}

// StyledRun is a slice of a text layer sharing one font style.
type StyledRun struct {
	Characters string `json:"characters" yaml:"characters"`
	FontStyle  string `json:"fontStyle" yaml:"fontStyle"`
}

// Element is a node of the design tree
type Element struct {
	ID   string
	Name string
	Type string // raw document type, e.g. FRAME or TEXT
	Kind Kind

	// Text layers only
	Characters string
	FontStyle  string
	Runs       []StyledRun

	Image  string // path of pre-rendered artwork, relative to the document
	Locked bool   // locked elements reject renames

	// nil when the element has no children collection
	Children []*Element

	src source
}

// HasChildren reports whether the element carries a children collection.
func (e *Element) HasChildren() bool {
	return e.Children != nil
}

// StyledRuns returns the element's styled runs. Text layers without authored
// runs yield a single run spanning all characters in the layer's font style.
func (e *Element) StyledRuns() []StyledRun {
	if len(e.Runs) > 0 {
		return e.Runs
	}
	if e.Kind != KindText || e.Characters == "" {
		return nil
	}
	return []StyledRun{{Characters: e.Characters, FontStyle: e.FontStyle}}
}

// TextNodes returns every text layer under el, el included, in pre-order.
func TextNodes(el *Element) []*Element {
	var texts []*Element
	if el.Kind == KindText {
		texts = append(texts, el)
	}
	for _, child := range el.Children {
		texts = append(texts, TextNodes(child)...)
	}
	return texts
}
