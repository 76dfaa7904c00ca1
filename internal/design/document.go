package design

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound is returned when a page or element cannot be resolved.
	ErrNotFound = errors.New("not found")
	// ErrLocked is returned when renaming a locked element.
	ErrLocked = errors.New("element is locked")
)

type format int

const (
	formatJSON format = iota
	formatYAML
)

// source is the raw on-disk value an element was read from. Renames are
// written into it so attributes the extractor does not model survive a save.
type source interface {
	setName(name string)
}

type jsonSource map[string]any

func (s jsonSource) setName(name string) { s["name"] = name }

type yamlSource struct{ node *yaml.Node }

func (s yamlSource) setName(name string) {
	if v := mappingValue(s.node, "name"); v != nil {
		v.Kind = yaml.ScalarNode
		v.Tag = "!!str"
		v.Value = name
		return
	}
	s.node.Content = append(s.node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "name"},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
	)
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func jsonElement(m map[string]any) *Element {
	el := &Element{
		ID:         stringField(m, "id"),
		Name:       stringField(m, "name"),
		Type:       stringField(m, "type"),
		Characters: stringField(m, "characters"),
		FontStyle:  stringField(m, "fontStyle"),
		Image:      stringField(m, "image"),
		Locked:     m["locked"] == true,
		src:        jsonSource(m),
	}
	if runs, ok := m["styledRuns"].([]any); ok {
		for _, r := range runs {
			if rm, ok := r.(map[string]any); ok {
				el.Runs = append(el.Runs, StyledRun{
					Characters: stringField(rm, "characters"),
					FontStyle:  stringField(rm, "fontStyle"),
				})
			}
		}
	}

	children, hasChildren := m["children"].([]any)
	el.Kind = KindOf(el.Type, hasChildren)
	if hasChildren {
		el.Children = make([]*Element, 0, len(children))
		for _, child := range children {
			if cm, ok := child.(map[string]any); ok {
				el.Children = append(el.Children, jsonElement(cm))
			}
		}
	}
	return el
}

// yamlFields are the attributes read from a YAML element. Every other key,
// children included, is left in the node.
type yamlFields struct {
	ID         string      `yaml:"id"`
	Name       string      `yaml:"name"`
	Type       string      `yaml:"type"`
	Characters string      `yaml:"characters"`
	FontStyle  string      `yaml:"fontStyle"`
	StyledRuns []StyledRun `yaml:"styledRuns"`
	Image      string      `yaml:"image"`
	Locked     bool        `yaml:"locked"`
}

func yamlElement(n *yaml.Node) (*Element, error) {
	var f yamlFields
	if err := n.Decode(&f); err != nil {
		return nil, err
	}
	el := &Element{
		ID:         f.ID,
		Name:       f.Name,
		Type:       f.Type,
		Characters: f.Characters,
		FontStyle:  f.FontStyle,
		Runs:       f.StyledRuns,
		Image:      f.Image,
		Locked:     f.Locked,
		src:        yamlSource{node: n},
	}

	children := mappingValue(n, "children")
	hasChildren := children != nil && children.Kind == yaml.SequenceNode
	el.Kind = KindOf(el.Type, hasChildren)
	if hasChildren {
		el.Children = make([]*Element, 0, len(children.Content))
		for _, child := range children.Content {
			if child.Kind != yaml.MappingNode {
				continue
			}
			c, err := yamlElement(child)
			if err != nil {
				return nil, err
			}
			el.Children = append(el.Children, c)
		}
	}
	return el, nil
}

// Document is a design tree loaded from a JSON or YAML file. The raw file
// contents are kept next to the tree and only element names are written back.
type Document struct {
	Path string
	Root *Element

	jsonRoot map[string]any
	yamlDoc  *yaml.Node
	modified bool
}

// NewDocument wraps an in-memory tree. Save is a no-op for documents
// without a path.
func NewDocument(root *Element) *Document {
	return &Document{Root: root}
}

// Load reads a design document. The format is chosen by file extension.
func Load(path string) (*Document, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("document %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("error reading document: %v", err)
	}

	doc := &Document{Path: path}
	switch f {
	case formatYAML:
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("error parsing document %s: %v", path, err)
		}
		if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
			return nil, fmt.Errorf("error parsing document %s: root is not a mapping", path)
		}
		doc.yamlDoc = &root
		if doc.Root, err = yamlElement(root.Content[0]); err != nil {
			return nil, fmt.Errorf("error parsing document %s: %v", path, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var root map[string]any
		if err := dec.Decode(&root); err != nil {
			return nil, fmt.Errorf("error parsing document %s: %v", path, err)
		}
		if root == nil {
			return nil, fmt.Errorf("error parsing document %s: root is not an object", path)
		}
		doc.jsonRoot = root
		doc.Root = jsonElement(root)
	}
	return doc, nil
}

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return 0, fmt.Errorf("unsupported document format: %s", path)
	}
}

// Modified reports whether the tree changed since it was loaded or saved.
func (d *Document) Modified() bool {
	return d.modified
}

// Rename sets the name of an element of this document.
func (d *Document) Rename(el *Element, name string) error {
	if el.Locked {
		return fmt.Errorf("rename %q to %q: %w", el.Name, name, ErrLocked)
	}
	if el.Name == name {
		return nil
	}
	el.Name = name
	if el.src != nil {
		el.src.setName(name)
	}
	d.modified = true
	return nil
}

// Save writes the renamed elements back to the file they were loaded from.
func (d *Document) Save() error {
	if !d.modified || d.Path == "" {
		return nil
	}

	var (
		buf bytes.Buffer
		err error
	)
	switch {
	case d.yamlDoc != nil:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		err = enc.Encode(d.yamlDoc)
		if err == nil {
			err = enc.Close()
		}
	case d.jsonRoot != nil:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		err = enc.Encode(d.jsonRoot)
	default:
		return fmt.Errorf("document %s was not loaded from a file", d.Path)
	}
	if err != nil {
		return fmt.Errorf("error encoding document: %v", err)
	}

	if err := os.WriteFile(d.Path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing document: %v", err)
	}
	d.modified = false
	return nil
}

// Pages returns the page elements of the document. A document whose root
// has no PAGE children is its own single page.
func (d *Document) Pages() []*Element {
	var pages []*Element
	for _, child := range d.Root.Children {
		if strings.EqualFold(child.Type, "PAGE") {
			pages = append(pages, child)
		}
	}
	if len(pages) == 0 {
		return []*Element{d.Root}
	}
	return pages
}

// Page resolves a page by ID or name. An empty ref selects the first page.
func (d *Document) Page(ref string) (*Element, error) {
	pages := d.Pages()
	if ref == "" {
		return pages[0], nil
	}
	for _, p := range pages {
		if p.ID == ref || p.Name == ref {
			return p, nil
		}
	}
	return nil, fmt.Errorf("page %q: %w", ref, ErrNotFound)
}
