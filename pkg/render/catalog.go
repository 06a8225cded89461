package render

import (
	_ "embed"
	"errors"
	"fmt"

	"go.yaml.in/yaml/v4"
)

//go:embed assets/templates.yaml
var catalogYAML []byte

// DefaultTemplate is used when a request names no template.
const DefaultTemplate = "simple"

// Layouts understood by cv.html.
const (
	LayoutClassic = "classic"
	LayoutSidebar = "sidebar"
	LayoutMinimal = "minimal"
)

var ErrUnknownTemplate = errors.New("unknown template")

// Palette holds the three colours a template uses.
type Palette struct {
	Accent string `yaml:"accent" json:"accent"`
	Subtle string `yaml:"subtle" json:"subtle"`
	Line   string `yaml:"line" json:"line"`
}

// Template is one visual layout of the catalog.
type Template struct {
	ID      string  `yaml:"id" json:"id"`
	Name    string  `yaml:"name" json:"name"`
	Layout  string  `yaml:"layout" json:"layout"`
	Font    string  `yaml:"font" json:"font"`
	Palette Palette `yaml:"palette" json:"palette"`
}

// Catalog is the ordered list of available templates.
type Catalog struct {
	items []Template
	byID  map[string]Template
}

// LoadCatalog parses a YAML template catalog.
func LoadCatalog(data []byte) (*Catalog, error) {
	var doc struct {
		Templates []Template `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse template catalog: %w", err)
	}
	c := &Catalog{byID: make(map[string]Template, len(doc.Templates))}
	for _, t := range doc.Templates {
		switch {
		case t.ID == "":
			return nil, errors.New("template catalog: empty id")
		case t.Layout != LayoutClassic && t.Layout != LayoutSidebar && t.Layout != LayoutMinimal:
			return nil, fmt.Errorf("template %q: unknown layout %q", t.ID, t.Layout)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("template %q: duplicate id", t.ID)
		}
		c.items = append(c.items, t)
		c.byID[t.ID] = t
	}
	if _, ok := c.byID[DefaultTemplate]; !ok {
		return nil, fmt.Errorf("template catalog: missing %q", DefaultTemplate)
	}
	return c, nil
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (*Catalog, error) { return LoadCatalog(catalogYAML) }

// Get looks a template up by id; an empty id yields the default template.
func (c *Catalog) Get(id string) (Template, error) {
	if id == "" {
		id = DefaultTemplate
	}
	t, ok := c.byID[id]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, id)
	}
	return t, nil
}

// List returns the templates in catalog order.
func (c *Catalog) List() []Template {
	return append([]Template(nil), c.items...)
}
