// Package templates holds the visual templates and renders a paginated
// layout to print-ready HTML.
package templates

import (
	"errors"
	"slices"

	"resumePress/internal/resume"
)

var ErrUnknownTemplate = errors.New("unknown template")

type ColorScheme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Text      string `json:"text"`
	Accent    string `json:"accent"`
}

// Layout is the visual variant of a template.
type Layout struct {
	HeaderStyle string      `json:"headerStyle"` // "centered" or "left"
	ColorScheme ColorScheme `json:"colorScheme"`
}

// FormatDefaults are merged into a document's format when the template is
// selected. Zero fields are not applied.
type FormatDefaults struct {
	FontFamily     resume.FontFamily `json:"fontFamily,omitempty"`
	FontSize       float64           `json:"fontSize,omitempty"`
	LineHeight     float64           `json:"lineHeight,omitempty"`
	SectionSpacing float64           `json:"sectionSpacing,omitempty"`
	ItemSpacing    float64           `json:"itemSpacing,omitempty"`
}

// Patch converts the defaults to a FormatPatch for resume.SetTemplate.
func (d FormatDefaults) Patch() resume.FormatPatch {
	var p resume.FormatPatch
	if d.FontFamily != "" {
		p.FontFamily = &d.FontFamily
	}
	if d.FontSize > 0 {
		p.FontSize = &d.FontSize
	}
	if d.LineHeight > 0 {
		p.LineHeight = &d.LineHeight
	}
	if d.SectionSpacing > 0 {
		p.SectionSpacing = &d.SectionSpacing
	}
	if d.ItemSpacing > 0 {
		p.ItemSpacing = &d.ItemSpacing
	}
	return p
}

func (d FormatDefaults) Apply(f resume.Format) resume.Format {
	return d.Patch().Apply(f)
}

type Template struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Defaults    FormatDefaults `json:"defaultFormat"`
	Layout      Layout         `json:"layout"`
}

const (
	Classic = "classic"
	Modern  = "modern"
)

var registry = []Template{
	{
		ID:          Classic,
		Name:        "Classic Professional",
		Description: "Traditional layout with clean lines and professional styling.",
		Category:    "classic",
		Defaults: FormatDefaults{
			FontFamily:     resume.FontTimesNewRoman,
			FontSize:       11,
			LineHeight:     1.4,
			SectionSpacing: 18,
			ItemSpacing:    10,
		},
		Layout: Layout{
			HeaderStyle: "centered",
			ColorScheme: ColorScheme{Primary: "#333333", Secondary: "#666666", Text: "#333333", Accent: "#333333"},
		},
	},
	{
		ID:          Modern,
		Name:        "Modern",
		Description: "Contemporary layout with a left-aligned header and muted accents.",
		Category:    "modern",
		Defaults: FormatDefaults{
			FontFamily:     resume.FontArial,
			FontSize:       11,
			LineHeight:     1.5,
			SectionSpacing: 20,
			ItemSpacing:    12,
		},
		Layout: Layout{
			HeaderStyle: "left",
			ColorScheme: ColorScheme{Primary: "#4a5568", Secondary: "#718096", Text: "#2d3748", Accent: "#4a5568"},
		},
	},
}

func Get(id string) (Template, error) {
	for _, t := range registry {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, ErrUnknownTemplate
}

// All returns the templates in registration order.
func All() []Template { return slices.Clone(registry) }

func ByCategory(category string) []Template {
	var out []Template
	for _, t := range registry {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

func DefaultID() string { return Classic }

func IsValid(id string) bool {
	_, err := Get(id)
	return err == nil
}

// Select switches the editor state to template id and merges its defaults.
func Select(s resume.State, id string) (resume.State, error) {
	t, err := Get(id)
	if err != nil {
		return s, err
	}
	return resume.SetTemplate(s, t.ID, t.Defaults.Patch()), nil
}
