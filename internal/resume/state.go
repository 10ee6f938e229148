package resume

import "slices"

// State is the editor state: the document plus the selected template. All
// update functions return a fresh State and leave their input untouched.
type State struct {
	Resume     Document `json:"resume"`
	TemplateID string   `json:"templateId"`
}

// FormatPatch is a partial Format; nil fields are left unchanged.
type FormatPatch struct {
	FontFamily     *FontFamily `json:"fontFamily,omitempty"`
	FontSize       *float64    `json:"fontSize,omitempty"`
	LineHeight     *float64    `json:"lineHeight,omitempty"`
	Margins        *Margins    `json:"margins,omitempty"`
	PageSize       *string     `json:"pageSize,omitempty"`
	SectionSpacing *float64    `json:"sectionSpacing,omitempty"`
	ItemSpacing    *float64    `json:"itemSpacing,omitempty"`
}

// Apply returns f with every set field of p copied over.
func (p FormatPatch) Apply(f Format) Format {
	if p.FontFamily != nil {
		f.FontFamily = *p.FontFamily
	}
	if p.FontSize != nil {
		f.FontSize = *p.FontSize
	}
	if p.LineHeight != nil {
		f.LineHeight = *p.LineHeight
	}
	if p.Margins != nil {
		f.Margins = *p.Margins
	}
	if p.PageSize != nil {
		f.PageSize = pageSizeOf(*p.PageSize)
	}
	if p.SectionSpacing != nil {
		f.SectionSpacing = *p.SectionSpacing
	}
	if p.ItemSpacing != nil {
		f.ItemSpacing = *p.ItemSpacing
	}
	return f
}

// ContentPatch is a partial Content; nil fields are left unchanged.
type ContentPatch struct {
	PersonalInfo *PersonalInfo    `json:"personalInfo,omitempty"`
	Summary      *string          `json:"summary,omitempty"`
	Experience   []WorkExperience `json:"experience,omitempty"`
	Education    []Education      `json:"education,omitempty"`
	Skills       []string         `json:"skills,omitempty"`
}

// NewState starts from the sample document with the given template.
func NewState(templateID string) State {
	return State{Resume: Default(), TemplateID: templateID}
}

func UpdateContent(s State, p ContentPatch) State {
	next := s.clone()
	c := &next.Resume.Content
	if p.PersonalInfo != nil {
		c.PersonalInfo = *p.PersonalInfo
	}
	if p.Summary != nil {
		c.Summary = *p.Summary
	}
	if p.Experience != nil {
		c.Experience = cloneExperience(p.Experience)
	}
	if p.Education != nil {
		c.Education = slices.Clone(p.Education)
	}
	if p.Skills != nil {
		c.Skills = slices.Clone(p.Skills)
	}
	return next
}

func UpdateFormat(s State, p FormatPatch) State {
	next := s.clone()
	next.Resume.Format = p.Apply(next.Resume.Format)
	return next
}

func UpdatePersonalInfo(s State, p PersonalInfo) State {
	return UpdateContent(s, ContentPatch{PersonalInfo: &p})
}

func UpdateSummary(s State, summary string) State {
	return UpdateContent(s, ContentPatch{Summary: &summary})
}

// SetTemplate selects a template and merges its format defaults. Template
// lookup is the caller's job; an unknown id must not reach here.
func SetTemplate(s State, templateID string, defaults FormatPatch) State {
	next := UpdateFormat(s, defaults)
	next.TemplateID = templateID
	return next
}

// Reset returns the sample document with the given default template.
func Reset(defaultTemplateID string) State { return NewState(defaultTemplateID) }

func (s State) clone() State {
	next := s
	next.Resume.Content.Experience = cloneExperience(s.Resume.Content.Experience)
	next.Resume.Content.Education = slices.Clone(s.Resume.Content.Education)
	next.Resume.Content.Skills = slices.Clone(s.Resume.Content.Skills)
	return next
}

func cloneExperience(in []WorkExperience) []WorkExperience {
	if in == nil {
		return nil
	}
	out := make([]WorkExperience, len(in))
	for i, w := range in {
		w.Description = slices.Clone(w.Description)
		out[i] = w
	}
	return out
}
