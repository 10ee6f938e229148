package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"resumePress/internal/pagination"
	"resumePress/internal/pipeline"
	"resumePress/internal/resume"
)

//go:embed html/page.html.tmpl
var pageFS embed.FS

var pageTmpl = template.Must(template.ParseFS(pageFS, "html/page.html.tmpl"))

type pageData struct {
	Title     string
	PageSize  string
	FontStack template.CSS
	Colors    ColorScheme

	FontSizePt       float64
	NameSizePt       float64
	LineHeight       float64
	SectionSpacingPt float64
	ItemSpacingPt    float64
	HeaderAlign      string

	PageWidthPx    float64
	PageHeightPx   float64
	MarginTopPx    float64
	MarginRightPx  float64
	MarginBottomPx float64
	MarginLeftPx   float64
	FooterOffsetPx float64

	Pages []pagination.Page
}

var fontStacks = map[resume.FontFamily]template.CSS{
	resume.FontArial:         "Arial, Helvetica, sans-serif",
	resume.FontGeorgia:       "Georgia, 'Times New Roman', serif",
	resume.FontTimesNewRoman: "'Times New Roman', Times, serif",
}

// Render produces the print HTML for a paginated document: one fixed-size
// .page element per partition page, sized from the layout measurements.
func Render(tpl Template, doc resume.Document, result pipeline.Result) (string, error) {
	m := result.Layout
	stack, ok := fontStacks[m.FontFamily]
	if !ok {
		stack = fontStacks[resume.FontArial]
	}
	align := "center"
	if tpl.Layout.HeaderStyle == "left" {
		align = "left"
	}
	lineHeight := 0.0
	if m.FontSizePt > 0 {
		lineHeight = m.LineHeightPt / m.FontSizePt
	}

	data := pageData{
		Title:     doc.Content.PersonalInfo.Name,
		PageSize:  string(m.PageSize),
		FontStack: stack,
		Colors:    tpl.Layout.ColorScheme,

		FontSizePt:       m.FontSizePt,
		NameSizePt:       m.FontSizePt * 1.8,
		LineHeight:       lineHeight,
		SectionSpacingPt: m.SectionSpacingPt,
		ItemSpacingPt:    m.ItemSpacingPt,
		HeaderAlign:      align,

		PageWidthPx:    m.PageWidthPx,
		PageHeightPx:   m.PageHeightPx,
		MarginTopPx:    m.MarginTopPx,
		MarginRightPx:  m.MarginRightPx,
		MarginBottomPx: m.MarginBottomPx,
		MarginLeftPx:   m.MarginLeftPx,
		FooterOffsetPx: m.MarginBottomPx / 2,

		Pages: result.Pages,
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", tpl.ID, err)
	}
	return buf.String(), nil
}
