// Package layout derives absolute page geometry from a resume format.
package layout

import (
	"resumePress/internal/resume"
	"resumePress/internal/units"
)

// Measurements is the derived geometry of a Format. Every Px field is the
// matching Pt field converted by units.PointsToPixels.
type Measurements struct {
	PageSize units.PageSize `json:"pageSize"`

	PageWidthPt  float64 `json:"pageWidthPt"`
	PageHeightPt float64 `json:"pageHeightPt"`
	PageWidthPx  float64 `json:"pageWidthPx"`
	PageHeightPx float64 `json:"pageHeightPx"`

	ContentWidthPt  float64 `json:"contentWidthPt"`
	ContentHeightPt float64 `json:"contentHeightPt"`
	ContentWidthPx  float64 `json:"contentWidthPx"`
	ContentHeightPx float64 `json:"contentHeightPx"`

	MarginTopPt    float64 `json:"marginTopPt"`
	MarginRightPt  float64 `json:"marginRightPt"`
	MarginBottomPt float64 `json:"marginBottomPt"`
	MarginLeftPt   float64 `json:"marginLeftPt"`
	MarginTopPx    float64 `json:"marginTopPx"`
	MarginRightPx  float64 `json:"marginRightPx"`
	MarginBottomPx float64 `json:"marginBottomPx"`
	MarginLeftPx   float64 `json:"marginLeftPx"`

	FontFamily   resume.FontFamily `json:"fontFamily"`
	FontSizePt   float64           `json:"fontSizePt"`
	FontSizePx   float64           `json:"fontSizePx"`
	LineHeightPt float64           `json:"lineHeightPt"`
	LineHeightPx float64           `json:"lineHeightPx"`

	SectionSpacingPt float64 `json:"sectionSpacingPt"`
	SectionSpacingPx float64 `json:"sectionSpacingPx"`
	ItemSpacingPt    float64 `json:"itemSpacingPt"`
	ItemSpacingPx    float64 `json:"itemSpacingPx"`
}

// Calculate is total: an unknown page size yields zero page dimensions and
// oversized margins yield non-positive content dimensions. Use Check to
// reject such formats.
func Calculate(f resume.Format) Measurements {
	w, h, _ := units.Dimensions(f.PageSize)
	lineHeight := f.FontSize * f.LineHeight

	m := Measurements{
		PageSize: f.PageSize,

		PageWidthPt:     w,
		PageHeightPt:    h,
		ContentWidthPt:  w - f.Margins.Left - f.Margins.Right,
		ContentHeightPt: h - f.Margins.Top - f.Margins.Bottom,

		MarginTopPt:    f.Margins.Top,
		MarginRightPt:  f.Margins.Right,
		MarginBottomPt: f.Margins.Bottom,
		MarginLeftPt:   f.Margins.Left,

		FontFamily:   f.FontFamily,
		FontSizePt:   f.FontSize,
		LineHeightPt: lineHeight,

		SectionSpacingPt: f.SectionSpacing,
		ItemSpacingPt:    f.ItemSpacing,
	}
	m.fillPixels()
	return m
}

func (m *Measurements) fillPixels() {
	px := units.PointsToPixels
	m.PageWidthPx = px(m.PageWidthPt)
	m.PageHeightPx = px(m.PageHeightPt)
	m.ContentWidthPx = px(m.ContentWidthPt)
	m.ContentHeightPx = px(m.ContentHeightPt)
	m.MarginTopPx = px(m.MarginTopPt)
	m.MarginRightPx = px(m.MarginRightPt)
	m.MarginBottomPx = px(m.MarginBottomPt)
	m.MarginLeftPx = px(m.MarginLeftPt)
	m.FontSizePx = px(m.FontSizePt)
	m.LineHeightPx = px(m.LineHeightPt)
	m.SectionSpacingPx = px(m.SectionSpacingPt)
	m.ItemSpacingPx = px(m.ItemSpacingPt)
}

// ContentAreaValid reports whether both content dimensions are positive.
func (m Measurements) ContentAreaValid() bool {
	return m.ContentWidthPt > 0 && m.ContentHeightPt > 0
}
