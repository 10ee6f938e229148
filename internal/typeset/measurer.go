package typeset

import (
	"resumePress/internal/estimate"
	"resumePress/internal/layout"
	"resumePress/internal/resume"
	"resumePress/internal/units"
)

// Measurer wraps block text to the content width with real glyph widths.
// It is safe for concurrent use.
type Measurer struct {
	fonts *fontSet
}

var _ estimate.Measurer = (*Measurer)(nil)

func NewMeasurer() *Measurer {
	return &Measurer{fonts: sharedFonts}
}

// MeasureBlockHeight returns the typeset height of b in pixels, including
// the spacing that follows it.
func (ms *Measurer) MeasureBlockHeight(b resume.Block, m layout.Measurements) (float64, error) {
	bl, err := layoutBlock(ms.fonts, b, m)
	if err != nil {
		return 0, err
	}
	return units.PointsToPixels(bl.heightPt()), nil
}
