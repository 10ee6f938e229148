package estimate

import (
	"math"
	"unicode/utf8"

	"resumePress/internal/layout"
	"resumePress/internal/resume"
)

// Pixel baselines. They are used as-is at every font size.
const (
	HeaderPx       = 150.0
	SectionTitlePx = 30.0
	SummaryBasePx  = 80.0
	JobBasePx      = 80.0
	JobBulletPx    = 30.0
	EducationPx    = 50.0
	SkillsBasePx   = 60.0

	wrapIncrementPx = 20.0
	charsPerLine    = 80
)

// Heuristic estimates heights from block kind and text length alone.
type Heuristic struct{}

func (Heuristic) MeasureBlockHeight(b resume.Block, m layout.Measurements) (float64, error) {
	return HeuristicHeight(b, m), nil
}

// HeuristicHeight is total over block kinds; an unknown kind is one line.
func HeuristicHeight(b resume.Block, m layout.Measurements) float64 {
	switch b.Kind {
	case resume.KindHeader:
		return HeaderPx
	case resume.KindSectionTitle:
		return SectionTitlePx
	case resume.KindSummary:
		return SummaryBasePx + wrappedLines(b.Text)*wrapIncrementPx
	case resume.KindJob:
		return JobBasePx + float64(b.BulletCount())*JobBulletPx
	case resume.KindEducation:
		return EducationPx
	case resume.KindSkills:
		return SkillsBasePx + wrappedLines(b.SkillsText())*wrapIncrementPx
	default:
		return m.LineHeightPx
	}
}

// wrappedLines counts characters, not bytes.
func wrappedLines(s string) float64 {
	return math.Ceil(float64(utf8.RuneCountInString(s)) / charsPerLine)
}
