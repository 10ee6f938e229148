package typeset

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/tdewolff/canvas"

	"resumePress/internal/layout"
	"resumePress/internal/resume"
	"resumePress/internal/units"
)

// Font size multipliers relative to the body size.
const (
	nameScale    = 2.0
	titleScale   = 1.2
	sectionScale = 1.25
	bulletIndent = 12.0 // pt
	bullet       = "• "
)

var errNoContentWidth = errors.New("content width is not positive")

// line is one typeset line. Offsets and heights are points.
type line struct {
	text     string
	face     *canvas.FontFace
	sizePt   float64
	heightPt float64
	indentPt float64
}

// blockLayout is a block broken into lines plus the gap that follows it.
type blockLayout struct {
	lines   []line
	afterPt float64
}

func (b blockLayout) heightPt() float64 {
	h := b.afterPt
	for _, l := range b.lines {
		h += l.heightPt
	}
	return h
}

type styledText struct {
	text   string
	scale  float64
	style  canvas.FontStyle
	indent float64
	prefix string
}

func layoutBlock(fonts *fontSet, b resume.Block, m layout.Measurements) (blockLayout, error) {
	if m.ContentWidthPt <= 0 {
		return blockLayout{}, errNoContentWidth
	}

	var parts []styledText
	var after float64
	switch b.Kind {
	case resume.KindHeader:
		p := resume.PersonalInfo{}
		if b.Header != nil {
			p = *b.Header
		}
		parts = []styledText{
			{text: p.Name, scale: nameScale, style: canvas.FontBold},
			{text: p.Title, scale: titleScale, style: canvas.FontRegular},
			{text: joinNonEmpty(" | ", p.Email, p.Phone, p.Location), scale: 1, style: canvas.FontRegular},
		}
		after = m.SectionSpacingPt
	case resume.KindSectionTitle:
		parts = []styledText{{text: b.Title, scale: sectionScale, style: canvas.FontBold}}
		after = m.ItemSpacingPt
	case resume.KindSummary:
		parts = []styledText{{text: b.Text, scale: 1, style: canvas.FontRegular}}
		after = m.SectionSpacingPt
	case resume.KindJob:
		job := resume.WorkExperience{}
		if b.Job != nil {
			job = *b.Job
		}
		parts = []styledText{
			{text: job.Position, scale: 1, style: canvas.FontBold},
			{text: joinNonEmpty(" | ", job.Company, job.DateRange()), scale: 1, style: canvas.FontItalic},
		}
		for _, d := range job.Description {
			parts = append(parts, styledText{text: d, scale: 1, style: canvas.FontRegular, indent: bulletIndent, prefix: bullet})
		}
		after = m.ItemSpacingPt
	case resume.KindEducation:
		edu := resume.Education{}
		if b.Education != nil {
			edu = *b.Education
		}
		degree := strings.TrimSpace(joinNonEmpty(" in ", edu.Degree, edu.Field))
		parts = []styledText{
			{text: degree, scale: 1, style: canvas.FontBold},
			{text: joinNonEmpty(" | ", edu.School, edu.GraduationDate, gpa(edu.GPA)), scale: 1, style: canvas.FontRegular},
		}
		after = m.ItemSpacingPt
	case resume.KindSkills:
		parts = []styledText{{text: b.SkillsText(), scale: 1, style: canvas.FontRegular}}
		after = m.SectionSpacingPt
	default:
		return blockLayout{lines: []line{{heightPt: m.LineHeightPt}}}, nil
	}

	multiplier := m.LineHeightPt / m.FontSizePt
	out := blockLayout{afterPt: after}
	for _, p := range parts {
		if strings.TrimSpace(p.text) == "" {
			continue
		}
		size := m.FontSizePt * p.scale
		face, err := fonts.face(m.FontFamily, size, p.style)
		if err != nil {
			return blockLayout{}, err
		}
		width := units.PointsToMillimeters(m.ContentWidthPt - p.indent)
		for i, text := range wrap(face, p.prefix+p.text, width) {
			indent := p.indent
			if i > 0 && p.prefix != "" {
				indent += units.MillimetersToPoints(face.TextWidth(p.prefix))
			}
			out.lines = append(out.lines, line{
				text:     text,
				face:     face,
				sizePt:   size,
				heightPt: size * multiplier,
				indentPt: indent,
			})
		}
	}
	if math.IsNaN(out.heightPt()) {
		return blockLayout{}, fmt.Errorf("%s block: invalid line metrics", b.Kind)
	}
	return out, nil
}

func gpa(v string) string {
	if v == "" {
		return ""
	}
	return "GPA " + v
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// wrap breaks text at spaces so each line fits limit millimetres. A word
// wider than the limit is split between runes.
func wrap(face *canvas.FontFace, text string, limit float64) []string {
	words := strings.FieldsFunc(text, unicode.IsSpace)
	if len(words) == 0 {
		return nil
	}
	space := face.TextWidth(" ")

	var lines []string
	var cur strings.Builder
	curWidth := 0.0
	flush := func() {
		if cur.Len() > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
		}
	}

	for _, w := range words {
		ww := face.TextWidth(w)
		if ww > limit {
			flush()
			lines = append(lines, splitWord(face, w, limit)...)
			continue
		}
		if cur.Len() > 0 && curWidth+space+ww > limit {
			flush()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
			curWidth += space
		}
		cur.WriteString(w)
		curWidth += ww
	}
	flush()
	return lines
}

func splitWord(face *canvas.FontFace, word string, limit float64) []string {
	var parts []string
	runes := []rune(word)
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i-start > 1 && face.TextWidth(string(runes[start:i])) > limit {
			parts = append(parts, string(runes[start:i-1]))
			start = i - 1
		}
	}
	return append(parts, string(runes[start:]))
}
