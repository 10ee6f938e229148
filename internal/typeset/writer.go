package typeset

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"resumePress/internal/pipeline"
	"resumePress/internal/resume"
	"resumePress/internal/units"
)

// ErrNoPages is returned when a layout has nothing to draw.
var ErrNoPages = errors.New("layout has no pages to render")

// Writer draws a paginated layout straight to PDF without a browser.
type Writer struct {
	fonts *fontSet
}

func NewWriter() *Writer {
	return &Writer{fonts: sharedFonts}
}

// Render writes one PDF page per partition page. Blocks are stacked from
// the top margin in partition order.
func (w *Writer) Render(result pipeline.Result, doc resume.Document) ([]byte, error) {
	if len(result.Pages) == 0 {
		return nil, ErrNoPages
	}
	m := result.Layout
	widthMm := units.PointsToMillimeters(m.PageWidthPt)
	heightMm := units.PointsToMillimeters(m.PageHeightPt)

	var buf bytes.Buffer
	writer := pdf.New(&buf, widthMm, heightMm, nil)
	name := doc.Content.PersonalInfo.Name
	writer.SetInfo(name+" - Resume", doc.Content.PersonalInfo.Title, "", name, "resumePress")

	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(widthMm, heightMm)
		}
		c := canvas.New(widthMm, heightMm)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV)

		cursor := m.MarginTopPt
		for _, mb := range page.Blocks {
			bl, err := layoutBlock(w.fonts, mb.Block, m)
			if err != nil {
				return nil, fmt.Errorf("typeset page %d: %w", page.Number, err)
			}
			for _, l := range bl.lines {
				if l.face != nil && l.text != "" {
					baseline := units.PointsToMillimeters(cursor) + l.face.Metrics().Ascent
					x := units.PointsToMillimeters(m.MarginLeftPt + l.indentPt)
					ctx.DrawText(x, baseline, canvas.NewTextLine(l.face, l.text, canvas.Left))
				}
				cursor += l.heightPt
			}
			cursor += bl.afterPt
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
