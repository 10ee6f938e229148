package layout

import (
	"errors"
	"math"
	"testing"

	"resumePress/internal/resume"
	"resumePress/internal/units"
)

const tolerance = 1e-9

func a4Format() resume.Format {
	return resume.Format{
		FontFamily:     resume.FontArial,
		FontSize:       11,
		LineHeight:     1.4,
		Margins:        resume.Margins{Top: 20, Right: 20, Bottom: 20, Left: 20},
		PageSize:       units.A4,
		SectionSpacing: 16,
		ItemSpacing:    8,
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < tolerance }

func TestCalculateA4(t *testing.T) {
	m := Calculate(a4Format())
	if m.PageWidthPt != 595.28 {
		t.Fatalf("page width pt = %v", m.PageWidthPt)
	}
	if !near(m.ContentWidthPt, 555.28) {
		t.Fatalf("content width pt = %v", m.ContentWidthPt)
	}
	if !near(m.PageWidthPx, 595.28*96/72) {
		t.Fatalf("page width px = %v", m.PageWidthPx)
	}
	if !near(m.ContentHeightPt, 801.89) {
		t.Fatalf("content height pt = %v", m.ContentHeightPt)
	}
	if !near(m.LineHeightPt, 15.4) {
		t.Fatalf("line height pt = %v", m.LineHeightPt)
	}
	if m.PageSize != units.A4 {
		t.Fatalf("page size not threaded: %q", m.PageSize)
	}
}

func TestPixelFieldsFollowPoints(t *testing.T) {
	f := a4Format()
	f.PageSize = units.Letter
	f.Margins = resume.Margins{Top: 36, Right: 54, Bottom: 18, Left: 72}
	m := Calculate(f)

	pairs := [][2]float64{
		{m.PageWidthPt, m.PageWidthPx},
		{m.PageHeightPt, m.PageHeightPx},
		{m.ContentWidthPt, m.ContentWidthPx},
		{m.ContentHeightPt, m.ContentHeightPx},
		{m.MarginTopPt, m.MarginTopPx},
		{m.MarginLeftPt, m.MarginLeftPx},
		{m.FontSizePt, m.FontSizePx},
		{m.LineHeightPt, m.LineHeightPx},
		{m.SectionSpacingPt, m.SectionSpacingPx},
		{m.ItemSpacingPt, m.ItemSpacingPx},
	}
	for i, p := range pairs {
		if p[1] != units.PointsToPixels(p[0]) {
			t.Fatalf("pair %d: px %v is not derived from pt %v", i, p[1], p[0])
		}
	}
	if !near(m.ContentWidthPt, 612-72-54) || !near(m.ContentHeightPt, 792-36-18) {
		t.Fatalf("content area wrong: %v x %v", m.ContentWidthPt, m.ContentHeightPt)
	}
}

func TestCalculateIsPure(t *testing.T) {
	f := a4Format()
	if Calculate(f) != Calculate(f) {
		t.Fatalf("same format produced different measurements")
	}
	g := f
	g.PageSize = units.Letter
	if Calculate(g) == Calculate(f) {
		t.Fatalf("format change not reflected")
	}
}

func TestCalculateOversizedMarginsDoesNotPanic(t *testing.T) {
	f := a4Format()
	f.Margins.Left, f.Margins.Right = 400, 400
	m := Calculate(f)
	if m.ContentAreaValid() {
		t.Fatalf("expected invalid content area, got width %v", m.ContentWidthPt)
	}
	if m.ContentWidthPt >= 0 {
		t.Fatalf("content width should be reported as negative, got %v", m.ContentWidthPt)
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*resume.Format)
		wantErr error
		field   string
	}{
		{name: "valid", mutate: func(*resume.Format) {}},
		{name: "horizontal margins", mutate: func(f *resume.Format) { f.Margins.Left, f.Margins.Right = 300, 300 }, wantErr: ErrContentArea, field: "margins"},
		{name: "vertical margins", mutate: func(f *resume.Format) { f.Margins.Top = 841.89 }, wantErr: ErrContentArea, field: "margins"},
		{name: "negative margin", mutate: func(f *resume.Format) { f.Margins.Left = -1 }, wantErr: ErrInvalidFormat, field: "margins.left"},
		{name: "unknown page size", mutate: func(f *resume.Format) { f.PageSize = "A5" }, wantErr: ErrInvalidFormat, field: "pageSize"},
		{name: "zero font size", mutate: func(f *resume.Format) { f.FontSize = 0 }, wantErr: ErrInvalidFormat, field: "fontSize"},
		{name: "nan line height", mutate: func(f *resume.Format) { f.LineHeight = math.NaN() }, wantErr: ErrInvalidFormat, field: "lineHeight"},
		{name: "negative spacing", mutate: func(f *resume.Format) { f.ItemSpacing = -4 }, wantErr: ErrInvalidFormat, field: "itemSpacing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := a4Format()
			tt.mutate(&f)
			err := Check(f)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) || cfgErr.Field != tt.field {
				t.Fatalf("expected field %q, got %v", tt.field, err)
			}
		})
	}
}

func TestContentAreaErrorIsDistinct(t *testing.T) {
	f := a4Format()
	f.Margins.Top, f.Margins.Bottom = 500, 500
	err := Check(f)
	if errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("content area error must not match ErrInvalidFormat")
	}
}
