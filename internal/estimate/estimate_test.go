package estimate

import (
	"errors"
	"math"
	"strings"
	"testing"

	"resumePress/internal/layout"
	"resumePress/internal/resume"
	"resumePress/internal/units"
)

func measurements() layout.Measurements {
	return layout.Calculate(resume.Format{
		FontFamily: resume.FontArial,
		FontSize:   11,
		LineHeight: 1.4,
		Margins:    resume.Margins{Top: 20, Right: 20, Bottom: 20, Left: 20},
		PageSize:   units.A4,
	})
}

func TestHeuristicBaselines(t *testing.T) {
	m := measurements()
	job := resume.JobBlock(resume.WorkExperience{Description: []string{"a", "b", "c"}})
	tests := []struct {
		name  string
		block resume.Block
		want  float64
	}{
		{"header", resume.HeaderBlock(resume.PersonalInfo{Name: "x"}), 150},
		{"section title", resume.SectionTitleBlock("Skills"), 30},
		{"summary 80 chars", resume.SummaryBlock(strings.Repeat("a", 80)), 100},
		{"summary 81 chars", resume.SummaryBlock(strings.Repeat("a", 81)), 120},
		{"job with 3 bullets", job, 170},
		{"education", resume.EducationBlock(resume.Education{School: "MIT"}), 50},
		{"skills", resume.SkillsBlock([]string{"Go", "SQL"}), 80},
		{"unknown kind", resume.Block{Kind: "sidebar"}, m.LineHeightPx},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HeuristicHeight(tt.block, m); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHeuristicCountsRunes(t *testing.T) {
	m := measurements()
	// 80 multi-byte characters are still one line.
	b := resume.SummaryBlock(strings.Repeat("é", 80))
	if got := HeuristicHeight(b, m); got != 100 {
		t.Fatalf("got %v, want 100", got)
	}
}

func TestFromPixelsKeepsRatio(t *testing.T) {
	for _, px := range []float64{0, 1, 30, 150, 333.3, 1e6} {
		e := FromPixels(px)
		if e.Pt != units.PixelsToPoints(e.Px) {
			t.Fatalf("px %v: pt %v drifted", px, e.Pt)
		}
	}
	if FromPixels(96).Pt != 72 {
		t.Fatalf("96px must be 72pt")
	}
}

type stubMeasurer struct {
	heights map[resume.BlockKind]float64
	failOn  resume.BlockKind
	calls   int
}

func (s *stubMeasurer) MeasureBlockHeight(b resume.Block, _ layout.Measurements) (float64, error) {
	s.calls++
	if b.Kind == s.failOn {
		return 0, errors.New("no layout surface")
	}
	return s.heights[b.Kind], nil
}

func TestEstimateAllUsesInjectedMeasurer(t *testing.T) {
	blocks := resume.Flatten(resume.Default().Content)
	stub := &stubMeasurer{heights: map[resume.BlockKind]float64{
		resume.KindHeader: 10, resume.KindSectionTitle: 5,
		resume.KindSummary: 7, resume.KindJob: 9, resume.KindEducation: 3, resume.KindSkills: 4,
	}}
	got, src := New(stub, nil).EstimateAll(blocks, measurements())
	if src != SourceMeasured {
		t.Fatalf("expected measured source, got %s", src)
	}
	if len(got) != len(blocks) || got[0].Px != 10 {
		t.Fatalf("unexpected estimates %+v", got)
	}
}

func TestEstimateAllFallsBackForWholeRun(t *testing.T) {
	blocks := resume.Flatten(resume.Default().Content)
	m := measurements()
	stub := &stubMeasurer{heights: map[resume.BlockKind]float64{resume.KindHeader: 1}, failOn: resume.KindSkills}

	got, src := New(stub, nil).EstimateAll(blocks, m)
	if src != SourceHeuristic {
		t.Fatalf("expected heuristic source, got %s", src)
	}
	for i, b := range blocks {
		if got[i].Px != HeuristicHeight(b, m) {
			t.Fatalf("block %d mixes measurers: %v", i, got[i].Px)
		}
	}
}

type constMeasurer float64

func (c constMeasurer) MeasureBlockHeight(resume.Block, layout.Measurements) (float64, error) {
	return float64(c), nil
}

func TestEstimateAllRejectsUnusableHeights(t *testing.T) {
	blocks := []resume.Block{resume.HeaderBlock(resume.PersonalInfo{})}
	for _, bad := range []float64{-1, math.NaN(), math.Inf(1)} {
		if _, src := New(constMeasurer(bad), nil).EstimateAll(blocks, measurements()); src != SourceHeuristic {
			t.Fatalf("height %v should have triggered fallback", bad)
		}
	}
}

func TestEstimateAllDefaultsToHeuristic(t *testing.T) {
	blocks := []resume.Block{resume.SectionTitleBlock("Education")}
	for _, e := range []*Estimator{nil, New(nil, nil), New(Heuristic{}, nil)} {
		got, src := e.EstimateAll(blocks, measurements())
		if src != SourceHeuristic || got[0].Px != 30 {
			t.Fatalf("unexpected %v %v", got, src)
		}
	}
}
