package pipeline

import (
	"errors"
	"testing"

	"resumePress/internal/estimate"
	"resumePress/internal/layout"
	"resumePress/internal/resume"
)

func TestRunDefaultDocument(t *testing.T) {
	doc := resume.Default()
	res, err := Run(doc, estimate.New(nil, nil))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Source != estimate.SourceHeuristic {
		t.Fatalf("unexpected source %s", res.Source)
	}
	if res.BlockCount != len(resume.Flatten(doc.Content)) {
		t.Fatalf("unexpected block count %d", res.BlockCount)
	}
	total := 0
	for _, p := range res.Pages {
		total += len(p.Blocks)
	}
	if total != res.BlockCount {
		t.Fatalf("pages hold %d blocks, want %d", total, res.BlockCount)
	}
	if res.Layout.PageSize != doc.Format.PageSize {
		t.Fatalf("page size not threaded through")
	}
}

type panicMeasurer struct{}

func (panicMeasurer) MeasureBlockHeight(resume.Block, layout.Measurements) (float64, error) {
	panic("measurer must not run for an invalid format")
}

func TestRunRejectsContentAreaBeforeEstimating(t *testing.T) {
	doc := resume.Default()
	doc.Format.Margins.Left = 300
	doc.Format.Margins.Right = 300

	_, err := Run(doc, estimate.New(panicMeasurer{}, nil))
	if !errors.Is(err, layout.ErrContentArea) {
		t.Fatalf("expected content area error, got %v", err)
	}
}

func TestRunIsRepeatable(t *testing.T) {
	doc := resume.Default()
	est := estimate.New(nil, nil)
	a, err := Run(doc, est)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	b, _ := Run(doc, est)
	if a.PageCount() != b.PageCount() {
		t.Fatalf("page count changed between identical runs")
	}
	for i := range a.Pages {
		if len(a.Pages[i].Blocks) != len(b.Pages[i].Blocks) || a.Pages[i].RemainingPx != b.Pages[i].RemainingPx {
			t.Fatalf("page %d differs between identical runs", i+1)
		}
	}
}

func TestRunHeaderOnlyDocument(t *testing.T) {
	doc := resume.Document{Format: resume.DefaultFormat()}
	res, err := Run(doc, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.PageCount() != 1 || len(res.Pages[0].Blocks) != 1 {
		t.Fatalf("expected one page holding the header, got %+v", res.Pages)
	}
}
