// Package pipeline runs layout, estimation and pagination as one unit.
package pipeline

import (
	"fmt"

	"resumePress/internal/estimate"
	"resumePress/internal/layout"
	"resumePress/internal/metrics"
	"resumePress/internal/pagination"
	"resumePress/internal/resume"
)

// Result is a complete, fresh layout of one document.
type Result struct {
	Layout     layout.Measurements `json:"layout"`
	Pages      []pagination.Page   `json:"pages"`
	Source     estimate.Source     `json:"source"`
	BlockCount int                 `json:"block_count"`
}

// PageCount is the number of partition pages.
func (r Result) PageCount() int { return len(r.Pages) }

// Run recomputes everything from scratch. A format with an unusable
// content area is rejected before any block is measured.
func Run(doc resume.Document, est *estimate.Estimator) (Result, error) {
	if err := layout.Check(doc.Format); err != nil {
		return Result{}, fmt.Errorf("check format: %w", err)
	}

	m := layout.Calculate(doc.Format)
	blocks := resume.Flatten(doc.Content)
	heights, source := est.EstimateAll(blocks, m)
	pages := pagination.Paginate(pagination.Zip(blocks, heights), m.ContentHeightPx)

	metrics.ObservePagination(string(source), len(pages))

	return Result{
		Layout:     m,
		Pages:      pages,
		Source:     source,
		BlockCount: len(blocks),
	}, nil
}
