// Package estimate assigns a rendered height to each content block.
package estimate

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"resumePress/internal/layout"
	"resumePress/internal/resume"
	"resumePress/internal/units"
)

// Estimate is a block height in both units. Build it with FromPixels so
// the two never drift apart.
type Estimate struct {
	Px float64 `json:"height_px"`
	Pt float64 `json:"height_pt"`
}

func FromPixels(px float64) Estimate {
	return Estimate{Px: px, Pt: units.PixelsToPoints(px)}
}

// Measurer returns the rendered height of a block in pixels.
type Measurer interface {
	MeasureBlockHeight(b resume.Block, m layout.Measurements) (float64, error)
}

// Source names which measurer produced the heights of a run.
type Source string

const (
	SourceHeuristic Source = "heuristic"
	SourceMeasured  Source = "measured"
)

var errBadHeight = errors.New("measurer returned an unusable height")

// Estimator measures whole block sequences. A run uses one measurer for
// every block: if the injected measurer fails on any block the run is
// redone entirely with the heuristic.
type Estimator struct {
	measurer Measurer
	logger   *slog.Logger
}

// New returns an Estimator. A nil measurer means heuristic only.
func New(measurer Measurer, logger *slog.Logger) *Estimator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Estimator{measurer: measurer, logger: logger}
}

// EstimateAll returns one Estimate per block, in order.
func (e *Estimator) EstimateAll(blocks []resume.Block, m layout.Measurements) ([]Estimate, Source) {
	if e == nil || e.measurer == nil {
		return heuristicRun(blocks, m), SourceHeuristic
	}
	if _, ok := e.measurer.(Heuristic); ok {
		return heuristicRun(blocks, m), SourceHeuristic
	}

	out := make([]Estimate, len(blocks))
	for i, b := range blocks {
		px, err := measure(e.measurer, b, m)
		if err != nil {
			e.logger.Warn("block measurement failed, using heuristic for the whole run",
				slog.Int("block_index", i),
				slog.String("block_kind", string(b.Kind)),
				slog.Any("error", err))
			return heuristicRun(blocks, m), SourceHeuristic
		}
		out[i] = FromPixels(px)
	}
	return out, SourceMeasured
}

func measure(ms Measurer, b resume.Block, m layout.Measurements) (float64, error) {
	px, err := ms.MeasureBlockHeight(b, m)
	if err != nil {
		return 0, fmt.Errorf("measure %s block: %w", b.Kind, err)
	}
	if math.IsNaN(px) || math.IsInf(px, 0) || px < 0 {
		return 0, fmt.Errorf("measure %s block: %w: %v", b.Kind, errBadHeight, px)
	}
	return px, nil
}

func heuristicRun(blocks []resume.Block, m layout.Measurements) []Estimate {
	out := make([]Estimate, len(blocks))
	for i, b := range blocks {
		out[i] = FromPixels(HeuristicHeight(b, m))
	}
	return out
}
