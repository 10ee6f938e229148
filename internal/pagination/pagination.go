// Package pagination partitions measured blocks into fixed-height pages.
package pagination

import (
	"resumePress/internal/estimate"
	"resumePress/internal/resume"
	"resumePress/internal/units"
)

// Measured is a block with its height for the current run.
type Measured struct {
	Block  resume.Block      `json:"block"`
	Height estimate.Estimate `json:"height"`
}

// Page is one page of the partition. Number is 1-based.
type Page struct {
	Number      int        `json:"number"`
	Blocks      []Measured `json:"blocks"`
	RemainingPx float64    `json:"remaining_px"`
}

func (p Page) RemainingPt() float64 { return units.PixelsToPoints(p.RemainingPx) }

// Paginate assigns blocks to pages greedily, in order. A block that does
// not fit the remaining height starts a new page unless the current page
// is empty, so an oversized block sits alone on its page and is never
// split. Empty input yields zero pages.
func Paginate(blocks []Measured, contentHeightPx float64) []Page {
	pages := make([]Page, 0, 1)
	if len(blocks) == 0 {
		return pages
	}

	current := Page{Number: 1, RemainingPx: contentHeightPx}
	for _, b := range blocks {
		h := b.Height.Px
		if h > current.RemainingPx && len(current.Blocks) > 0 {
			pages = append(pages, current)
			current = Page{Number: current.Number + 1, RemainingPx: contentHeightPx}
		}
		current.Blocks = append(current.Blocks, b)
		current.RemainingPx = max(current.RemainingPx-h, 0)
	}
	if len(current.Blocks) > 0 {
		pages = append(pages, current)
	}
	return pages
}

// Zip pairs blocks with their estimates. The slices must be the same
// length.
func Zip(blocks []resume.Block, heights []estimate.Estimate) []Measured {
	out := make([]Measured, len(blocks))
	for i := range blocks {
		out[i] = Measured{Block: blocks[i], Height: heights[i]}
	}
	return out
}

// Totals returns the block count of each page.
func Totals(pages []Page) []int {
	out := make([]int, len(pages))
	for i, p := range pages {
		out[i] = len(p.Blocks)
	}
	return out
}
