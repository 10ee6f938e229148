package units

import (
	"fmt"
	"strings"
)

// Screen and typographic resolution. The preview and the exported PDF must
// share this ratio or they drift apart visually.
const (
	DPI           = 96.0
	PointsPerInch = 72.0
)

// Conversion constants between pt and mm, used by the canvas backend.
const (
	PtToMm = 25.4 / PointsPerInch
	MmToPt = PointsPerInch / 25.4
)

// PointsToPixels converts typographic points to CSS pixels at 96 DPI.
func PointsToPixels(pt float64) float64 { return pt * DPI / PointsPerInch }

// PixelsToPoints is the exact inverse of PointsToPixels.
func PixelsToPoints(px float64) float64 { return px * PointsPerInch / DPI }

func PointsToMillimeters(pt float64) float64 { return pt * PtToMm }
func MillimetersToPoints(mm float64) float64 { return mm * MmToPt }

// PageSize names a supported paper format. The string value is passed
// unchanged to the PDF renderer and to CSS @page rules.
type PageSize string

const (
	A4     PageSize = "A4"
	Letter PageSize = "Letter"
)

type dimensions struct {
	widthPt  float64
	heightPt float64
}

var pageSizes = map[PageSize]dimensions{
	A4:     {widthPt: 595.28, heightPt: 841.89},
	Letter: {widthPt: 612, heightPt: 792},
}

// Dimensions returns the page width and height in points.
func Dimensions(size PageSize) (widthPt, heightPt float64, ok bool) {
	d, ok := pageSizes[size]
	return d.widthPt, d.heightPt, ok
}

// PaperInches returns the paper size in inches, as expected by the
// Chrome DevTools print call.
func PaperInches(size PageSize) (width, height float64, ok bool) {
	w, h, ok := Dimensions(size)
	if !ok {
		return 0, 0, false
	}
	return w / PointsPerInch, h / PointsPerInch, true
}

// ParsePageSize accepts page size names case-insensitively.
func ParsePageSize(value string) (PageSize, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "a4":
		return A4, nil
	case "letter":
		return Letter, nil
	default:
		return "", fmt.Errorf("unsupported page size %q", value)
	}
}

// Valid reports whether the page size is one of the supported formats.
func (s PageSize) Valid() bool {
	_, ok := pageSizes[s]
	return ok
}
