package layout

import (
	"errors"
	"fmt"
	"math"

	"resumePress/internal/resume"
	"resumePress/internal/units"
)

var (
	// ErrContentArea means the margins leave no positive content area.
	ErrContentArea = errors.New("margins exceed page dimensions")
	// ErrInvalidFormat covers every other unusable format value.
	ErrInvalidFormat = errors.New("invalid format")
)

// ConfigError names the offending format field.
type ConfigError struct {
	Field  string
	Reason string
	kind   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.kind, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.kind }

func invalid(field, reason string) *ConfigError {
	return &ConfigError{Field: field, Reason: reason, kind: ErrInvalidFormat}
}

// Check rejects a format before any estimation or pagination runs against
// it. It returns nil or a *ConfigError.
func Check(f resume.Format) error {
	if !f.PageSize.Valid() {
		return invalid("pageSize", fmt.Sprintf("unsupported page size %q", f.PageSize))
	}
	if !positive(f.FontSize) {
		return invalid("fontSize", "must be positive")
	}
	if !positive(f.LineHeight) {
		return invalid("lineHeight", "must be positive")
	}

	nonNegative := []struct {
		field string
		v     float64
	}{
		{"margins.top", f.Margins.Top},
		{"margins.right", f.Margins.Right},
		{"margins.bottom", f.Margins.Bottom},
		{"margins.left", f.Margins.Left},
		{"sectionSpacing", f.SectionSpacing},
		{"itemSpacing", f.ItemSpacing},
	}
	for _, n := range nonNegative {
		if n.v < 0 || math.IsNaN(n.v) || math.IsInf(n.v, 0) {
			return invalid(n.field, "must be a non-negative number")
		}
	}

	w, h, _ := units.Dimensions(f.PageSize)
	if f.Margins.Left+f.Margins.Right >= w {
		return &ConfigError{
			Field:  "margins",
			Reason: fmt.Sprintf("left+right %.2fpt leaves no content width on %s (%.2fpt)", f.Margins.Left+f.Margins.Right, f.PageSize, w),
			kind:   ErrContentArea,
		}
	}
	if f.Margins.Top+f.Margins.Bottom >= h {
		return &ConfigError{
			Field:  "margins",
			Reason: fmt.Sprintf("top+bottom %.2fpt leaves no content height on %s (%.2fpt)", f.Margins.Top+f.Margins.Bottom, f.PageSize, h),
			kind:   ErrContentArea,
		}
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
