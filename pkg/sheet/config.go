package sheet

import (
	"github.com/printworks/sheetpress/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Batch Runner
// =============================================================================

const (
	// DefaultPageWidth is the page width in inches (US letter).
	DefaultPageWidth = 8.5

	// DefaultPageHeight is the page height in inches (US letter).
	DefaultPageHeight = 11.0

	// DefaultDPI is the output resolution in dots per inch.
	DefaultDPI = 300.0

	// DefaultMargin is the border inset in inches, applied on all four sides.
	DefaultMargin = 0.25

	// DefaultCopies is the requested number of copies per sheet.
	DefaultCopies = 9
)

// Config holds the geometry parameters for a sheet. The zero value is not
// usable; start from Default and override fields as needed.
type Config struct {
	// PageWidth and PageHeight are the physical page dimensions in inches.
	PageWidth  float64 `json:"page_width" toml:"page_width"`
	PageHeight float64 `json:"page_height" toml:"page_height"`

	// DPI converts physical dimensions to pixels and is recorded in the
	// output PNG as density metadata.
	DPI float64 `json:"dpi" toml:"dpi"`

	// Margin is the border inset in inches on all four sides. No placement
	// ever overlaps the margin.
	Margin float64 `json:"margin" toml:"margin"`

	// Copies is the requested number of copies per sheet. The placed count
	// is floor(sqrt(Copies))²; see the package documentation.
	Copies int `json:"copies" toml:"copies"`
}

// Default returns the reference configuration: 8.5×11 in, 300 DPI,
// 0.25 in margins, 9 copies.
func Default() Config {
	return Config{
		PageWidth:  DefaultPageWidth,
		PageHeight: DefaultPageHeight,
		DPI:        DefaultDPI,
		Margin:     DefaultMargin,
		Copies:     DefaultCopies,
	}
}

// Validate checks that the configuration describes a usable page.
// It returns an INVALID_CONFIG error for a copy count below one, non-positive
// page dimensions or DPI, a negative margin, or margins that leave no
// printable area. Validate is cheap and safe to call before every batch so a
// bad global configuration surfaces once, not per file.
func (c Config) Validate() error {
	if c.Copies < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "copies must be >= 1, got %d", c.Copies)
	}
	if c.PageWidth <= 0 || c.PageHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "page size must be positive, got %gx%g in", c.PageWidth, c.PageHeight)
	}
	if c.DPI <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "dpi must be positive, got %g", c.DPI)
	}
	if c.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margin must be >= 0, got %g in", c.Margin)
	}
	if 2*c.Margin >= c.PageWidth || 2*c.Margin >= c.PageHeight {
		return errors.New(errors.ErrCodeInvalidConfig, "margin %g in leaves no printable area on a %gx%g in page", c.Margin, c.PageWidth, c.PageHeight)
	}
	return nil
}
