package sheet

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Compose renders the sheet: the source is resized once to the planned
// dimensions with Lanczos resampling, then pasted opaquely at every
// placement on a white page.
func Compose(src image.Image, l Layout) *image.NRGBA {
	resized := imaging.Resize(src, l.ImageWidth, l.ImageHeight, imaging.Lanczos)
	page := imaging.New(l.PageWidth, l.PageHeight, color.White)
	for _, pt := range l.Placements {
		page = imaging.Paste(page, resized, pt)
	}
	return page
}

// Render plans and composes in one step, deriving the source dimensions from
// the image bounds. It returns the composed page together with the layout so
// callers can report geometry.
func Render(src image.Image, cfg Config) (*image.NRGBA, Layout, error) {
	b := src.Bounds()
	l, err := Plan(b.Dx(), b.Dy(), cfg)
	if err != nil {
		return nil, Layout{}, err
	}
	return Compose(src, l), l, nil
}
