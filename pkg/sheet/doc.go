// Package sheet computes and renders print sheets: a square grid of resized
// copies of one source image composited onto a fixed-size page.
//
// The package is split into a pure geometry step and a rendering step:
//
//  1. Plan: given source pixel dimensions and a Config, compute the page size,
//     grid shape, cell size, aspect-preserving image size, and the centered
//     placement for every cell. Plan has no side effects and never touches
//     pixel data.
//  2. Compose: resize the source once with Lanczos resampling and paste it at
//     each planned placement on a white page.
//  3. EncodePNG: serialize the page as PNG carrying the layout DPI as density
//     metadata.
//
// # Grid shape
//
// The grid is always square. For a requested copy count n, the side length is
// floor(sqrt(n)), so only floor(sqrt(n))² copies are placed; a remainder is
// silently dropped. Requesting 10 copies places 9, requesting 3 places 1.
// This is documented behavior, not an accident of rounding.
//
// # Example
//
//	cfg := sheet.Default()
//	layout, err := sheet.Plan(400, 200, cfg)
//	if err != nil {
//	    return err
//	}
//	page := sheet.Compose(src, layout)
//	err = sheet.EncodePNG(out, page, cfg.DPI)
package sheet
