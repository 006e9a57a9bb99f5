package sheet

import (
	"image"
	"math"

	"github.com/printworks/sheetpress/pkg/errors"
)

// Layout is the computed geometry for one sheet. All dimensions are pixels.
// Layout is a plain value; it can be serialized as JSON for inspection.
type Layout struct {
	// PageWidth and PageHeight are the full page dimensions.
	PageWidth  int `json:"page_width"`
	PageHeight int `json:"page_height"`

	// Margin is the border inset on all four sides.
	Margin int `json:"margin"`

	// GridSize is the side length of the square grid; GridSize² copies
	// are placed.
	GridSize int `json:"grid_size"`

	// CellWidth and CellHeight are the dimensions of one grid cell.
	CellWidth  int `json:"cell_width"`
	CellHeight int `json:"cell_height"`

	// ImageWidth and ImageHeight are the resized source dimensions. At
	// least one matches the corresponding cell dimension; neither
	// exceeds it.
	ImageWidth  int `json:"image_width"`
	ImageHeight int `json:"image_height"`

	// Placements holds the top-left pixel offset for each copy in
	// row-major order.
	Placements []image.Point `json:"placements"`
}

// Copies returns the number of copies actually placed on the sheet.
func (l Layout) Copies() int {
	return len(l.Placements)
}

// Plan computes the sheet geometry for a source image of the given pixel
// dimensions. It validates cfg first, so a Plan call on an invalid
// configuration fails with INVALID_CONFIG rather than dividing by a zero
// grid size.
//
// The arithmetic deliberately truncates: page and margin pixels truncate the
// inch-to-pixel product, cells divide the printable area with floor division
// (any residual is absorbed past the last row and column), and centering
// offsets bias one pixel toward the top-left when the difference is odd.
func Plan(width, height int, cfg Config) (Layout, error) {
	if err := cfg.Validate(); err != nil {
		return Layout{}, err
	}
	if width < 1 || height < 1 {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "source image has no pixels (%dx%d)", width, height)
	}

	pageW := int(cfg.PageWidth * cfg.DPI)
	pageH := int(cfg.PageHeight * cfg.DPI)
	margin := int(cfg.Margin * cfg.DPI)
	gridN := int(math.Sqrt(float64(cfg.Copies)))

	availW := pageW - 2*margin
	availH := pageH - 2*margin
	cellW := availW / gridN
	cellH := availH / gridN
	if cellW < 1 || cellH < 1 {
		return Layout{}, errors.New(errors.ErrCodeInvalidConfig,
			"grid of %d does not fit: cells would be %dx%d px", gridN, cellW, cellH)
	}

	// Fit the image inside a cell, preserving aspect ratio and touching at
	// least one cell edge.
	imgAspect := float64(width) / float64(height)
	cellAspect := float64(cellW) / float64(cellH)
	var imgW, imgH int
	if imgAspect > cellAspect {
		imgW = cellW
		imgH = int(float64(cellW) / imgAspect)
	} else {
		imgH = cellH
		imgW = int(float64(cellH) * imgAspect)
	}
	if imgW < 1 {
		imgW = 1
	}
	if imgH < 1 {
		imgH = 1
	}

	placements := make([]image.Point, 0, gridN*gridN)
	for row := 0; row < gridN; row++ {
		for col := 0; col < gridN; col++ {
			placements = append(placements, image.Point{
				X: margin + col*cellW + (cellW-imgW)/2,
				Y: margin + row*cellH + (cellH-imgH)/2,
			})
		}
	}

	return Layout{
		PageWidth:   pageW,
		PageHeight:  pageH,
		Margin:      margin,
		GridSize:    gridN,
		CellWidth:   cellW,
		CellHeight:  cellH,
		ImageWidth:  imgW,
		ImageHeight: imgH,
		Placements:  placements,
	}, nil
}
