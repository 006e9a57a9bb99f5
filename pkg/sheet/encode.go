package sheet

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"io"

	"github.com/printworks/sheetpress/pkg/errors"
)

// metersPerInch converts DPI to the pixels-per-metre unit used by PNG.
const metersPerInch = 0.0254

// EncodePNG writes img as PNG with a pHYs chunk recording dpi as the pixel
// density, so print dialogs see the same resolution the layout was computed
// for. A dpi of zero or less writes the image without density metadata.
//
// The encoding is deterministic: the same image and dpi always produce the
// same bytes.
func EncodePNG(w io.Writer, img image.Image, dpi float64) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return errors.Wrap(errors.ErrCodeImageEncode, err, "encode PNG")
	}
	data := buf.Bytes()

	// pHYs must precede IDAT. The stdlib encoder emits the 8-byte signature
	// followed by a 25-byte IHDR chunk, so the splice point is fixed.
	const ihdrEnd = 33
	if dpi <= 0 || len(data) < ihdrEnd {
		if _, err := w.Write(data); err != nil {
			return errors.Wrap(errors.ErrCodeFilesystem, err, "write PNG")
		}
		return nil
	}

	for _, part := range [][]byte{data[:ihdrEnd], physChunk(dpi), data[ihdrEnd:]} {
		if _, err := w.Write(part); err != nil {
			return errors.Wrap(errors.ErrCodeFilesystem, err, "write PNG")
		}
	}
	return nil
}

// physChunk builds a PNG pHYs chunk for the given density: 4-byte length,
// 4-byte type, x and y pixels per metre, unit specifier (1 = metre), CRC.
func physChunk(dpi float64) []byte {
	ppm := uint32(dpi/metersPerInch + 0.5)

	chunk := make([]byte, 21)
	binary.BigEndian.PutUint32(chunk[0:4], 9)
	copy(chunk[4:8], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:12], ppm)
	binary.BigEndian.PutUint32(chunk[12:16], ppm)
	chunk[16] = 1
	binary.BigEndian.PutUint32(chunk[17:21], crc32.ChecksumIEEE(chunk[4:17]))
	return chunk
}
