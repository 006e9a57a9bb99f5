package sheet

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
)

func TestEncodePNGDensity(t *testing.T) {
	img := imaging.New(32, 16, color.NRGBA{B: 255, A: 255})

	var buf bytes.Buffer
	if err := EncodePNG(&buf, img, 300); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	data := buf.Bytes()

	// pHYs is spliced directly after IHDR: signature (8) + IHDR (25).
	const at = 33
	if len(data) < at+21 {
		t.Fatalf("output too short: %d bytes", len(data))
	}
	if got := binary.BigEndian.Uint32(data[at : at+4]); got != 9 {
		t.Errorf("pHYs length = %d, want 9", got)
	}
	if got := string(data[at+4 : at+8]); got != "pHYs" {
		t.Fatalf("chunk type = %q, want pHYs", got)
	}
	// 300 DPI is 11811 pixels per metre.
	if got := binary.BigEndian.Uint32(data[at+8 : at+12]); got != 11811 {
		t.Errorf("x density = %d px/m, want 11811", got)
	}
	if got := binary.BigEndian.Uint32(data[at+12 : at+16]); got != 11811 {
		t.Errorf("y density = %d px/m, want 11811", got)
	}
	if data[at+16] != 1 {
		t.Errorf("unit = %d, want 1 (metre)", data[at+16])
	}

	// The spliced output must still be a valid PNG.
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Errorf("decoded = %dx%d, want 32x16", b.Dx(), b.Dy())
	}
}

func TestEncodePNGNoDensity(t *testing.T) {
	img := imaging.New(8, 8, color.NRGBA{A: 255})

	var buf bytes.Buffer
	if err := EncodePNG(&buf, img, 0); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	if bytes.Contains(buf.Bytes(), []byte("pHYs")) {
		t.Error("dpi=0 output contains a pHYs chunk")
	}
	if _, err := png.Decode(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
}
