package batch

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/printworks/sheetpress/pkg/cache"
	"github.com/printworks/sheetpress/pkg/errors"
	"github.com/printworks/sheetpress/pkg/sheet"
)

// testConfig is a small page so tests stay fast: 100×100 px, 2×2 grid.
func testConfig() sheet.Config {
	return sheet.Config{PageWidth: 2, PageHeight: 2, DPI: 50, Margin: 0.25, Copies: 4}
}

// writeSource saves a small solid image under dir with the given name.
// The format follows the extension.
func writeSource(t *testing.T, dir, name string) {
	t.Helper()
	img := imaging.New(40, 20, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	if err := imaging.Save(img, filepath.Join(dir, name)); err != nil {
		t.Fatalf("save %s: %v", name, err)
	}
}

func TestProcess(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "out")

	writeSource(t, inputDir, "alpha.png")
	writeSource(t, inputDir, "beta.jpg")
	// Corrupt file with an image extension: attempted, fails, batch continues.
	if err := os.WriteFile(filepath.Join(inputDir, "broken.gif"), []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	// Wrong extension: never handed to the decoder, not counted.
	if err := os.WriteFile(filepath.Join(inputDir, "notes.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(testConfig(), nil, nil, false)
	s, err := r.Process(context.Background(), inputDir, outputDir)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if s.Attempted != 3 {
		t.Errorf("Attempted = %d, want 3", s.Attempted)
	}
	if s.Succeeded != 2 {
		t.Errorf("Succeeded = %d, want 2", s.Succeeded)
	}
	if s.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", s.Failed())
	}

	for _, name := range []string{"alpha_sheet.png", "beta_sheet.png"} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
	for _, name := range []string{"broken_sheet.png", "notes_sheet.png"} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err == nil {
			t.Errorf("unexpected output %s", name)
		}
	}

	// Outputs must have the configured page dimensions.
	out, err := imaging.Open(filepath.Join(outputDir, "alpha_sheet.png"))
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	if b := out.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Errorf("output = %dx%d, want 100x100", b.Dx(), b.Dy())
	}
}

func TestProcessInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Copies = 0

	r := NewRunner(cfg, nil, nil, false)
	s, err := r.Process(context.Background(), t.TempDir(), t.TempDir())
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("Process() error = %v, want code %v", err, errors.ErrCodeInvalidConfig)
	}
	if s.Attempted != 0 {
		t.Errorf("Attempted = %d, want 0 (config fails before any file)", s.Attempted)
	}
}

func TestProcessMissingInputDir(t *testing.T) {
	r := NewRunner(testConfig(), nil, nil, false)
	_, err := r.Process(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"), t.TempDir())
	if !errors.Is(err, errors.ErrCodeFilesystem) {
		t.Fatalf("Process() error = %v, want code %v", err, errors.ErrCodeFilesystem)
	}
}

func TestProcessCached(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "out")
	writeSource(t, inputDir, "card.png")

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	r := NewRunner(testConfig(), c, nil, false)
	if _, err := r.Process(context.Background(), inputDir, outputDir); err != nil {
		t.Fatalf("first Process() error = %v", err)
	}
	first, err := os.ReadFile(filepath.Join(outputDir, "card_sheet.png"))
	if err != nil {
		t.Fatal(err)
	}

	// Second run hits the cache and re-emits identical bytes.
	s, err := r.Process(context.Background(), inputDir, outputDir)
	if err != nil {
		t.Fatalf("second Process() error = %v", err)
	}
	if s.Succeeded != 1 {
		t.Errorf("Succeeded = %d, want 1", s.Succeeded)
	}
	second, err := os.ReadFile(filepath.Join(outputDir, "card_sheet.png"))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("cached run produced different bytes")
	}
}

func TestProcessCanceled(t *testing.T) {
	inputDir := t.TempDir()
	writeSource(t, inputDir, "card.png")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(testConfig(), nil, nil, false)
	if _, err := r.Process(ctx, inputDir, t.TempDir()); err != context.Canceled {
		t.Errorf("Process() error = %v, want context.Canceled", err)
	}
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"scan.TIFF", true},
		{"pixel.bmp", true},
		{"anim.gif", true},
		{"card.png", true},
		{"notes.txt", false},
		{"archive.png.zip", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		if got := IsImageFile(tt.name); got != tt.want {
			t.Errorf("IsImageFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"card.png", "card_sheet.png"},
		{"photo.JPEG", "photo_sheet.png"},
		{"dir/nested.gif", "nested_sheet.png"},
		{"dotted.name.jpg", "dotted.name_sheet.png"},
	}

	for _, tt := range tests {
		if got := OutputName(tt.in); got != tt.want {
			t.Errorf("OutputName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
