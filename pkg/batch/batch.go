// Package batch renders one print sheet per image file in a directory.
//
// The batch is a straight fold over the directory listing with a per-file
// error boundary: a file that fails to decode or render is logged and
// skipped, and the remaining files still run. Only errors that doom the
// whole batch - an invalid configuration, an unreadable input directory, an
// output directory that cannot be created - abort it.
package batch

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/printworks/sheetpress/pkg/cache"
	"github.com/printworks/sheetpress/pkg/errors"
	"github.com/printworks/sheetpress/pkg/sheet"
)

// imageExtensions is the set of file extensions handed to the decoder.
// Anything else is skipped without being counted as an attempt.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
}

// Summary reports the outcome of a batch run.
type Summary struct {
	// Attempted is the number of image files handed to the renderer.
	Attempted int

	// Succeeded is the number of sheets written.
	Succeeded int
}

// Failed returns the number of files that were attempted but not written.
func (s Summary) Failed() int {
	return s.Attempted - s.Succeeded
}

// Runner processes directories of images into sheets.
type Runner struct {
	cfg     sheet.Config
	cache   cache.Cache
	logger  *log.Logger
	refresh bool
}

// NewRunner creates a batch runner. A nil cache disables caching and a nil
// logger discards output. When refresh is true, cached renders are ignored
// and every sheet is recomputed.
func NewRunner(cfg sheet.Config, c cache.Cache, logger *log.Logger, refresh bool) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{cfg: cfg, cache: c, logger: logger, refresh: refresh}
}

// Process renders a sheet for every image file directly inside inputDir,
// writing results into outputDir (created if absent). Per-file failures are
// logged and skipped; the returned Summary counts attempts and successes.
//
// The configuration is validated once up front so a bad copy count fails the
// batch before any file is touched rather than once per file.
func (r *Runner) Process(ctx context.Context, inputDir, outputDir string) (Summary, error) {
	var s Summary

	if err := r.cfg.Validate(); err != nil {
		return s, err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return s, errors.Wrap(errors.ErrCodeFilesystem, err, "create output directory %s", outputDir)
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return s, errors.Wrap(errors.ErrCodeFilesystem, err, "read input directory %s", inputDir)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		if entry.IsDir() || !IsImageFile(entry.Name()) {
			continue
		}

		path := filepath.Join(inputDir, entry.Name())
		outPath := filepath.Join(outputDir, OutputName(entry.Name()))

		s.Attempted++
		if err := r.ProcessFile(ctx, path, outPath); err != nil {
			r.logger.Errorf("Failed to process %s: %v", path, err)
			continue
		}
		s.Succeeded++
		r.logger.Infof("Created sheet %s", outPath)
	}

	return s, nil
}

// ProcessFile renders a single source image into a sheet at outPath.
// The render cache is probed with the hash of the file content plus the
// layout configuration; on a hit the cached PNG is written as-is.
func (r *Runner) ProcessFile(ctx context.Context, path, outPath string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeImageLoad, err, "read %s", path)
	}

	key := cache.SheetKey(cache.Hash(data), r.keyOpts())
	if !r.refresh {
		if cached, ok, err := r.cache.Get(ctx, key); err == nil && ok {
			r.logger.Debugf("Cache hit for %s", path)
			return writeFile(outPath, cached)
		}
	}

	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(errors.ErrCodeImageLoad, err, "decode %s", path)
	}

	page, l, err := sheet.Render(src, r.cfg)
	if err != nil {
		return err
	}
	r.logger.Debugf("Planned %s: %dx%d grid, image %dx%d px",
		filepath.Base(path), l.GridSize, l.GridSize, l.ImageWidth, l.ImageHeight)

	var buf bytes.Buffer
	if err := sheet.EncodePNG(&buf, page, r.cfg.DPI); err != nil {
		return err
	}

	// A cache write failure only costs the next run a recompute.
	if err := r.cache.Set(ctx, key, buf.Bytes()); err != nil {
		r.logger.Debugf("Cache store failed for %s: %v", path, err)
	}

	return writeFile(outPath, buf.Bytes())
}

func (r *Runner) keyOpts() cache.SheetKeyOpts {
	return cache.SheetKeyOpts{
		PageWidth:  r.cfg.PageWidth,
		PageHeight: r.cfg.PageHeight,
		DPI:        r.cfg.DPI,
		Margin:     r.cfg.Margin,
		Copies:     r.cfg.Copies,
	}
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "write %s", path)
	}
	return nil
}

// IsImageFile reports whether name has one of the supported image
// extensions, case-insensitively.
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// OutputName derives the sheet file name for a source file:
// the base name without extension plus "_sheet.png". Output is always PNG
// regardless of the source format.
func OutputName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_sheet.png"
}
