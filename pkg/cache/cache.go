// Package cache provides the render cache for sheetpress.
//
// Rendering a sheet is dominated by the Lanczos resample, which is slow for
// large sources. The batch runner therefore caches encoded sheet PNGs keyed
// by the source image content and the layout configuration: re-running a
// batch over unchanged inputs re-emits the cached bytes instead of
// recomputing them. Keys include a hash of the source bytes, so a modified
// input never hits a stale entry and entries never need to expire.
//
// Two implementations are provided: FileCache stores entries on disk under
// the user cache directory, and NullCache disables caching entirely
// (used for --no-cache and in tests).
package cache

import "context"

// Cache stores rendered sheet artifacts keyed by content hash.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value, overwriting any previous entry for key.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// SheetKeyOpts carries every layout parameter that affects rendered output.
// Two renders with equal source hashes and equal opts produce identical
// bytes, so they may share a cache entry.
type SheetKeyOpts struct {
	PageWidth  float64
	PageHeight float64
	DPI        float64
	Margin     float64
	Copies     int
}

// SheetKey generates the cache key for a rendered sheet from the source
// image content hash and the layout options.
func SheetKey(sourceHash string, opts SheetKeyOpts) string {
	return hashKey("sheet", sourceHash, opts)
}
