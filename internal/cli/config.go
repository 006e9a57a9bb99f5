package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/printworks/sheetpress/pkg/errors"
	"github.com/printworks/sheetpress/pkg/sheet"
)

// fileConfig mirrors the config file schema. Pointer fields distinguish
// "absent" from an explicit zero, so the file only overrides what it sets.
//
// Page geometry is deliberately configured here and not via flags: the CLI
// surface stays minimal while the margin, page size, and DPI remain
// adjustable without recompiling.
//
//	# ~/.config/sheetpress/config.toml
//	page_width = 8.5
//	page_height = 11.0
//	dpi = 300.0
//	margin = 0.25
//	copies = 9
//	output_dir = "sheets"
type fileConfig struct {
	PageWidth  *float64 `toml:"page_width"`
	PageHeight *float64 `toml:"page_height"`
	DPI        *float64 `toml:"dpi"`
	Margin     *float64 `toml:"margin"`
	Copies     *int     `toml:"copies"`
	OutputDir  string   `toml:"output_dir"`
}

// loadConfig resolves the layout configuration: compiled defaults overridden
// by the config file when one is present. An explicit path (--config) must
// exist; the default XDG location is probed and silently skipped when absent.
// The second return is the output directory from the file, if any.
func loadConfig(explicitPath string) (sheet.Config, string, error) {
	cfg := sheet.Default()

	path := explicitPath
	if path == "" {
		p, err := defaultConfigPath()
		if err != nil {
			return cfg, "", nil
		}
		if _, err := os.Stat(p); err != nil {
			return cfg, "", nil
		}
		path = p
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return cfg, "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}

	if fc.PageWidth != nil {
		cfg.PageWidth = *fc.PageWidth
	}
	if fc.PageHeight != nil {
		cfg.PageHeight = *fc.PageHeight
	}
	if fc.DPI != nil {
		cfg.DPI = *fc.DPI
	}
	if fc.Margin != nil {
		cfg.Margin = *fc.Margin
	}
	if fc.Copies != nil {
		cfg.Copies = *fc.Copies
	}

	return cfg, fc.OutputDir, nil
}
