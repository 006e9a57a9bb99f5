package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/printworks/sheetpress/pkg/batch"
	"github.com/printworks/sheetpress/pkg/errors"
	"github.com/printworks/sheetpress/pkg/sheet"
)

// sheetOpts holds the command-line flags for the sheet command.
type sheetOpts struct {
	output  string // output file path
	copies  int    // requested copies per sheet
	noCache bool   // disable the render cache
	refresh bool   // recompute even on cache hits
	config  string // explicit config file path
}

// sheetCommand creates the sheet command for rendering a single image.
// Without --output the sheet lands next to the source as <name>_sheet.png.
func (c *CLI) sheetCommand() *cobra.Command {
	opts := sheetOpts{copies: sheet.DefaultCopies}

	cmd := &cobra.Command{
		Use:   "sheet [image]",
		Short: "Render a print sheet for a single image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(opts.config)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("copies") {
				cfg.Copies = opts.copies
			}
			return c.runSheet(cmd, args[0], cfg, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <image>_sheet.png beside the source)")
	cmd.Flags().IntVarP(&opts.copies, "copies", "n", opts.copies, "copies per sheet (a square grid of floor(sqrt(n))² is placed)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute the sheet even when cached")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default: $XDG_CONFIG_HOME/sheetpress/config.toml)")

	return cmd
}

func (c *CLI) runSheet(cmd *cobra.Command, path string, cfg sheet.Config, opts *sheetOpts) error {
	if !batch.IsImageFile(path) {
		return errors.New(errors.ErrCodeInvalidInput, "%s is not a supported image file", path)
	}

	outPath := opts.output
	if outPath == "" {
		outPath = filepath.Join(filepath.Dir(path), batch.OutputName(path))
	}

	runner := batch.NewRunner(cfg, newCache(opts.noCache), c.Logger, opts.refresh)

	sp := newSpinner(cmd.Context(), "Rendering sheet")
	sp.Start()
	err := runner.ProcessFile(cmd.Context(), path, outPath)
	sp.Stop()
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}

	printSuccess("Created sheet")
	printFile(outPath)
	return nil
}
