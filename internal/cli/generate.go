package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/printworks/sheetpress/pkg/batch"
	"github.com/printworks/sheetpress/pkg/sheet"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	outputDir string // output directory for rendered sheets
	copies    int    // requested copies per sheet
	noCache   bool   // disable the render cache
	refresh   bool   // recompute even on cache hits
	config    string // explicit config file path
}

// generateCommand creates the generate command: the batch entry point that
// renders a sheet for every image file directly inside a directory.
//
// Per-file failures are logged and do not abort the batch or change the exit
// code; the command only fails on global errors (bad configuration,
// unreadable input directory).
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{
		outputDir: "output",
		copies:    sheet.DefaultCopies,
	}

	cmd := &cobra.Command{
		Use:   "generate [input-dir]",
		Short: "Render a print sheet for every image in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, fileOutputDir, err := loadConfig(opts.config)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("copies") {
				cfg.Copies = opts.copies
			}
			outputDir := opts.outputDir
			if !cmd.Flags().Changed("output-dir") && fileOutputDir != "" {
				outputDir = fileOutputDir
			}
			return c.runGenerate(cmd, args[0], outputDir, cfg, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", opts.outputDir, "directory for rendered sheets")
	cmd.Flags().IntVarP(&opts.copies, "copies", "n", opts.copies, "copies per sheet (a square grid of floor(sqrt(n))² is placed)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute sheets even when cached")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default: $XDG_CONFIG_HOME/sheetpress/config.toml)")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, inputDir, outputDir string, cfg sheet.Config, opts *generateOpts) error {
	c.Logger.Infof("Generating sheets from %s", inputDir)
	c.Logger.Debugf("Page %gx%g in at %g dpi, margin %g in, %d copies",
		cfg.PageWidth, cfg.PageHeight, cfg.DPI, cfg.Margin, cfg.Copies)

	runner := batch.NewRunner(cfg, newCache(opts.noCache), c.Logger, opts.refresh)
	p := newProgress(c.Logger)

	summary, err := runner.Process(cmd.Context(), inputDir, outputDir)
	if err != nil {
		return err
	}

	p.done(fmt.Sprintf("Processed %d images", summary.Succeeded))
	printSummary(summary.Succeeded, summary.Attempted)
	return nil
}
