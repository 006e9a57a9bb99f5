package cli

import (
	"encoding/json"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/printworks/sheetpress/pkg/errors"
	"github.com/printworks/sheetpress/pkg/sheet"
)

// planOpts holds the command-line flags for the plan command.
type planOpts struct {
	copies   int    // requested copies per sheet
	jsonOut  bool   // emit the layout as JSON
	config   string // explicit config file path
	allCells bool   // list every placement coordinate
}

// planCommand creates the plan command: a debug tool that prints the
// computed sheet geometry for an image without rendering anything.
func (c *CLI) planCommand() *cobra.Command {
	opts := planOpts{copies: sheet.DefaultCopies}

	cmd := &cobra.Command{
		Use:   "plan [image]",
		Short: "Print the computed sheet geometry without rendering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(opts.config)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("copies") {
				cfg.Copies = opts.copies
			}
			return runPlan(args[0], cfg, &opts)
		},
	}

	cmd.Flags().IntVarP(&opts.copies, "copies", "n", opts.copies, "copies per sheet (a square grid of floor(sqrt(n))² is placed)")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "emit the layout as JSON")
	cmd.Flags().BoolVar(&opts.allCells, "placements", false, "list every placement coordinate")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default: $XDG_CONFIG_HOME/sheetpress/config.toml)")

	return cmd
}

func runPlan(path string, cfg sheet.Config, opts *planOpts) error {
	img, err := imaging.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeImageLoad, err, "open %s", path)
	}
	b := img.Bounds()

	l, err := sheet.Plan(b.Dx(), b.Dy(), cfg)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		data, err := json.MarshalIndent(l, "", "  ")
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "marshal layout")
		}
		fmt.Println(string(data))
		return nil
	}

	printKeyValue("source", fmt.Sprintf("%dx%d px", b.Dx(), b.Dy()))
	printKeyValue("page", fmt.Sprintf("%dx%d px (%gx%g in @ %g dpi)",
		l.PageWidth, l.PageHeight, cfg.PageWidth, cfg.PageHeight, cfg.DPI))
	printKeyValue("margin", fmt.Sprintf("%d px", l.Margin))
	printKeyValue("grid", fmt.Sprintf("%dx%d", l.GridSize, l.GridSize))
	printKeyValue("cell", fmt.Sprintf("%dx%d px", l.CellWidth, l.CellHeight))
	printKeyValue("image", fmt.Sprintf("%dx%d px", l.ImageWidth, l.ImageHeight))
	printKeyValue("copies", fmt.Sprintf("%d placed of %d requested", l.Copies(), cfg.Copies))

	if opts.allCells {
		for i, p := range l.Placements {
			printDetail("copy %d at (%d, %d)", i+1, p.X, p.Y)
		}
	}
	return nil
}
