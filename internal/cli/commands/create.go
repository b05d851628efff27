package commands

import (
	"github.com/spf13/cobra"

	"github.com/tsawler/gridtable/config"
)

// addTableFlags registers the generation settings. Only flags the user sets
// override the config file.
func addTableFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("rows", config.DefaultRows, "number of rows")
	f.Int("cols", config.DefaultCols, "number of columns")
	f.Float64("cell-width", config.DefaultCellWidth, "cell width")
	f.Float64("cell-height", config.DefaultCellHeight, "cell height")
	f.String("col-head", config.DefaultColHeaderColor, "column header color (palette name or #hex)")
	f.String("row-head", config.DefaultRowHeaderColor, "row header color (palette name or #hex)")
	f.Float64("outer-border-width", config.DefaultOuterBorderWidth, "outer border stroke width")
	f.Float64("inner-grid-width", config.DefaultInnerGridWidth, "inner grid stroke width")
	f.Float64("origin-x", 0, "x of the table's top-left corner")
	f.Float64("origin-y", 0, "y of the table's top-left corner")
	f.Float64("font-size", config.DefaultFontSize, "label font size")
	f.Int("font-family", config.DefaultFontFamily, "label font family (1 hand-drawn, 2 normal, 3 code)")

	_ = cmd.RegisterFlagCompletionFunc("col-head", paletteCompletion)
	_ = cmd.RegisterFlagCompletionFunc("row-head", paletteCompletion)
}

func paletteCompletion(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return config.PaletteNames(), cobra.ShellCompDirectiveNoFileComp
}

// NewCreateCommand creates the create command.
func NewCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <scene>",
		Short: "Add a new table to a scene",
		Long: `Generate a new table and add it to the scene file.

The file is created when it does not exist. Settings come from the config
file, GRIDTABLE_ environment variables and the flags below.`,
		Example: `  # Create a 5x5 table with default settings
  gridtable create drawing.excalidraw

  # Create a 3x4 table with wide cells and no row header
  gridtable create drawing.excalidraw --rows 3 --cols 4 --cell-width 220 --row-head Transparent`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args[0])
		},
	}

	addTableFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, path string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	scene, err := loadScene(path, true)
	if err != nil {
		return err
	}
	outcome, err := cmdCtx.Tool(scene).Create(cmd.Context())
	if err != nil {
		return err
	}
	if _, err := saveScene(scene, path); err != nil {
		return err
	}

	printOutcome(cmd, outcome)
	return nil
}
