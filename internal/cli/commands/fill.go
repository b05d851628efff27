package commands

import (
	"github.com/spf13/cobra"
)

// NewFillCommand creates the fill command.
func NewFillCommand() *cobra.Command {
	var (
		tableID  string
		row, col int
	)

	cmd := &cobra.Command{
		Use:   "fill <scene> <text>",
		Short: "Write text into a table cell",
		Long: `Set the label of one cell and re-center it. The table is relaid out in
the same write.`,
		Example: `  # Title the first data column
  gridtable fill drawing.excalidraw --row 0 --col 1 "Name"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(cmd, args[0], tableID, row, col, args[1])
		},
	}

	cmd.Flags().StringVar(&tableID, "table", "", "table ID (default: the only table)")
	cmd.Flags().IntVar(&row, "row", 0, "row index")
	cmd.Flags().IntVar(&col, "col", 0, "column index")
	return cmd
}

func runFill(cmd *cobra.Command, path, tableID string, row, col int, text string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	scene, err := loadScene(path, false)
	if err != nil {
		return err
	}
	tool := cmdCtx.Tool(scene)
	tableID, err = pickTable(cmd.Context(), tool, tableID)
	if err != nil {
		return err
	}

	outcome, err := tool.Fill(cmd.Context(), tableID, row, col, text)
	if err != nil {
		return err
	}
	if _, err := saveScene(scene, path); err != nil {
		return err
	}

	printOutcome(cmd, outcome)
	return nil
}
