package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/gridtable/canvas"
	"github.com/tsawler/gridtable/model"
)

// NewMoveCommand creates the move command.
func NewMoveCommand() *cobra.Command {
	var (
		tableID  string
		kind     string
		index    int
		pos      float64
		relayout bool
	)

	cmd := &cobra.Command{
		Use:   "move <scene>",
		Short: "Move a table divider",
		Long: `Move one divider of a table to a new coordinate, the way dragging it
on the canvas would. A row divider gets a new y, a column divider a new x.
Pass --relayout to fit the table to the new position in the same run.`,
		Example: `  # Make the first row taller
  gridtable move drawing.excalidraw --kind row --index 1 --pos 90 --relayout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var partKind model.PartKind
			switch kind {
			case "row":
				partKind = model.PartRowDivider
			case "col":
				partKind = model.PartColDivider
			default:
				return fmt.Errorf("invalid --kind %q (want row or col)", kind)
			}
			return runMove(cmd, args[0], tableID, partKind, index, pos, relayout)
		},
	}

	cmd.Flags().StringVar(&tableID, "table", "", "table ID (default: the only table)")
	cmd.Flags().StringVar(&kind, "kind", "row", "divider kind (row|col)")
	cmd.Flags().IntVar(&index, "index", 0, "divider boundary index")
	cmd.Flags().Float64Var(&pos, "pos", 0, "new coordinate")
	cmd.Flags().BoolVar(&relayout, "relayout", false, "relayout the table after moving")
	_ = cmd.MarkFlagRequired("pos")
	_ = cmd.RegisterFlagCompletionFunc("kind", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"row", "col"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func runMove(cmd *cobra.Command, path, tableID string, kind model.PartKind, index int, pos float64, relayout bool) error {
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

	if err := canvas.MoveDivider(cmd.Context(), scene, tableID, kind, index, pos); err != nil {
		return err
	}
	if relayout {
		outcome, err := tool.Relayout(cmd.Context(), tableID)
		if err != nil {
			return err
		}
		printOutcome(cmd, outcome)
	}

	_, err = saveScene(scene, path)
	return err
}
