package commands

import (
	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	var selectIDs []string

	cmd := &cobra.Command{
		Use:   "run <scene>",
		Short: "Create or relayout depending on the selection",
		Long: `Act on the scene the way the canvas action does.

When the first selected element belongs to a table, that table is relaid
out. Otherwise a new table is created. The selection stored in the scene is
used unless --select names other elements.`,
		Example: `  # Relayout the table the saved selection points at
  gridtable run drawing.excalidraw

  # Select an element first
  gridtable run drawing.excalidraw --select 3f9c0d2e-cell`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args[0], selectIDs)
		},
	}

	cmd.Flags().StringSliceVar(&selectIDs, "select", nil, "element IDs to select before running")
	addTableFlags(cmd)
	return cmd
}

func runRun(cmd *cobra.Command, path string, selectIDs []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	scene, err := loadScene(path, true)
	if err != nil {
		return err
	}
	if len(selectIDs) > 0 {
		if err := scene.Select(selectIDs...); err != nil {
			return err
		}
	}

	outcome, err := cmdCtx.Tool(scene).Run(cmd.Context())
	if err != nil {
		return err
	}
	if _, err := saveScene(scene, path); err != nil {
		return err
	}

	printOutcome(cmd, outcome)
	return nil
}
