package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/gridtable"
)

// NewRelayoutCommand creates the relayout command.
func NewRelayoutCommand() *cobra.Command {
	var tableID string

	cmd := &cobra.Command{
		Use:   "relayout <scene>",
		Short: "Fit tables to their moved dividers",
		Long: `Rebuild table layouts from the current divider positions.

Every table in the scene is relaid out unless --table names one. A table
that cannot be relaid out is reported and the others are still written.`,
		Example: `  # Relayout every table
  gridtable relayout drawing.excalidraw

  # Relayout one table
  gridtable relayout drawing.excalidraw --table 6c1f2a90-5d7e-4b8a-9f0e-3a2b1c4d5e6f`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelayout(cmd, args[0], tableID)
		},
	}

	cmd.Flags().StringVar(&tableID, "table", "", "table ID (default: every table)")
	return cmd
}

func runRelayout(cmd *cobra.Command, path, tableID string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	scene, err := loadScene(path, false)
	if err != nil {
		return err
	}
	tool := cmdCtx.Tool(scene)

	var outcomes []*gridtable.Outcome
	if tableID != "" {
		o, err := tool.Relayout(cmd.Context(), tableID)
		if err != nil {
			return err
		}
		outcomes = append(outcomes, o)
	} else {
		outcomes, err = relayoutAll(cmd.Context(), tool)
	}

	// Tables that did relayout are kept even when another one failed
	if _, saveErr := saveScene(scene, path); saveErr != nil {
		return saveErr
	}
	for _, o := range outcomes {
		printOutcome(cmd, o)
	}
	if cmdCtx.Cfg.Verbose {
		for _, o := range outcomes {
			if len(o.Warnings) > 0 {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), gridtable.FormatWarnings(o.Warnings))
			}
		}
	}
	return err
}

// relayoutAll relays out every table in the scene, collecting failures.
func relayoutAll(ctx context.Context, tool *gridtable.Tool) ([]*gridtable.Outcome, error) {
	infos, err := tool.Tables(ctx)
	if err != nil {
		return nil, err
	}

	var outcomes []*gridtable.Outcome
	var errs []error
	for _, info := range infos {
		o, err := tool.Relayout(ctx, info.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("table %s: %w", info.ID, err))
			continue
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, errors.Join(errs...)
}
