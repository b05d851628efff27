package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tsawler/gridtable"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <scene>",
		Short: "List the tables in a scene",
		Long: `Show every table found in the scene with its inferred grid.

Regularity is 1 for evenly spaced dividers and drops as row heights and
column widths diverge. Use -v to list the parts that were skipped.`,
		Example: `  gridtable inspect drawing.excalidraw -v`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}
	return cmd
}

func runInspect(cmd *cobra.Command, path string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	scene, err := loadScene(path, false)
	if err != nil {
		return err
	}
	infos, err := cmdCtx.Tool(scene).Tables(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	renderTables(w, infos)

	if cmdCtx.Cfg.Verbose {
		for _, info := range infos {
			if len(info.Warnings) == 0 {
				continue
			}
			_, _ = fmt.Fprintf(w, "\n%s\n%s", info.ID, gridtable.FormatWarnings(info.Warnings))
		}
	}
	return nil
}

func renderTables(w io.Writer, infos []gridtable.TableInfo) {
	if len(infos) == 0 {
		_, _ = fmt.Fprintln(w, "(0 tables)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Table", "Rows", "Cols", "Elements", "Bounds", "Regularity", "Status"})

	for _, info := range infos {
		if info.Err != nil {
			t.AppendRow(table.Row{info.ID, "-", "-", info.Elements, "-", "-", info.Err.Error()})
			continue
		}
		b := info.Bounds
		status := "ok"
		if n := len(info.Warnings); n > 0 {
			status = fmt.Sprintf("%d warning(s)", n)
		}
		t.AppendRow(table.Row{
			info.ID,
			info.Rows,
			info.Cols,
			info.Elements,
			fmt.Sprintf("%g,%g %gx%g", b.X, b.Y, b.Width, b.Height),
			fmt.Sprintf("%.2f", info.Regularity),
			status,
		})
	}
	t.Render()
}
