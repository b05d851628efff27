package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Export formats
const (
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatHTML     = "html"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var (
		tableID string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "export <scene>",
		Short: "Print a table's text as markdown, CSV or HTML",
		Long: `Read the labels of a table in grid order and print them. Row 0 is the
header row. HTML output keeps each cell's fill color.`,
		Example: `  gridtable export drawing.excalidraw --format csv > table.csv
  gridtable export drawing.excalidraw --table 3f2a... --format html`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], tableID, format)
		},
	}

	cmd.Flags().StringVar(&tableID, "table", "", "table ID (default: the only table)")
	cmd.Flags().StringVar(&format, "format", FormatMarkdown, "output format (markdown|csv|html)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{FormatMarkdown, FormatCSV, FormatHTML}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func runExport(cmd *cobra.Command, path, tableID, format string) error {
	switch format {
	case FormatMarkdown, "md", FormatCSV, FormatHTML:
	default:
		return fmt.Errorf("invalid --format %q (want %s, %s or %s)", format, FormatMarkdown, FormatCSV, FormatHTML)
	}

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

	snap, warnings, err := tool.Snapshot(cmd.Context(), tableID)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		cmdCtx.Logger.Warn("export", "table_id", tableID, "kind", w.Kind.String(), "message", w.Message)
	}

	w := cmd.OutOrStdout()
	switch format {
	case FormatCSV:
		_, err = fmt.Fprint(w, snap.ToCSV())
	case FormatHTML:
		if err = snap.WriteHTML(w); err == nil {
			_, err = fmt.Fprintln(w)
		}
	default:
		_, err = fmt.Fprint(w, snap.ToMarkdown())
	}
	return err
}
