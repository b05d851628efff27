// Package gridtable provides a fluent API for creating grid tables on a
// drawing canvas and re-laying them out after their dividers were moved.
//
// Basic usage, the way a host-triggered action runs it:
//
//	outcome, err := gridtable.On(scene).Run(ctx)
//
// With nothing selected, Run creates a new table. With an element of an
// existing table selected, it relays out that table.
//
// With options:
//
//	outcome, err := gridtable.On(scene).
//	    WithMeasurer(measurer).
//	    WithNotifier(notify.NewWriterNotifier(os.Stdout, notify.NewLocalizer("ja"))).
//	    WithTable(config.Default().WithSize(3, 4)).
//	    Run(ctx)
//	if len(outcome.Warnings) > 0 {
//	    log.Println("Warnings:", gridtable.FormatWarnings(outcome.Warnings))
//	}
//
// For lower-level control, the tables and canvas packages are available.
package gridtable

import (
	"log/slog"

	"github.com/tsawler/gridtable/canvas"
	"github.com/tsawler/gridtable/config"
	"github.com/tsawler/gridtable/font"
	"github.com/tsawler/gridtable/notify"
)

// Tool runs table operations against one host. Each configuration method
// returns a new Tool, so a configured Tool can be shared and reused.
type Tool struct {
	host    canvas.Host
	options Options
}

// On returns a Tool for fluent configuration.
//
// Example:
//
//	outcome, err := gridtable.On(scene).Relayout(ctx, tableID)
func On(h canvas.Host) *Tool {
	return &Tool{host: h, options: defaultOptions()}
}

// clone creates a copy of the Tool with its own options.
func (t *Tool) clone() *Tool {
	return &Tool{host: t.host, options: t.options.clone()}
}

// ============================================================================
// Configuration Methods (return new Tool instance)
// ============================================================================

// WithMeasurer sets the text measurement service used to center labels.
func (t *Tool) WithMeasurer(m font.Measurer) *Tool {
	newTool := t.clone()
	newTool.options.measurer = m
	return newTool
}

// WithNotifier sets where user-facing messages go.
func (t *Tool) WithNotifier(n notify.Notifier) *Tool {
	newTool := t.clone()
	newTool.options.notifier = n
	return newTool
}

// WithLogger sets the structured logger. A nil logger discards output.
func (t *Tool) WithLogger(logger *slog.Logger) *Tool {
	newTool := t.clone()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	newTool.options.logger = logger
	return newTool
}

// WithMinHostVersion sets the oldest host version accepted. An empty string
// disables the check.
func (t *Tool) WithMinHostVersion(v string) *Tool {
	newTool := t.clone()
	newTool.options.minHostVersion = v
	return newTool
}

// WithTable sets the record new tables are generated from.
//
// Example:
//
//	outcome, err := gridtable.On(scene).WithTable(config.Default().WithSize(2, 6)).Create(ctx)
func (t *Tool) WithTable(cfg config.Table) *Tool {
	newTool := t.clone()
	newTool.options.table = cfg
	return newTool
}
