// Package tables builds and maintains grid tables made of loose canvas
// elements: row-divider and col-divider lines, cell rectangles and text
// labels, all tagged with a shared table ID.
//
// # Relayout
//
// After a user drags a divider, the table is inconsistent: cells no longer
// span between their dividers. [Relayouter] recovers the grid from divider
// positions alone and rewrites every element to fit it:
//
//  1. Classification of the table's elements by role ([Classify])
//  2. Grid inference: sort dividers by position, take the gaps ([Infer])
//  3. Propagation: stretch dividers, fit cells, center labels
//  4. One atomic commit to the host, regrouping the table
//
//	r := tables.NewRelayouter(measurer, logger)
//	layout, err := r.Relayout(ctx, host, tableID)
//
// Divider boundary indices are kept for identification only; geometric
// order always comes from the current coordinates.
//
// # Generation
//
// [Generator] creates a new table from a [config.Table]:
//
//	g := tables.NewGenerator(measurer, logger)
//	gen, err := g.Generate(ctx, host, config.Default())
//
// Row 0 is the column header row and column 0 the row header column; the
// corner cell takes the column header color.
//
// # Errors and Warnings
//
// [ErrTableNotFound], [ErrMalformedTable] and [ErrPrecondition] abort before
// anything is written. Conditions that only affect one grid position, such
// as a missing cell or text label, are returned as [Warning] values and the
// position is skipped.
package tables
