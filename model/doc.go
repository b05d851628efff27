// Package model provides the data types shared by table generation and
// relayout: canvas elements, geometry, table metadata and grids.
//
// # Elements
//
// An [Element] is one drawable primitive on the canvas: a line, a rectangle
// or a text label. Its JSON form follows the Excalidraw scene format, so
// scene files round-trip through this type:
//
//	cell := model.NewRectangle(id, model.NewBBox(0, 0, 150, 40), style)
//	line := model.NewLine(id, model.Point{X: 0, Y: 0}, model.Point{X: 750, Y: 0}, style)
//
// # Table Metadata
//
// Elements that belong to a logical table carry a [TableMeta] record in
// their CustomData. The table itself is never stored; it is the set of
// elements sharing a table identifier. Every such element is a
// [PartRowDivider], [PartColDivider], [PartCell] or [PartText].
//
// # Grids
//
// A [TableGrid] holds the table origin, row heights and column widths.
// Boundaries and cell rectangles are derived from cumulative sums:
//
//	grid := model.NewUniformGrid(model.Point{}, 3, 3, 100, 50)
//	grid.GetCellBBox(1, 2) // {X:200 Y:50 Width:100 Height:50}
//
// # Geometry
//
//   - [BBox] - axis-aligned box with edge, union and centering helpers
//   - [Point] - 2D point, encoded in JSON as an [x, y] pair
//
// Coordinates are canvas coordinates: X grows to the right, Y grows down.
package model
