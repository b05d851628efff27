package tables

import (
	"fmt"

	"github.com/tsawler/gridtable/model"
)

// Snapshot reads the content of a table as rows and columns, laid out on
// the grid its dividers currently describe. Cell boxes come from the grid,
// not from the cell rectangles, so a table that still needs a relayout
// reads the same as one that has had it.
func Snapshot(tableID string, elements []*model.Element) (*model.Table, []Warning, error) {
	t, err := Classify(tableID, elements)
	if err != nil {
		return nil, nil, err
	}
	inf, err := Infer(t)
	if err != nil {
		return nil, nil, fmt.Errorf("table %q: %w", tableID, err)
	}

	grid := inf.Grid
	out := model.NewTable(tableID, grid.RowCount(), grid.ColCount())
	out.Grid = grid

	warnings := append([]Warning(nil), t.Warnings...)
	warnings = append(warnings, inf.Warnings...)

	for row := 0; row < grid.RowCount(); row++ {
		for col := 0; col < grid.ColCount(); col++ {
			cell := model.Cell{
				BBox:     grid.GetCellBBox(row, col),
				IsHeader: row == 0,
			}
			if c, ok := t.CellAt(row, col); ok {
				cell.BackgroundColor = c.Element().BackgroundColor
			} else {
				warnings = append(warnings, missingWarning(WarnMissingCell, row, col))
			}
			if l, ok := t.LabelAt(row, col); ok {
				cell.Text = l.Text()
			} else {
				warnings = append(warnings, missingWarning(WarnMissingLabel, row, col))
			}
			if err := out.SetCell(row, col, cell); err != nil {
				return nil, nil, err
			}
		}
	}
	return out, warnings, nil
}
