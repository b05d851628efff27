package tables

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tsawler/gridtable/canvas"
	"github.com/tsawler/gridtable/font"
	"github.com/tsawler/gridtable/model"
)

// Relayouter restores a table's grid after its dividers were moved. Row
// heights and column widths are read from the divider positions; every
// divider, cell and text label is then rewritten so cells span exactly
// between their neighbouring dividers and labels sit centered in them.
type Relayouter struct {
	measurer font.Measurer
	logger   *slog.Logger
}

// NewRelayouter creates a relayouter. A nil logger discards output.
func NewRelayouter(m font.Measurer, logger *slog.Logger) *Relayouter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Relayouter{measurer: m, logger: logger}
}

// Layout is a computed relayout that has not been written yet
type Layout struct {
	TableID string
	Grid    *model.TableGrid
	GroupID string

	// Elements holds updated copies of every table element in host order
	Elements []*model.Element

	Warnings []Warning
}

// Plan computes the relayout of tableID without touching the host. The
// given elements are not modified.
func (r *Relayouter) Plan(tableID string, elements []*model.Element) (*Layout, error) {
	work := make([]*model.Element, 0, len(elements))
	for _, el := range elements {
		if el != nil {
			work = append(work, el.Clone())
		}
	}

	t, err := Classify(tableID, work)
	if err != nil {
		return nil, err
	}
	inf, err := Infer(t)
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", tableID, err)
	}

	layout := &Layout{
		TableID:  tableID,
		Grid:     inf.Grid,
		GroupID:  GroupID(tableID),
		Elements: t.Elements(),
	}
	layout.Warnings = append(layout.Warnings, t.Warnings...)
	layout.Warnings = append(layout.Warnings, inf.Warnings...)

	err = detached(layout.Elements, layout.GroupID, func() error {
		placeDividers(inf)
		layout.Warnings = append(layout.Warnings, r.placeCells(t, inf)...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return layout, nil
}

// Relayout reads the host, computes the layout of tableID and writes it back
// in a single batch. On any error nothing is written.
func (r *Relayouter) Relayout(ctx context.Context, h canvas.Host, tableID string) (*Layout, error) {
	elements, err := h.Elements(ctx)
	if err != nil {
		return nil, fmt.Errorf("tables: read elements: %w", err)
	}

	layout, err := r.Plan(tableID, elements)
	if err != nil {
		return nil, err
	}

	if err := h.Commit(ctx, layout.Batch()); err != nil {
		return nil, fmt.Errorf("tables: commit relayout of %q: %w", tableID, err)
	}

	r.logger.Debug("table relaid out",
		"table_id", tableID,
		"rows", layout.Grid.RowCount(),
		"cols", layout.Grid.ColCount(),
		"elements", len(layout.Elements),
		"warnings", len(layout.Warnings))
	return layout, nil
}

// Batch records the layout as host writes: new geometry for every element,
// then the regroup
func (l *Layout) Batch() *canvas.Batch {
	b := canvas.NewBatch()
	ids := make([]string, len(l.Elements))
	for i, el := range l.Elements {
		b.SetGeometry(el.ID, el.Geometry())
		ids[i] = el.ID
	}
	b.Group(l.GroupID, ids...)
	return b
}

// placeDividers stretches every divider across the full table and puts
// divider i at boundary i
func placeDividers(inf *Inference) {
	rows, cols := inf.RowBounds, inf.ColBounds
	left, top := cols[0], rows[0]
	width, height := extent(cols), extent(rows)

	for i, d := range inf.RowDividers {
		d.Element().SetGeometry(rowDividerGeometry(left, rows[i], width))
	}
	for i, d := range inf.ColDividers {
		d.Element().SetGeometry(colDividerGeometry(cols[i], top, height))
	}
}

// extent is the distance from the first boundary to the last
func extent(bounds []float64) float64 {
	return bounds[len(bounds)-1] - bounds[0]
}

// cellBox is the box between boundaries row, row+1 and col, col+1
func cellBox(rows, cols []float64, row, col int) model.BBox {
	return model.NewBBox(cols[col], rows[row], cols[col+1]-cols[col], rows[row+1]-rows[row])
}

// rowDividerGeometry is a horizontal line of the given width starting at x, y
func rowDividerGeometry(x, y, width float64) model.Geometry {
	return model.Geometry{
		X:      x,
		Y:      y,
		Width:  width,
		Points: []model.Point{{X: 0, Y: 0}, {X: width, Y: 0}},
	}
}

// colDividerGeometry is a vertical line of the given height starting at x, y
func colDividerGeometry(x, y, height float64) model.Geometry {
	return model.Geometry{
		X:      x,
		Y:      y,
		Height: height,
		Points: []model.Point{{X: 0, Y: 0}, {X: 0, Y: height}},
	}
}

// placeCells walks the grid row by row and fits the cell and label at each
// position to it
func (r *Relayouter) placeCells(t *Table, inf *Inference) []Warning {
	var warnings []Warning
	grid := inf.Grid

	for row := range grid.RowHeights {
		for col := range grid.ColWidths {
			box := cellBox(inf.RowBounds, inf.ColBounds, row, col)

			if cell, ok := t.CellAt(row, col); ok {
				cell.Element().SetGeometry(model.Geometry{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height})
			} else {
				warnings = append(warnings, missingWarning(WarnMissingCell, row, col))
			}

			if label, ok := t.LabelAt(row, col); ok {
				size := r.measurer.Measure(label.Text(), label.Face())
				origin := box.CenterOrigin(size.Width, size.Height)
				el := label.Element()
				el.X, el.Y = origin.X, origin.Y
			} else {
				warnings = append(warnings, missingWarning(WarnMissingLabel, row, col))
			}
		}
	}

	rows, cols := grid.RowCount(), grid.ColCount()
	for _, c := range t.Cells {
		if outside(c.Row(), c.Col(), rows, cols) {
			warnings = append(warnings, outOfGridWarning(c.Element().ID, "cell", c.Row(), c.Col(), rows, cols))
		}
	}
	for _, l := range t.Labels {
		if outside(l.Row(), l.Col(), rows, cols) {
			warnings = append(warnings, outOfGridWarning(l.Element().ID, "text label", l.Row(), l.Col(), rows, cols))
		}
	}
	return warnings
}

func outside(row, col, rows, cols int) bool {
	return row < 0 || col < 0 || row >= rows || col >= cols
}

func outOfGridWarning(id, what string, row, col, rows, cols int) Warning {
	return Warning{
		Kind:      WarnOutOfGrid,
		ElementID: id,
		Row:       row,
		Col:       col,
		Message:   fmt.Sprintf("%s %s at row %d, column %d is outside the %dx%d grid", what, id, row, col, rows, cols),
	}
}
