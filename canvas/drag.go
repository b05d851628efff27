package canvas

import (
	"context"
	"fmt"

	"github.com/tsawler/gridtable/model"
)

// MoveDivider moves a table divider to a new coordinate on its
// perpendicular axis, the way a user dragging it on the canvas would. A
// row-divider gets a new Y, a col-divider a new X. Nothing else in the table
// is touched; relayout is a separate step.
func MoveDivider(ctx context.Context, h Host, tableID string, kind model.PartKind, index int, pos float64) error {
	if kind != model.PartRowDivider && kind != model.PartColDivider {
		return fmt.Errorf("canvas: move divider: %q is not a divider kind", kind)
	}

	elements, err := h.Elements(ctx)
	if err != nil {
		return err
	}

	for _, el := range elements {
		m, ok := el.Meta()
		if !ok || m.TableID != tableID || m.Kind != kind {
			continue
		}
		if (kind == model.PartRowDivider && m.RowIndex != index) ||
			(kind == model.PartColDivider && m.ColIndex != index) {
			continue
		}

		g := el.Geometry()
		if kind == model.PartRowDivider {
			g.Y = pos
		} else {
			g.X = pos
		}
		b := NewBatch()
		b.SetGeometry(el.ID, g)
		return h.Commit(ctx, b)
	}

	return fmt.Errorf("canvas: move divider: no %s %d in table %q: %w", kind, index, tableID, ErrUnknownElement)
}
