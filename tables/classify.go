package tables

import (
	"fmt"

	"github.com/tsawler/gridtable/font"
	"github.com/tsawler/gridtable/model"
)

// Part is one element of a logical table, classified by its role
type Part interface {
	Element() *model.Element
	Meta() model.TableMeta
	isPart()
}

type part struct {
	el   *model.Element
	meta model.TableMeta
}

func (p part) Element() *model.Element { return p.el }
func (p part) Meta() model.TableMeta   { return p.meta }
func (part) isPart()                   {}

// RowDivider is a horizontal line at a row boundary
type RowDivider struct{ part }

// Boundary returns the boundary index recorded at creation. It is used for
// identification only; geometric order comes from Position.
func (d RowDivider) Boundary() int { return d.meta.RowIndex }

// Position returns the divider's current Y coordinate
func (d RowDivider) Position() float64 { return d.el.Y }

// ColDivider is a vertical line at a column boundary
type ColDivider struct{ part }

// Boundary returns the boundary index recorded at creation
func (d ColDivider) Boundary() int { return d.meta.ColIndex }

// Position returns the divider's current X coordinate
func (d ColDivider) Position() float64 { return d.el.X }

// Cell is the background rectangle at a grid position
type Cell struct{ part }

func (c Cell) Row() int { return c.meta.RowIndex }
func (c Cell) Col() int { return c.meta.ColIndex }

// TextLabel is the text element centered in a cell
type TextLabel struct{ part }

func (l TextLabel) Row() int     { return l.meta.RowIndex }
func (l TextLabel) Col() int     { return l.meta.ColIndex }
func (l TextLabel) Text() string { return l.el.Text }

// Face returns the font the label is rendered with
func (l TextLabel) Face() font.Face {
	return font.Face{Family: l.el.FontFamily, Size: l.el.FontSize}
}

// Unknown is an element carrying the table ID with an unrecognised kind
type Unknown struct{ part }

// Coord is a 0-based grid position
type Coord struct {
	Row, Col int
}

// Table is the classified view of every element sharing one table ID.
// Slices keep the host's element order.
type Table struct {
	ID          string
	RowDividers []RowDivider
	ColDividers []ColDivider
	Cells       []Cell
	Labels      []TextLabel
	Unknown     []Unknown
	Warnings    []Warning

	parts  []Part
	cells  map[Coord]Cell
	labels map[Coord]TextLabel
}

// Classify sorts the elements tagged with tableID into their roles. The
// returned table references the given elements, not copies. It fails with
// ErrTableNotFound when no element carries the ID.
func Classify(tableID string, elements []*model.Element) (*Table, error) {
	t := &Table{
		ID:     tableID,
		cells:  make(map[Coord]Cell),
		labels: make(map[Coord]TextLabel),
	}

	for _, el := range elements {
		if el == nil || el.IsDeleted {
			continue
		}
		meta, ok := el.Meta()
		if !ok || meta.TableID != tableID {
			continue
		}
		t.add(el, meta)
	}

	if len(t.parts) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, tableID)
	}
	return t, nil
}

func (t *Table) add(el *model.Element, meta model.TableMeta) {
	p := part{el: el, meta: meta}

	switch meta.Kind {
	case model.PartRowDivider:
		d := RowDivider{p}
		t.RowDividers = append(t.RowDividers, d)
		t.parts = append(t.parts, d)

	case model.PartColDivider:
		d := ColDivider{p}
		t.ColDividers = append(t.ColDividers, d)
		t.parts = append(t.parts, d)

	case model.PartCell:
		c := Cell{p}
		key := Coord{c.Row(), c.Col()}
		if _, dup := t.cells[key]; dup {
			t.Warnings = append(t.Warnings, duplicateWarning(el.ID, key, "cell"))
		} else {
			t.cells[key] = c
		}
		t.Cells = append(t.Cells, c)
		t.parts = append(t.parts, c)

	case model.PartText:
		l := TextLabel{p}
		key := Coord{l.Row(), l.Col()}
		if _, dup := t.labels[key]; dup {
			t.Warnings = append(t.Warnings, duplicateWarning(el.ID, key, "text label"))
		} else {
			t.labels[key] = l
		}
		t.Labels = append(t.Labels, l)
		t.parts = append(t.parts, l)

	default:
		u := Unknown{p}
		t.Unknown = append(t.Unknown, u)
		t.parts = append(t.parts, u)
		t.Warnings = append(t.Warnings, Warning{
			Kind:      WarnUnknownKind,
			ElementID: el.ID,
			Row:       -1,
			Col:       -1,
			Message:   fmt.Sprintf("element %s has unknown table part kind %q", el.ID, meta.Kind),
		})
	}
}

// CellAt returns the cell at a grid position. When several cells claim the
// position, the first in host order wins.
func (t *Table) CellAt(row, col int) (Cell, bool) {
	c, ok := t.cells[Coord{row, col}]
	return c, ok
}

// LabelAt returns the text label at a grid position
func (t *Table) LabelAt(row, col int) (TextLabel, bool) {
	l, ok := t.labels[Coord{row, col}]
	return l, ok
}

// Elements returns the elements of every part in host order
func (t *Table) Elements() []*model.Element {
	out := make([]*model.Element, len(t.parts))
	for i, p := range t.parts {
		out[i] = p.Element()
	}
	return out
}

// Len returns the number of elements in the table
func (t *Table) Len() int {
	return len(t.parts)
}

// TableIDs returns the distinct table IDs found among elements, in order of
// first appearance
func TableIDs(elements []*model.Element) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, el := range elements {
		if el == nil || el.IsDeleted {
			continue
		}
		meta, ok := el.Meta()
		if !ok || seen[meta.TableID] {
			continue
		}
		seen[meta.TableID] = true
		ids = append(ids, meta.TableID)
	}
	return ids
}

func duplicateWarning(id string, at Coord, what string) Warning {
	return Warning{
		Kind:      WarnDuplicatePart,
		ElementID: id,
		Row:       at.Row,
		Col:       at.Col,
		Message:   fmt.Sprintf("second %s at row %d, column %d (element %s) is ignored", what, at.Row, at.Col, id),
	}
}
