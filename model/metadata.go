package model

import (
	"encoding/json"
	"math"
)

// PartKind identifies which role an element plays inside a logical table
type PartKind string

const (
	PartRowDivider PartKind = "row-divider"
	PartColDivider PartKind = "col-divider"
	PartCell       PartKind = "cell"
	PartText       PartKind = "text"
)

// Valid reports whether k is one of the four known table parts
func (k PartKind) Valid() bool {
	switch k {
	case PartRowDivider, PartColDivider, PartCell, PartText:
		return true
	}
	return false
}

// HasRow reports whether parts of this kind carry a row index
func (k PartKind) HasRow() bool {
	return k == PartRowDivider || k == PartCell || k == PartText
}

// HasCol reports whether parts of this kind carry a column index
func (k PartKind) HasCol() bool {
	return k == PartColDivider || k == PartCell || k == PartText
}

// CustomData keys. "type" matches the key used by existing Excalidraw table
// scripts, so their tables classify unchanged.
const (
	metaTableID  = "tableId"
	metaKind     = "type"
	metaRowIndex = "rowIndex"
	metaColIndex = "colIndex"
)

var metaKeys = []string{metaTableID, metaKind, metaRowIndex, metaColIndex}

// TableMeta links an element to its logical table and grid coordinate.
// For dividers the index is a boundary (0..count); for cells and text it is
// the 0-based row or column.
type TableMeta struct {
	TableID  string
	Kind     PartKind
	RowIndex int
	ColIndex int
}

// ToMap encodes the metadata as CustomData entries. Indices that do not
// apply to the kind are omitted.
func (m TableMeta) ToMap() map[string]any {
	out := map[string]any{
		metaTableID: m.TableID,
		metaKind:    string(m.Kind),
	}
	if m.Kind.HasRow() {
		out[metaRowIndex] = m.RowIndex
	}
	if m.Kind.HasCol() {
		out[metaColIndex] = m.ColIndex
	}
	return out
}

// ParseMeta decodes table metadata from CustomData. It reports false when
// the record carries no table identifier.
func ParseMeta(data map[string]any) (TableMeta, bool) {
	if data == nil {
		return TableMeta{}, false
	}
	id, _ := data[metaTableID].(string)
	if id == "" {
		return TableMeta{}, false
	}
	kind, _ := data[metaKind].(string)
	m := TableMeta{
		TableID:  id,
		Kind:     PartKind(kind),
		RowIndex: -1,
		ColIndex: -1,
	}
	if v, ok := toIndex(data[metaRowIndex]); ok {
		m.RowIndex = v
	}
	if v, ok := toIndex(data[metaColIndex]); ok {
		m.ColIndex = v
	}
	return m, true
}

// toIndex accepts the numeric forms a decoded JSON record may hold
func toIndex(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}
