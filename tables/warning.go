package tables

import "fmt"

// WarningKind classifies a non-fatal condition found while processing a
// table
type WarningKind int

const (
	// WarnMissingCell: a grid position has no cell rectangle
	WarnMissingCell WarningKind = iota
	// WarnMissingLabel: a grid position has no text label
	WarnMissingLabel
	// WarnOutOfGrid: a cell or label names a position outside the grid
	WarnOutOfGrid
	// WarnDuplicatePart: two cells or two labels claim the same position
	WarnDuplicatePart
	// WarnUnknownKind: an element carries the table ID but no known kind
	WarnUnknownKind
	// WarnDegenerateSpan: two dividers share a coordinate, giving a
	// zero-size row or column
	WarnDegenerateSpan
)

func (k WarningKind) String() string {
	switch k {
	case WarnMissingCell:
		return "missing-cell"
	case WarnMissingLabel:
		return "missing-label"
	case WarnOutOfGrid:
		return "out-of-grid"
	case WarnDuplicatePart:
		return "duplicate-part"
	case WarnUnknownKind:
		return "unknown-kind"
	case WarnDegenerateSpan:
		return "degenerate-span"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal issue. The affected position is skipped or
// accepted as-is; processing continues.
type Warning struct {
	Kind      WarningKind
	ElementID string // empty when the issue is a missing element
	Row, Col  int    // -1 when not applicable
	Message   string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

func missingWarning(kind WarningKind, row, col int) Warning {
	what := "cell"
	if kind == WarnMissingLabel {
		what = "text label"
	}
	return Warning{
		Kind:    kind,
		Row:     row,
		Col:     col,
		Message: fmt.Sprintf("no %s at row %d, column %d", what, row, col),
	}
}
