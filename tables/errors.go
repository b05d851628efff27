package tables

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition is returned when the host does not meet the minimum
	// capability the engine needs. Nothing is modified.
	ErrPrecondition = errors.New("tables: host precondition not met")

	// ErrTableNotFound is returned when no element carries the requested
	// table identifier. Nothing is modified.
	ErrTableNotFound = errors.New("tables: table not found")

	// ErrMalformedTable is returned when the table's dividers cannot
	// describe a grid. Nothing is modified.
	ErrMalformedTable = errors.New("tables: malformed table")
)

// Axis names one dimension of a grid
type Axis int

const (
	AxisRows Axis = iota
	AxisCols
)

func (a Axis) String() string {
	switch a {
	case AxisRows:
		return "rows"
	case AxisCols:
		return "columns"
	default:
		return "unknown"
	}
}

// AxisError reports why spans could not be inferred on one axis
type AxisError struct {
	Axis     Axis
	Dividers int    // dividers found on the axis
	Reason   string // empty when there were too few dividers
}

func (e *AxisError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("tables: malformed table: %s: %s", e.Axis, e.Reason)
	}
	return fmt.Sprintf("tables: malformed table: %s: need at least 2 dividers, found %d", e.Axis, e.Dividers)
}

// Unwrap lets errors.Is match ErrMalformedTable
func (e *AxisError) Unwrap() error {
	return ErrMalformedTable
}
