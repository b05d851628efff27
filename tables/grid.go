package tables

import (
	"fmt"
	"math"
	"sort"

	"github.com/tsawler/gridtable/model"
)

// Inference is a grid recovered from the current divider positions
type Inference struct {
	Grid *model.TableGrid

	// Dividers in geometric order: rows top to bottom, columns left to
	// right. Relayout walks these, so divider i always sits at boundary i
	// of Grid.
	RowDividers []RowDivider
	ColDividers []ColDivider

	// RowBounds and ColBounds are the sorted divider coordinates. Layout is
	// placed from these rather than from re-summed spans, so an unchanged
	// table lays out to exactly the same coordinates.
	RowBounds []float64
	ColBounds []float64

	Warnings []Warning
}

// Infer recovers row heights and column widths from divider positions.
// Boundary indices in metadata are not trusted for order: a dragged divider
// keeps its index but changes position. Ties are broken by boundary index.
//
// Each axis needs at least two dividers with finite coordinates, otherwise
// an *AxisError wrapping ErrMalformedTable is returned. Dividers sharing a
// coordinate produce a zero span and a WarnDegenerateSpan warning.
func Infer(t *Table) (*Inference, error) {
	rows := sortedRowDividers(t.RowDividers)
	cols := sortedColDividers(t.ColDividers)

	rowPos := make([]float64, len(rows))
	for i, d := range rows {
		rowPos[i] = d.Position()
	}
	colPos := make([]float64, len(cols))
	for i, d := range cols {
		colPos[i] = d.Position()
	}

	heights, rowWarnings, err := spans(AxisRows, rowPos)
	if err != nil {
		return nil, err
	}
	widths, colWarnings, err := spans(AxisCols, colPos)
	if err != nil {
		return nil, err
	}

	inf := &Inference{
		Grid: &model.TableGrid{
			Origin:     model.Point{X: colPos[0], Y: rowPos[0]},
			RowHeights: heights,
			ColWidths:  widths,
		},
		RowDividers: rows,
		ColDividers: cols,
		RowBounds:   rowPos,
		ColBounds:   colPos,
	}
	inf.Warnings = append(inf.Warnings, rowWarnings...)
	inf.Warnings = append(inf.Warnings, colWarnings...)
	return inf, nil
}

// spans turns sorted positions into the gaps between neighbours
func spans(axis Axis, positions []float64) ([]float64, []Warning, error) {
	if len(positions) < 2 {
		return nil, nil, &AxisError{Axis: axis, Dividers: len(positions)}
	}
	for _, p := range positions {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, nil, &AxisError{
				Axis:     axis,
				Dividers: len(positions),
				Reason:   fmt.Sprintf("divider coordinate %v is not finite", p),
			}
		}
	}

	var warnings []Warning
	out := make([]float64, len(positions)-1)
	for i := range out {
		out[i] = positions[i+1] - positions[i]
		if out[i] == 0 {
			w := Warning{Kind: WarnDegenerateSpan, Row: -1, Col: -1}
			if axis == AxisRows {
				w.Row = i
				w.Message = fmt.Sprintf("row %d has zero height", i)
			} else {
				w.Col = i
				w.Message = fmt.Sprintf("column %d has zero width", i)
			}
			warnings = append(warnings, w)
		}
	}
	return out, warnings, nil
}

func sortedRowDividers(in []RowDivider) []RowDivider {
	out := append([]RowDivider(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position() != out[j].Position() {
			return out[i].Position() < out[j].Position()
		}
		return out[i].Boundary() < out[j].Boundary()
	})
	return out
}

func sortedColDividers(in []ColDivider) []ColDivider {
	out := append([]ColDivider(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position() != out[j].Position() {
			return out[i].Position() < out[j].Position()
		}
		return out[i].Boundary() < out[j].Boundary()
	})
	return out
}

// Regularity measures how even the grid spacing is, from 0 (ragged) to 1
// (all rows the same height and all columns the same width)
func (inf *Inference) Regularity() float64 {
	rowScore := math.Max(0, 1-coefficientOfVariation(inf.Grid.RowHeights))
	colScore := math.Max(0, 1-coefficientOfVariation(inf.Grid.ColWidths))
	return (rowScore + colScore) / 2
}

// coefficientOfVariation calculates CV (std dev / mean)
func coefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	m := 0.0
	for _, v := range values {
		m += v
	}
	m /= float64(len(values))

	if m == 0 {
		return 0
	}

	v := 0.0
	for _, val := range values {
		diff := val - m
		v += diff * diff
	}
	v /= float64(len(values))

	return math.Sqrt(v) / m
}
