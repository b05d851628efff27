package model

import (
	"fmt"
	"strings"
)

// Table is a read-only snapshot of a logical table's content, organized in
// rows and columns. It is produced from canvas elements for export.
type Table struct {
	ID   string
	Rows [][]Cell
	Grid *TableGrid
}

// NewTable creates a new table with given dimensions
func NewTable(id string, rows, cols int) *Table {
	table := &Table{
		ID:   id,
		Rows: make([][]Cell, rows),
	}
	for i := 0; i < rows; i++ {
		table.Rows[i] = make([]Cell, cols)
	}
	return table
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns in the first row
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// GetCell returns the cell at the given row and column (0-indexed)
func (t *Table) GetCell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return &t.Rows[row][col]
}

// SetCell sets the cell at the given position
func (t *Table) SetCell(row, col int, cell Cell) error {
	if row < 0 || row >= len(t.Rows) {
		return fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return fmt.Errorf("col index %d out of bounds", col)
	}
	t.Rows[row][col] = cell
	return nil
}

// markdownCell keeps a cell on one line and inside its column
var markdownCell = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "|", `\|`)

// ToMarkdown converts the table to markdown format. Row 0 is the header.
func (t *Table) ToMarkdown() string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(row []Cell) {
		for _, cell := range row {
			sb.WriteString("| ")
			sb.WriteString(markdownCell.Replace(cell.Text))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	writeRow(t.Rows[0])
	for range t.Rows[0] {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")
	for _, row := range t.Rows[1:] {
		writeRow(row)
	}

	return sb.String()
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			text := cell.Text
			if strings.ContainsAny(text, ",\"\r\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Cell represents one grid position of a table snapshot
type Cell struct {
	Text            string
	BBox            BBox
	BackgroundColor string
	IsHeader        bool
}

// TableGrid is the inferred row/column structure of a table: the top-left
// origin plus the height of every row and the width of every column.
type TableGrid struct {
	Origin     Point
	RowHeights []float64
	ColWidths  []float64
}

// NewUniformGrid creates a grid of equally sized cells
func NewUniformGrid(origin Point, rows, cols int, cellWidth, cellHeight float64) *TableGrid {
	g := &TableGrid{
		Origin:     origin,
		RowHeights: make([]float64, rows),
		ColWidths:  make([]float64, cols),
	}
	for i := range g.RowHeights {
		g.RowHeights[i] = cellHeight
	}
	for j := range g.ColWidths {
		g.ColWidths[j] = cellWidth
	}
	return g
}

// RowCount returns the number of rows
func (g *TableGrid) RowCount() int {
	return len(g.RowHeights)
}

// ColCount returns the number of columns
func (g *TableGrid) ColCount() int {
	return len(g.ColWidths)
}

// Width returns the total table width
func (g *TableGrid) Width() float64 {
	return sum(g.ColWidths)
}

// Height returns the total table height
func (g *TableGrid) Height() float64 {
	return sum(g.RowHeights)
}

// RowBoundaries returns the Y coordinate of every row boundary, RowCount+1
// values starting at the origin.
func (g *TableGrid) RowBoundaries() []float64 {
	return boundaries(g.Origin.Y, g.RowHeights)
}

// ColBoundaries returns the X coordinate of every column boundary
func (g *TableGrid) ColBoundaries() []float64 {
	return boundaries(g.Origin.X, g.ColWidths)
}

// BBox returns the bounds of the whole table
func (g *TableGrid) BBox() BBox {
	return BBox{X: g.Origin.X, Y: g.Origin.Y, Width: g.Width(), Height: g.Height()}
}

// GetCellBBox returns the bounding box for a cell
func (g *TableGrid) GetCellBBox(row, col int) BBox {
	if row < 0 || row >= g.RowCount() || col < 0 || col >= g.ColCount() {
		return BBox{}
	}
	return BBox{
		X:      g.Origin.X + sum(g.ColWidths[:col]),
		Y:      g.Origin.Y + sum(g.RowHeights[:row]),
		Width:  g.ColWidths[col],
		Height: g.RowHeights[row],
	}
}

func boundaries(start float64, spans []float64) []float64 {
	out := make([]float64, len(spans)+1)
	out[0] = start
	for i, s := range spans {
		out[i+1] = out[i] + s
	}
	return out
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
