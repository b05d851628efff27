package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tsawler/gridtable/model"
)

// ErrInvalidConfig is returned when a table configuration violates its
// constraints
var ErrInvalidConfig = errors.New("config: invalid table configuration")

// Generation defaults
const (
	DefaultRows             = 5
	DefaultCols             = 5
	DefaultCellWidth        = 150
	DefaultCellHeight       = 40
	DefaultOuterBorderWidth = 2
	DefaultInnerGridWidth   = 1
	DefaultFontSize         = 20
	DefaultFontFamily       = 1
	DefaultColHeaderColor   = "Light Blue"
	DefaultRowHeaderColor   = "Gray"
)

// Table is the record a new table is generated from. Build it with
// NewTable, which resolves palette names and validates; the generator
// accepts only a record that passes Validate.
type Table struct {
	Rows             int     `koanf:"rows"`
	Cols             int     `koanf:"cols"`
	CellWidth        float64 `koanf:"cell_width"`
	CellHeight       float64 `koanf:"cell_height"`
	ColHeaderColor   string  `koanf:"col_header_color"`
	RowHeaderColor   string  `koanf:"row_header_color"`
	OuterBorderWidth float64 `koanf:"outer_border_width"`
	InnerGridWidth   float64 `koanf:"inner_grid_width"`
	OriginX          float64 `koanf:"origin_x"`
	OriginY          float64 `koanf:"origin_y"`
	FontSize         float64 `koanf:"font_size"`
	FontFamily       int     `koanf:"font_family"`
}

// Default returns the default table record with palette names resolved
func Default() Table {
	return Table{
		Rows:             DefaultRows,
		Cols:             DefaultCols,
		CellWidth:        DefaultCellWidth,
		CellHeight:       DefaultCellHeight,
		ColHeaderColor:   Palette[DefaultColHeaderColor],
		RowHeaderColor:   Palette[DefaultRowHeaderColor],
		OuterBorderWidth: DefaultOuterBorderWidth,
		InnerGridWidth:   DefaultInnerGridWidth,
		FontSize:         DefaultFontSize,
		FontFamily:       DefaultFontFamily,
	}
}

// NewTable resolves palette names in t and validates the result
func NewTable(t Table) (Table, error) {
	resolved, err := t.Resolve()
	if err != nil {
		return Table{}, err
	}
	if err := resolved.Validate(); err != nil {
		return Table{}, err
	}
	return resolved, nil
}

// Resolve returns a copy with palette color names replaced by their values
func (t Table) Resolve() (Table, error) {
	var err error
	if t.ColHeaderColor, err = ResolveColor(t.ColHeaderColor); err != nil {
		return Table{}, fmt.Errorf("%w: col header color: %v", ErrInvalidConfig, err)
	}
	if t.RowHeaderColor, err = ResolveColor(t.RowHeaderColor); err != nil {
		return Table{}, fmt.Errorf("%w: row header color: %v", ErrInvalidConfig, err)
	}
	return t, nil
}

// Validate checks every constraint and reports all violations at once
func (t Table) Validate() error {
	var problems []string

	if t.Rows <= 0 {
		problems = append(problems, fmt.Sprintf("rows must be positive, got %d", t.Rows))
	}
	if t.Cols <= 0 {
		problems = append(problems, fmt.Sprintf("cols must be positive, got %d", t.Cols))
	}
	if !positive(t.CellWidth) {
		problems = append(problems, fmt.Sprintf("cell width must be positive, got %v", t.CellWidth))
	}
	if !positive(t.CellHeight) {
		problems = append(problems, fmt.Sprintf("cell height must be positive, got %v", t.CellHeight))
	}
	if !nonNegative(t.OuterBorderWidth) {
		problems = append(problems, fmt.Sprintf("outer border width must not be negative, got %v", t.OuterBorderWidth))
	}
	if !nonNegative(t.InnerGridWidth) {
		problems = append(problems, fmt.Sprintf("inner grid width must not be negative, got %v", t.InnerGridWidth))
	}
	if !positive(t.FontSize) {
		problems = append(problems, fmt.Sprintf("font size must be positive, got %v", t.FontSize))
	}
	if t.FontFamily < 1 || t.FontFamily > 3 {
		problems = append(problems, fmt.Sprintf("font family must be 1, 2 or 3, got %d", t.FontFamily))
	}
	if math.IsNaN(t.OriginX) || math.IsInf(t.OriginX, 0) || math.IsNaN(t.OriginY) || math.IsInf(t.OriginY, 0) {
		problems = append(problems, "origin must be finite")
	}
	if !isColorValue(t.ColHeaderColor) {
		problems = append(problems, fmt.Sprintf("col header color %q is not a hex color", t.ColHeaderColor))
	}
	if !isColorValue(t.RowHeaderColor) {
		problems = append(problems, fmt.Sprintf("row header color %q is not a hex color", t.RowHeaderColor))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Origin returns the top-left corner of the generated table
func (t Table) Origin() model.Point {
	return model.Point{X: t.OriginX, Y: t.OriginY}
}

// HeaderColor returns the fill for the cell at row, col. Row 0 is the
// column header row, so the corner cell takes the column header color.
func (t Table) HeaderColor(row, col int) string {
	switch {
	case row == 0:
		return t.ColHeaderColor
	case col == 0:
		return t.RowHeaderColor
	default:
		return model.ColorWhite
	}
}

// BorderWidth returns the stroke width of divider boundary i out of count
// boundaries on one axis: outer edges use the border width, interior lines
// the grid width.
func (t Table) BorderWidth(i, count int) float64 {
	if i == 0 || i == count-1 {
		return t.OuterBorderWidth
	}
	return t.InnerGridWidth
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

func isColorValue(s string) bool {
	if s == model.ColorTransparent {
		return true
	}
	_, err := colorful.Hex(s)
	return err == nil
}

// WithSize returns a copy with the given row and column counts
func (t Table) WithSize(rows, cols int) Table {
	t.Rows, t.Cols = rows, cols
	return t
}

// WithCellSize returns a copy with the given cell dimensions
func (t Table) WithCellSize(width, height float64) Table {
	t.CellWidth, t.CellHeight = width, height
	return t
}

// WithHeaderColors returns a copy with the given header fills
func (t Table) WithHeaderColors(colHeader, rowHeader string) Table {
	t.ColHeaderColor, t.RowHeaderColor = colHeader, rowHeader
	return t
}

// WithBorders returns a copy with the given stroke widths
func (t Table) WithBorders(outer, inner float64) Table {
	t.OuterBorderWidth, t.InnerGridWidth = outer, inner
	return t
}

// WithOrigin returns a copy placed at x, y
func (t Table) WithOrigin(x, y float64) Table {
	t.OriginX, t.OriginY = x, y
	return t
}

// WithFont returns a copy whose text labels use the given font
func (t Table) WithFont(size float64, family int) Table {
	t.FontSize, t.FontFamily = size, family
	return t
}
