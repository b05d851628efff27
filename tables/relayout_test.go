package tables

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/gridtable/canvas"
	"github.com/tsawler/gridtable/config"
	"github.com/tsawler/gridtable/font"
	"github.com/tsawler/gridtable/model"
)

// fixedMeasurer renders every rune 10 wide and every line 25 tall
var fixedMeasurer = font.MeasurerFunc(func(text string, face font.Face) font.Size {
	return font.Size{Width: float64(10 * utf8.RuneCountInString(text)), Height: 25}
})

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("el-%03d", n)
	}
}

func newGenerator() *Generator {
	g := NewGenerator(fixedMeasurer, nil)
	g.NewID = sequentialIDs()
	return g
}

func threeByThree() config.Table {
	return config.Default().WithSize(3, 3).WithCellSize(100, 50)
}

// generateInto creates a table on a fresh scene and returns both
func generateInto(t *testing.T, cfg config.Table) (*canvas.Scene, *Generated) {
	t.Helper()
	s := canvas.NewScene()
	gen, err := newGenerator().Generate(context.Background(), s, cfg)
	require.NoError(t, err)
	return s, gen
}

// classifyScene reads the current state of a table from the scene
func classifyScene(t *testing.T, s *canvas.Scene, tableID string) *Table {
	t.Helper()
	els, err := s.Elements(context.Background())
	require.NoError(t, err)
	tbl, err := Classify(tableID, els)
	require.NoError(t, err)
	return tbl
}

func cellBBox(t *testing.T, tbl *Table, row, col int) model.BBox {
	t.Helper()
	c, ok := tbl.CellAt(row, col)
	require.True(t, ok, "cell %d,%d", row, col)
	return c.Element().BoundingBox()
}

func rowDividerAt(t *testing.T, tbl *Table, boundary int) *model.Element {
	t.Helper()
	for _, d := range tbl.RowDividers {
		if d.Boundary() == boundary {
			return d.Element()
		}
	}
	t.Fatalf("no row divider at boundary %d", boundary)
	return nil
}

type failingHost struct {
	canvas.Host
	err error
}

func (h failingHost) Commit(context.Context, *canvas.Batch) error {
	return h.err
}

// ============================================================================
// Relayout Tests
// ============================================================================

func TestRelayoutRoundTrip(t *testing.T) {
	s, gen := generateInto(t, threeByThree())

	layout, err := NewRelayouter(fixedMeasurer, nil).Relayout(context.Background(), s, gen.TableID)
	require.NoError(t, err)
	assert.Empty(t, layout.Warnings)
	assert.Equal(t, []float64{50, 50, 50}, layout.Grid.RowHeights)
	assert.Equal(t, []float64{100, 100, 100}, layout.Grid.ColWidths)

	tbl := classifyScene(t, s, gen.TableID)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			want := model.NewBBox(float64(col*100), float64(row*50), 100, 50)
			assert.Equal(t, want, cellBBox(t, tbl, row, col), "cell %d,%d", row, col)
		}
	}
}

func TestRelayoutIsIdempotent(t *testing.T) {
	s, gen := generateInto(t, threeByThree().WithOrigin(12, 34))
	ctx := context.Background()
	before, err := s.Elements(ctx)
	require.NoError(t, err)

	r := NewRelayouter(fixedMeasurer, nil)
	for i := 0; i < 3; i++ {
		_, err := r.Relayout(ctx, s, gen.TableID)
		require.NoError(t, err)
	}

	after, err := s.Elements(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after, "relayout without edits must not change anything")
}

func TestRelayoutIsIdempotentWithFractions(t *testing.T) {
	s, gen := generateInto(t, config.Default().WithSize(4, 3).WithCellSize(33.3, 17.1).WithOrigin(0.1, 0.7))
	ctx := context.Background()
	before, err := s.Elements(ctx)
	require.NoError(t, err)

	_, err = NewRelayouter(fixedMeasurer, nil).Relayout(ctx, s, gen.TableID)
	require.NoError(t, err)

	after, err := s.Elements(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRelayoutDragPropagation(t *testing.T) {
	s, gen := generateInto(t, threeByThree())
	ctx := context.Background()

	require.NoError(t, canvas.MoveDivider(ctx, s, gen.TableID, model.PartRowDivider, 1, 80))

	layout, err := NewRelayouter(fixedMeasurer, nil).Relayout(ctx, s, gen.TableID)
	require.NoError(t, err)
	assert.Equal(t, []float64{80, 20, 50}, layout.Grid.RowHeights)
	assert.Equal(t, []float64{100, 100, 100}, layout.Grid.ColWidths, "columns untouched")

	tbl := classifyScene(t, s, gen.TableID)
	assert.Equal(t, 80.0, cellBBox(t, tbl, 0, 1).Height)
	assert.Equal(t, 80.0, cellBBox(t, tbl, 1, 0).Y)
	assert.Equal(t, 20.0, cellBBox(t, tbl, 1, 2).Height)
	assert.Equal(t, 80.0+20.0, rowDividerAt(t, tbl, 2).Y)
	assert.Equal(t, 150.0, rowDividerAt(t, tbl, 3).Y)

	// Every cell spans exactly between its neighbouring dividers
	inf, err := Infer(tbl)
	require.NoError(t, err)
	for row := 0; row < 3; row++ {
		gap := inf.RowDividers[row+1].Position() - inf.RowDividers[row].Position()
		for col := 0; col < 3; col++ {
			assert.Equal(t, gap, cellBBox(t, tbl, row, col).Height, "cell %d,%d", row, col)
		}
	}
}

func TestRelayoutStretchesDividers(t *testing.T) {
	s, gen := generateInto(t, threeByThree())
	ctx := context.Background()

	require.NoError(t, canvas.MoveDivider(ctx, s, gen.TableID, model.PartColDivider, 3, 420))
	_, err := NewRelayouter(fixedMeasurer, nil).Relayout(ctx, s, gen.TableID)
	require.NoError(t, err)

	tbl := classifyScene(t, s, gen.TableID)
	for _, d := range tbl.RowDividers {
		el := d.Element()
		assert.Equal(t, 0.0, el.X)
		assert.Equal(t, 420.0, el.Width)
		assert.Equal(t, []model.Point{{X: 0, Y: 0}, {X: 420, Y: 0}}, el.Points)
	}
	for _, d := range tbl.ColDividers {
		el := d.Element()
		assert.Equal(t, 0.0, el.Y)
		assert.Equal(t, 150.0, el.Height)
		assert.Equal(t, []model.Point{{X: 0, Y: 0}, {X: 0, Y: 150}}, el.Points)
	}
	assert.Equal(t, 220.0, cellBBox(t, tbl, 0, 2).Width)
}

func TestRelayoutCentersText(t *testing.T) {
	s, gen := generateInto(t, threeByThree())
	ctx := context.Background()

	tbl := classifyScene(t, s, gen.TableID)
	short, _ := tbl.LabelAt(1, 1)
	long, _ := tbl.LabelAt(2, 2)

	// Write text into two labels the way a user would
	b := canvas.NewBatch()
	b.SetText(short.Element().ID, "abcd")
	b.SetText(long.Element().ID, strings.Repeat("x", 15))
	require.NoError(t, s.Commit(ctx, b))

	_, err := NewRelayouter(fixedMeasurer, nil).Relayout(ctx, s, gen.TableID)
	require.NoError(t, err)

	tbl = classifyScene(t, s, gen.TableID)
	short, _ = tbl.LabelAt(1, 1)
	assert.Equal(t, 100.0+(100-40)/2.0, short.Element().X)
	assert.Equal(t, 50.0+(50-25)/2.0, short.Element().Y)

	// Wider than the cell: negative offset, no clamping
	long, _ = tbl.LabelAt(2, 2)
	assert.Equal(t, 200.0+(100-150)/2.0, long.Element().X)
	assert.Equal(t, "xxxxxxxxxxxxxxx", long.Element().Text, "content untouched")
}

func TestRelayoutRegroups(t *testing.T) {
	s, gen := generateInto(t, config.Default().WithSize(2, 2))
	ctx := context.Background()

	b := canvas.NewBatch()
	b.Group("stray", gen.Elements[0].ID, gen.Elements[3].ID)
	require.NoError(t, s.Commit(ctx, b))

	_, err := NewRelayouter(fixedMeasurer, nil).Relayout(ctx, s, gen.TableID)
	require.NoError(t, err)

	for _, el := range classifyScene(t, s, gen.TableID).Elements() {
		assert.Equal(t, []string{GroupID(gen.TableID)}, el.GroupIDs, el.ID)
	}
}

func TestRelayoutTableNotFound(t *testing.T) {
	s, _ := generateInto(t, threeByThree())
	ctx := context.Background()
	before, err := s.Elements(ctx)
	require.NoError(t, err)

	_, err = NewRelayouter(fixedMeasurer, nil).Relayout(ctx, s, "no-such-table")
	require.ErrorIs(t, err, ErrTableNotFound)

	after, err := s.Elements(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRelayoutMalformedWritesNothing(t *testing.T) {
	s, gen := generateInto(t, config.Default().WithSize(1, 1))
	ctx := context.Background()

	// Drop all but one col-divider
	tbl := classifyScene(t, s, gen.TableID)
	b := canvas.NewBatch()
	b.Delete(tbl.ColDividers[1].Element().ID)
	b.SetGeometry(tbl.Cells[0].Element().ID, model.Geometry{X: 999, Y: 999, Width: 1, Height: 1})
	require.NoError(t, s.Commit(ctx, b))

	_, err := NewRelayouter(fixedMeasurer, nil).Relayout(ctx, s, gen.TableID)
	require.ErrorIs(t, err, ErrMalformedTable)

	cell, _ := s.Element(tbl.Cells[0].Element().ID)
	assert.Equal(t, 999.0, cell.X, "nothing written on failure")
}

func TestRelayoutCommitFailure(t *testing.T) {
	s, gen := generateInto(t, threeByThree())
	boom := errors.New("host busy")

	_, err := NewRelayouter(fixedMeasurer, nil).Relayout(context.Background(), failingHost{Host: s, err: boom}, gen.TableID)
	assert.ErrorIs(t, err, boom)
}

func TestRelayoutMissingAndStrayParts(t *testing.T) {
	s, gen := generateInto(t, config.Default().WithSize(2, 2).WithCellSize(100, 50))
	ctx := context.Background()
	tbl := classifyScene(t, s, gen.TableID)

	cell, _ := tbl.CellAt(1, 1)
	label, _ := tbl.LabelAt(0, 1)
	stray := makeCell("stray", 5, 5, model.NewBBox(7, 7, 7, 7))
	stray.SetMeta(model.TableMeta{TableID: gen.TableID, Kind: model.PartCell, RowIndex: 5, ColIndex: 5})

	b := canvas.NewBatch()
	b.Delete(cell.Element().ID)
	b.Delete(label.Element().ID)
	b.Create(stray)
	require.NoError(t, s.Commit(ctx, b))

	layout, err := NewRelayouter(fixedMeasurer, nil).Relayout(ctx, s, gen.TableID)
	require.NoError(t, err)

	kinds := make(map[WarningKind]int)
	for _, w := range layout.Warnings {
		kinds[w.Kind]++
	}
	assert.Equal(t, map[WarningKind]int{WarnMissingCell: 1, WarnMissingLabel: 1, WarnOutOfGrid: 1}, kinds)

	got, _ := s.Element("stray")
	assert.Equal(t, model.NewBBox(7, 7, 7, 7), got.BoundingBox(), "out-of-grid cell untouched")
	assert.Equal(t, []string{GroupID(gen.TableID)}, got.GroupIDs, "but regrouped")
}

func TestPlanDoesNotModifyInput(t *testing.T) {
	els := []*model.Element{
		makeRowDivider("r0", 0, 0, 0, 10),
		makeRowDivider("r1", 1, 30, 0, 10),
		makeColDivider("c0", 0, 0, 0, 10),
		makeColDivider("c1", 1, 50, 0, 10),
		makeCell("cell", 0, 0, model.NewBBox(1, 1, 1, 1)),
	}

	layout, err := NewRelayouter(fixedMeasurer, nil).Plan(testTable, els)
	require.NoError(t, err)

	assert.Equal(t, 1.0, els[4].X)
	assert.Equal(t, 10.0, els[0].Width)
	require.Len(t, layout.Elements, 5)
	assert.Equal(t, model.NewBBox(0, 0, 50, 30), layout.Elements[4].BoundingBox())
	assert.Equal(t, 50.0, layout.Elements[0].Width)
}

// ============================================================================
// Generator Tests
// ============================================================================

func TestGenerateCreationOrder(t *testing.T) {
	gen, err := newGenerator().Build(config.Default().WithSize(2, 3))
	require.NoError(t, err)

	require.Len(t, gen.Elements, 2*2*3+3+4)
	assert.Equal(t, "el-001", gen.TableID)

	var kinds []model.PartKind
	for _, el := range gen.Elements {
		m, ok := el.Meta()
		require.True(t, ok)
		assert.Equal(t, gen.TableID, m.TableID)
		kinds = append(kinds, m.Kind)
	}
	assert.Equal(t, model.PartCell, kinds[0])
	assert.Equal(t, model.PartText, kinds[1])
	assert.Equal(t, model.PartRowDivider, kinds[12])
	assert.Equal(t, model.PartColDivider, kinds[15])
	assert.Equal(t, model.PartColDivider, kinds[18])
}

func TestGenerateDividers(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 3}, {4, 2}} {
		rows, cols := size[0], size[1]
		t.Run(fmt.Sprintf("%dx%d", rows, cols), func(t *testing.T) {
			gen, err := newGenerator().Build(config.Default().WithSize(rows, cols).WithCellSize(100, 50))
			require.NoError(t, err)

			tbl, err := Classify(gen.TableID, gen.Elements)
			require.NoError(t, err)
			require.Len(t, tbl.RowDividers, rows+1)
			require.Len(t, tbl.ColDividers, cols+1)

			for i, d := range tbl.RowDividers {
				assert.Equal(t, i, d.Boundary())
				assert.Equal(t, float64(i*50), d.Position())
				assert.Equal(t, float64(cols*100), d.Element().Width)
			}
			for j, d := range tbl.ColDividers {
				assert.Equal(t, j, d.Boundary())
				assert.Equal(t, float64(j*100), d.Position())
				assert.Equal(t, float64(rows*50), d.Element().Height)
			}

			inf, err := Infer(tbl)
			require.NoError(t, err)
			assert.Equal(t, gen.Grid, inf.Grid, "generation is the inverse of inference")
		})
	}
}

func TestGenerateBorderWidths(t *testing.T) {
	gen, err := newGenerator().Build(config.Default().WithSize(3, 2).WithBorders(4, 0.5))
	require.NoError(t, err)

	tbl, err := Classify(gen.TableID, gen.Elements)
	require.NoError(t, err)

	widths := make([]float64, 0, 4)
	for _, d := range tbl.RowDividers {
		widths = append(widths, d.Element().StrokeWidth)
	}
	assert.Equal(t, []float64{4, 0.5, 0.5, 4}, widths)

	first := tbl.ColDividers[0].Element()
	assert.Equal(t, model.ColorBlack, first.StrokeColor)
	assert.Equal(t, model.ColorTransparent, first.BackgroundColor)
}

func TestGenerateHeaderColors(t *testing.T) {
	cfg := config.Default().WithSize(3, 3).WithHeaderColors("#111111", "#222222")
	gen, err := newGenerator().Build(cfg)
	require.NoError(t, err)

	tbl, err := Classify(gen.TableID, gen.Elements)
	require.NoError(t, err)

	color := func(row, col int) string {
		c, ok := tbl.CellAt(row, col)
		require.True(t, ok)
		return c.Element().BackgroundColor
	}
	assert.Equal(t, "#111111", color(0, 0), "corner takes the column header color")
	assert.Equal(t, "#111111", color(0, 2))
	assert.Equal(t, "#222222", color(1, 0))
	assert.Equal(t, "#222222", color(2, 0))
	assert.Equal(t, model.ColorWhite, color(1, 1))

	cell, _ := tbl.CellAt(1, 1)
	assert.Equal(t, model.ColorTransparent, cell.Element().StrokeColor)
	assert.Equal(t, model.FillSolid, cell.Element().FillStyle)
	assert.Equal(t, 0, cell.Element().Roughness)
}

func TestGenerateLabels(t *testing.T) {
	gen, err := newGenerator().Build(threeByThree().WithFont(28, font.FamilyNormal))
	require.NoError(t, err)

	tbl, err := Classify(gen.TableID, gen.Elements)
	require.NoError(t, err)
	require.Len(t, tbl.Labels, 9)

	label, ok := tbl.LabelAt(1, 2)
	require.True(t, ok)
	el := label.Element()
	assert.Equal(t, "", el.Text)
	assert.Equal(t, 28.0, el.FontSize)
	assert.Equal(t, font.FamilyNormal, el.FontFamily)
	assert.Equal(t, 0.0, el.Width)
	assert.Equal(t, 25.0, el.Height)
	assert.Equal(t, 250.0, el.X)
	assert.Equal(t, 50.0+12.5, el.Y)
}

func TestGenerateGroupsAndIDs(t *testing.T) {
	g := NewGenerator(fixedMeasurer, nil)
	a, err := g.Build(config.Default())
	require.NoError(t, err)
	b, err := g.Build(config.Default())
	require.NoError(t, err)

	assert.NotEqual(t, a.TableID, b.TableID)
	assert.Equal(t, GroupID(a.TableID), a.GroupID)

	seen := make(map[string]bool)
	for _, el := range a.Elements {
		assert.False(t, seen[el.ID], "duplicate element id %s", el.ID)
		seen[el.ID] = true
		assert.Equal(t, []string{a.GroupID}, el.GroupIDs)
	}
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	s := canvas.NewScene()
	_, err := newGenerator().Generate(context.Background(), s, config.Default().WithSize(0, 3))
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Equal(t, 0, s.Len())
}

func TestGenerateCommitFailure(t *testing.T) {
	boom := errors.New("read-only")
	_, err := newGenerator().Generate(context.Background(), failingHost{Host: canvas.NewScene(), err: boom}, config.Default())
	assert.ErrorIs(t, err, boom)
}

func TestGroupID(t *testing.T) {
	assert.Equal(t, GroupID("abc"), GroupID("abc"))
	assert.NotEqual(t, GroupID("abc"), GroupID("abd"))
	assert.Len(t, NewID(), 36)

	gen, err := NewGenerator(font.NewMetricsMeasurer(), nil).Build(config.Default().WithSize(1, 1))
	require.NoError(t, err)
	assert.Len(t, gen.TableID, 36)
	assert.NotEqual(t, gen.TableID, gen.Elements[0].ID)
}

// ============================================================================
// Snapshot Tests
// ============================================================================

func TestSnapshot(t *testing.T) {
	gen, err := newGenerator().Build(config.Default().WithSize(2, 2).WithCellSize(100, 50))
	require.NoError(t, err)

	tbl, err := Classify(gen.TableID, gen.Elements)
	require.NoError(t, err)
	head, _ := tbl.LabelAt(0, 1)
	head.Element().Text = "Qty"
	body, _ := tbl.LabelAt(1, 1)
	body.Element().Text = "3"

	snap, warnings, err := Snapshot(gen.TableID, gen.Elements)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 2, snap.RowCount())
	assert.Equal(t, 2, snap.ColCount())
	assert.Equal(t, "|  | Qty |\n|---|---|\n|  | 3 |\n", snap.ToMarkdown())
	assert.True(t, snap.GetCell(0, 1).IsHeader)
	assert.Equal(t, model.NewBBox(100, 50, 100, 50), snap.GetCell(1, 1).BBox)

	_, _, err = Snapshot("missing", gen.Elements)
	assert.ErrorIs(t, err, ErrTableNotFound)
}
