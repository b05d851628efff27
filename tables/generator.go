package tables

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tsawler/gridtable/canvas"
	"github.com/tsawler/gridtable/config"
	"github.com/tsawler/gridtable/font"
	"github.com/tsawler/gridtable/model"
)

// Generator materializes new tables from a configuration record. It is the
// inverse of Infer: rows+1 row-dividers and cols+1 col-dividers at the cell
// boundaries, one cell and one empty text label per grid position.
type Generator struct {
	measurer font.Measurer
	logger   *slog.Logger

	// NewID allocates element and table identifiers
	NewID func() string
}

// NewGenerator creates a generator. A nil logger discards output.
func NewGenerator(m font.Measurer, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Generator{measurer: m, logger: logger, NewID: NewID}
}

// Generated describes a newly built table
type Generated struct {
	TableID string
	GroupID string
	Grid    *model.TableGrid

	// Elements in creation order: for each position (row-major) the cell
	// then its label, then row-dividers top to bottom, then col-dividers
	// left to right
	Elements []*model.Element
}

// Build creates the elements of a new table without touching any host.
// The configuration must pass Validate.
func (g *Generator) Build(cfg config.Table) (*Generated, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tableID := g.NewID()
	grid := model.NewUniformGrid(cfg.Origin(), cfg.Rows, cfg.Cols, cfg.CellWidth, cfg.CellHeight)
	out := &Generated{
		TableID:  tableID,
		GroupID:  GroupID(tableID),
		Grid:     grid,
		Elements: make([]*model.Element, 0, 2*cfg.Rows*cfg.Cols+cfg.Rows+cfg.Cols+2),
	}

	rowEdges := grid.RowBoundaries()
	colEdges := grid.ColBoundaries()
	face := font.Face{Family: cfg.FontFamily, Size: cfg.FontSize}
	label := g.measurer.Measure("", face)

	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Cols; col++ {
			box := cellBox(rowEdges, colEdges, row, col)

			cell := model.NewRectangle(g.NewID(), box, model.Style{
				StrokeColor:     model.ColorTransparent,
				BackgroundColor: cfg.HeaderColor(row, col),
				FillStyle:       model.FillSolid,
				StrokeWidth:     1,
			})
			cell.SetMeta(model.TableMeta{TableID: tableID, Kind: model.PartCell, RowIndex: row, ColIndex: col})

			origin := box.CenterOrigin(label.Width, label.Height)
			text := model.NewText(g.NewID(), "", model.NewBBox(origin.X, origin.Y, label.Width, label.Height), model.Style{
				StrokeColor:     model.ColorBlack,
				BackgroundColor: model.ColorTransparent,
				FillStyle:       model.FillSolid,
				StrokeWidth:     1,
				FontSize:        cfg.FontSize,
				FontFamily:      cfg.FontFamily,
			})
			text.SetMeta(model.TableMeta{TableID: tableID, Kind: model.PartText, RowIndex: row, ColIndex: col})

			out.Elements = append(out.Elements, cell, text)
		}
	}

	width, height := extent(colEdges), extent(rowEdges)
	left, top := colEdges[0], rowEdges[0]

	for i, y := range rowEdges {
		line := model.NewLine(g.NewID(), model.Point{X: left, Y: y}, model.Point{X: left + width, Y: y},
			dividerStyle(cfg.BorderWidth(i, len(rowEdges))))
		line.SetGeometry(rowDividerGeometry(left, y, width))
		line.SetMeta(model.TableMeta{TableID: tableID, Kind: model.PartRowDivider, RowIndex: i})
		out.Elements = append(out.Elements, line)
	}
	for j, x := range colEdges {
		line := model.NewLine(g.NewID(), model.Point{X: x, Y: top}, model.Point{X: x, Y: top + height},
			dividerStyle(cfg.BorderWidth(j, len(colEdges))))
		line.SetGeometry(colDividerGeometry(x, top, height))
		line.SetMeta(model.TableMeta{TableID: tableID, Kind: model.PartColDivider, ColIndex: j})
		out.Elements = append(out.Elements, line)
	}

	for _, el := range out.Elements {
		el.GroupIDs = []string{out.GroupID}
	}
	return out, nil
}

// Generate builds a new table and creates it on the host in a single batch
func (g *Generator) Generate(ctx context.Context, h canvas.Host, cfg config.Table) (*Generated, error) {
	gen, err := g.Build(cfg)
	if err != nil {
		return nil, err
	}

	b := canvas.NewBatch()
	for _, el := range gen.Elements {
		b.Create(el)
	}
	if err := h.Commit(ctx, b); err != nil {
		return nil, fmt.Errorf("tables: commit new table: %w", err)
	}

	g.logger.Debug("table generated",
		"table_id", gen.TableID,
		"rows", cfg.Rows,
		"cols", cfg.Cols,
		"elements", len(gen.Elements))
	return gen, nil
}

func dividerStyle(width float64) model.Style {
	return model.Style{
		StrokeColor:     model.ColorBlack,
		BackgroundColor: model.ColorTransparent,
		FillStyle:       model.FillSolid,
		StrokeWidth:     width,
	}
}
