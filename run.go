package gridtable

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/tsawler/gridtable/canvas"
	"github.com/tsawler/gridtable/config"
	"github.com/tsawler/gridtable/model"
	"github.com/tsawler/gridtable/notify"
	"github.com/tsawler/gridtable/tables"
)

// Action is what a run did
type Action int

const (
	ActionCreate Action = iota
	ActionRelayout
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionRelayout:
		return "relayout"
	default:
		return "unknown"
	}
}

// Outcome describes a completed operation
type Outcome struct {
	Action   Action
	TableID  string
	Grid     *model.TableGrid
	Elements int // elements created or rewritten
	Warnings []Warning
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Run decides what to do from the host's selection: when the first selected
// element belongs to a table, that table is relaid out; otherwise a new
// table is created.
func (t *Tool) Run(ctx context.Context) (*Outcome, error) {
	if err := t.precondition(ctx); err != nil {
		return nil, err
	}

	selected, err := t.host.SelectedElements(ctx)
	if err != nil {
		return nil, t.fail(ctx, fmt.Errorf("read selection: %w", err))
	}
	if len(selected) > 0 {
		if meta, ok := selected[0].Meta(); ok {
			return t.relayout(ctx, meta.TableID)
		}
	}
	return t.create(ctx)
}

// Create generates a new table from the configured record.
func (t *Tool) Create(ctx context.Context) (*Outcome, error) {
	if err := t.precondition(ctx); err != nil {
		return nil, err
	}
	return t.create(ctx)
}

// Relayout rewrites the table with the given ID to fit its dividers.
func (t *Tool) Relayout(ctx context.Context, tableID string) (*Outcome, error) {
	if err := t.precondition(ctx); err != nil {
		return nil, err
	}
	return t.relayout(ctx, tableID)
}

// Fill writes text into the label at row, col and relays out the table so
// the new text is centered. Both changes are committed together.
func (t *Tool) Fill(ctx context.Context, tableID string, row, col int, text string) (*Outcome, error) {
	if err := t.precondition(ctx); err != nil {
		return nil, err
	}

	elements, err := t.host.Elements(ctx)
	if err != nil {
		return nil, t.fail(ctx, fmt.Errorf("read elements: %w", err))
	}

	work := make([]*model.Element, len(elements))
	for i, el := range elements {
		work[i] = el.Clone()
	}
	tbl, err := tables.Classify(tableID, work)
	if err != nil {
		return nil, t.fail(ctx, err)
	}
	label, ok := tbl.LabelAt(row, col)
	if !ok {
		return nil, t.fail(ctx, fmt.Errorf("%w: no text label at row %d, column %d of table %q",
			canvas.ErrUnknownElement, row, col, tableID))
	}
	label.Element().Text = text

	layout, err := tables.NewRelayouter(t.options.measurer, t.options.logger).Plan(tableID, work)
	if err != nil {
		return nil, t.fail(ctx, err)
	}
	b := layout.Batch()
	b.SetText(label.Element().ID, text)
	if err := t.host.Commit(ctx, b); err != nil {
		return nil, t.fail(ctx, fmt.Errorf("commit: %w", err))
	}

	return t.layoutOutcome(ctx, layout), nil
}

// TableInfo summarizes one table found on the host
type TableInfo struct {
	ID         string
	Rows, Cols int
	Elements   int
	Bounds     model.BBox
	Regularity float64
	Warnings   []Warning
	Err        error // set when the table cannot be inferred
}

// Tables lists every table on the host in order of first appearance.
func (t *Tool) Tables(ctx context.Context) ([]TableInfo, error) {
	elements, err := t.host.Elements(ctx)
	if err != nil {
		return nil, fmt.Errorf("read elements: %w", err)
	}

	var out []TableInfo
	for _, id := range tables.TableIDs(elements) {
		info := TableInfo{ID: id}
		tbl, err := tables.Classify(id, elements)
		if err != nil {
			info.Err = err
			out = append(out, info)
			continue
		}
		info.Elements = tbl.Len()
		info.Warnings = tbl.Warnings

		inf, err := tables.Infer(tbl)
		if err != nil {
			info.Err = err
		} else {
			info.Rows = inf.Grid.RowCount()
			info.Cols = inf.Grid.ColCount()
			info.Bounds = inf.Grid.BBox()
			info.Regularity = inf.Regularity()
			info.Warnings = append(info.Warnings, inf.Warnings...)
		}
		out = append(out, info)
	}
	return out, nil
}

// Snapshot reads a table's content for export.
func (t *Tool) Snapshot(ctx context.Context, tableID string) (*model.Table, []Warning, error) {
	elements, err := t.host.Elements(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("read elements: %w", err)
	}
	return tables.Snapshot(tableID, elements)
}

// ============================================================================
// Internals
// ============================================================================

func (t *Tool) create(ctx context.Context) (*Outcome, error) {
	gen, err := tables.NewGenerator(t.options.measurer, t.options.logger).Generate(ctx, t.host, t.options.table)
	if err != nil {
		return nil, t.fail(ctx, err)
	}

	t.options.notifier.Notify(ctx, notify.Info(notify.MsgTableCreated))
	t.options.logger.Info("table created",
		"table_id", gen.TableID,
		"rows", gen.Grid.RowCount(),
		"cols", gen.Grid.ColCount(),
		"elements", len(gen.Elements))

	return &Outcome{
		Action:   ActionCreate,
		TableID:  gen.TableID,
		Grid:     gen.Grid,
		Elements: len(gen.Elements),
	}, nil
}

func (t *Tool) relayout(ctx context.Context, tableID string) (*Outcome, error) {
	layout, err := tables.NewRelayouter(t.options.measurer, t.options.logger).Relayout(ctx, t.host, tableID)
	if err != nil {
		return nil, t.fail(ctx, err)
	}
	return t.layoutOutcome(ctx, layout), nil
}

// layoutOutcome sends the one notice for a committed relayout. Warnings
// only change its wording; the details go to the log.
func (t *Tool) layoutOutcome(ctx context.Context, layout *tables.Layout) *Outcome {
	if n := len(layout.Warnings); n > 0 {
		t.options.notifier.Notify(ctx, notify.Warn(notify.MsgTableWarnings, n))
		for _, w := range layout.Warnings {
			t.options.logger.Warn("relayout warning", "table_id", layout.TableID, "kind", w.Kind.String(), "message", w.Message)
		}
	} else {
		t.options.notifier.Notify(ctx, notify.Info(notify.MsgTableUpdated))
	}
	t.options.logger.Info("table relaid out",
		"table_id", layout.TableID,
		"rows", layout.Grid.RowCount(),
		"cols", layout.Grid.ColCount(),
		"warnings", len(layout.Warnings))

	return &Outcome{
		Action:   ActionRelayout,
		TableID:  layout.TableID,
		Grid:     layout.Grid,
		Elements: len(layout.Elements),
		Warnings: layout.Warnings,
	}
}

// precondition checks the host version when the host reports one
func (t *Tool) precondition(ctx context.Context) error {
	if err := checkHostVersion(t.host, t.options.minHostVersion); err != nil {
		return t.fail(ctx, err)
	}
	return nil
}

func checkHostVersion(h canvas.Host, minVersion string) error {
	versioned, ok := h.(canvas.Versioned)
	if !ok || minVersion == "" {
		return nil
	}

	have, want := canonical(versioned.HostVersion()), canonical(minVersion)
	if !semver.IsValid(want) {
		return fmt.Errorf("gridtable: invalid minimum host version %q", minVersion)
	}
	if !semver.IsValid(have) {
		return fmt.Errorf("%w: host version %q is not a version", tables.ErrPrecondition, versioned.HostVersion())
	}
	if semver.Compare(have, want) < 0 {
		return fmt.Errorf("%w: host version %s is older than %s", tables.ErrPrecondition, have, want)
	}
	return nil
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// fail reports err to the user and returns it
func (t *Tool) fail(ctx context.Context, err error) error {
	t.options.notifier.Notify(ctx, noticeFor(err))
	t.options.logger.Error("operation failed", "error", err)
	return err
}

func noticeFor(err error) notify.Notice {
	switch {
	case errors.Is(err, tables.ErrPrecondition):
		return notify.Error(notify.MsgPrecondition)
	case errors.Is(err, tables.ErrTableNotFound):
		return notify.Error(notify.MsgTableNotFound)
	case errors.Is(err, tables.ErrMalformedTable):
		return notify.Error(notify.MsgMalformedTable, err.Error())
	case errors.Is(err, config.ErrInvalidConfig):
		return notify.Error(notify.MsgInvalidConfig, err.Error())
	default:
		return notify.Error(notify.MsgFailed, err.Error())
	}
}
