package canvas

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/gridtable/model"
)

const sampleScene = `{
  "type": "excalidraw",
  "version": 2,
  "source": "https://excalidraw.com",
  "elements": [
    {"id": "a", "type": "rectangle", "x": 0, "y": 0, "width": 100, "height": 50,
     "angle": 0, "strokeColor": "transparent", "backgroundColor": "#a5d8ff",
     "fillStyle": "solid", "strokeWidth": 1, "roughness": 0, "groupIds": ["g"],
     "seed": 1234, "versionNonce": 99,
     "customData": {"tableId": "t1", "type": "cell", "rowIndex": 0, "colIndex": 0}},
    {"id": "b", "type": "line", "x": 0, "y": 50, "width": 100, "height": 0,
     "angle": 0, "strokeColor": "#000000", "backgroundColor": "transparent",
     "fillStyle": "solid", "strokeWidth": 1, "roughness": 0, "groupIds": ["g"],
     "points": [[0, 0], [100, 0]],
     "customData": {"tableId": "t1", "type": "row-divider", "rowIndex": 1}},
    {"id": "c", "type": "text", "x": 10, "y": 10, "width": 0, "height": 25,
     "angle": 0, "strokeColor": "#000000", "backgroundColor": "transparent",
     "fillStyle": "solid", "strokeWidth": 1, "roughness": 0, "groupIds": [],
     "text": "", "fontSize": 20, "fontFamily": 1, "isDeleted": true}
  ],
  "appState": {"viewBackgroundColor": "#ffffff", "selectedElementIds": {"b": true, "a": true}},
  "files": {}
}`

func loadSample(t *testing.T) *Scene {
	t.Helper()
	s, err := ReadScene(strings.NewReader(sampleScene))
	require.NoError(t, err)
	return s
}

func TestReadScene(t *testing.T) {
	s := loadSample(t)
	ctx := context.Background()

	els, err := s.Elements(ctx)
	require.NoError(t, err)
	require.Len(t, els, 2, "deleted elements are not listed")
	assert.Equal(t, 2, s.Len())

	line := els[1]
	assert.Equal(t, model.ElementTypeLine, line.Type)
	assert.Equal(t, []model.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}, line.Points)

	m, ok := line.Meta()
	require.True(t, ok)
	assert.Equal(t, model.TableMeta{TableID: "t1", Kind: model.PartRowDivider, RowIndex: 1, ColIndex: -1}, m)

	// Selection follows document order, not JSON key order
	assert.Equal(t, []string{"a", "b"}, s.Selection())
	assert.False(t, s.Dirty())
}

func TestReadSceneErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "{"},
		{"wrong type", `{"type": "tldraw", "elements": []}`},
		{"missing id", `{"type": "excalidraw", "elements": [{"type": "line"}]}`},
		{"duplicate id", `{"type": "excalidraw", "elements": [{"id": "x"}, {"id": "x"}]}`},
		{"bad points", `{"type": "excalidraw", "elements": [{"id": "x", "points": [[1]]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadScene(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestSceneWritePreservesUnknownFields(t *testing.T) {
	s := loadSample(t)

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)

	var out struct {
		Source   string                     `json:"source"`
		Elements []map[string]any           `json:"elements"`
		AppState map[string]json.RawMessage `json:"appState"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "https://excalidraw.com", out.Source)
	require.Len(t, out.Elements, 3, "deleted elements stay in the file")
	assert.EqualValues(t, 1234, out.Elements[0]["seed"])
	assert.EqualValues(t, 99, out.Elements[0]["versionNonce"])
	assert.Contains(t, out.AppState, "viewBackgroundColor")

	var sel map[string]bool
	require.NoError(t, json.Unmarshal(out.AppState["selectedElementIds"], &sel))
	assert.Equal(t, map[string]bool{"a": true, "b": true}, sel)
}

func TestSceneSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawing.excalidraw")

	s := NewScene()
	b := NewBatch()
	b.Create(model.NewRectangle("r1", model.NewBBox(1, 2, 3, 4), model.Style{FillStyle: model.FillSolid}))
	require.NoError(t, s.Commit(context.Background(), b))
	require.NoError(t, s.Select("r1"))
	assert.True(t, s.Dirty())

	require.NoError(t, s.Save(path))
	assert.False(t, s.Dirty())

	loaded, err := LoadScene(path)
	require.NoError(t, err)
	el, ok := loaded.Element("r1")
	require.True(t, ok)
	assert.Equal(t, model.NewBBox(1, 2, 3, 4), el.BoundingBox())
	assert.Equal(t, []string{"r1"}, loaded.Selection())

	_, err = LoadScene(filepath.Join(t.TempDir(), "missing.excalidraw"))
	assert.Error(t, err)
}

func TestSceneCommitIsAtomic(t *testing.T) {
	s := loadSample(t)
	ctx := context.Background()

	b := NewBatch()
	b.SetGeometry("a", model.Geometry{X: 500, Y: 500, Width: 1, Height: 1})
	b.SetGroups("b", []string{"other"})
	b.SetGeometry("missing", model.Geometry{})

	err := s.Commit(ctx, b)
	require.ErrorIs(t, err, ErrUnknownElement)

	a, _ := s.Element("a")
	assert.Equal(t, 0.0, a.X, "failed batch must not leave partial writes")
	line, _ := s.Element("b")
	assert.Equal(t, []string{"g"}, line.GroupIDs)
	assert.False(t, s.Dirty())
}

func TestSceneCommitOps(t *testing.T) {
	s := loadSample(t)
	ctx := context.Background()

	b := NewBatch()
	b.Create(model.NewText("n1", "hi", model.NewBBox(0, 0, 10, 25), model.Style{FontSize: 20, FontFamily: 1}))
	b.SetMetadata("n1", model.TableMeta{TableID: "t1", Kind: model.PartText, RowIndex: 0, ColIndex: 0})
	b.Group("g2", "a", "n1")
	b.Delete("b")
	assert.Equal(t, 5, b.Len())

	require.NoError(t, s.Commit(ctx, b))
	assert.True(t, s.Dirty())

	n1, ok := s.Element("n1")
	require.True(t, ok)
	assert.Equal(t, []string{"g2"}, n1.GroupIDs)
	m, ok := n1.Meta()
	require.True(t, ok)
	assert.Equal(t, model.PartText, m.Kind)

	_, ok = s.Element("b")
	assert.False(t, ok, "deleted element is gone")
	assert.Equal(t, []string{"a"}, s.Selection(), "deleted element leaves the selection")

	dup := NewBatch()
	dup.Create(model.NewRectangle("a", model.BBox{}, model.Style{}))
	assert.ErrorIs(t, s.Commit(ctx, dup), ErrDuplicateElement)
}

func TestSceneCommitNoChangeStaysClean(t *testing.T) {
	s := loadSample(t)

	a, _ := s.Element("a")
	b := NewBatch()
	b.SetGeometry("a", a.Geometry())
	b.SetGroups("a", a.GroupIDs)

	require.NoError(t, s.Commit(context.Background(), b))
	assert.False(t, s.Dirty())
}

func TestSceneContextCancelled(t *testing.T) {
	s := loadSample(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Elements(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Commit(ctx, NewBatch()), context.Canceled)
}

func TestSceneSelect(t *testing.T) {
	s := loadSample(t)

	require.NoError(t, s.Select("b"))
	sel, err := s.SelectedElements(context.Background())
	require.NoError(t, err)
	require.Len(t, sel, 1)
	assert.Equal(t, "b", sel[0].ID)

	assert.ErrorIs(t, s.Select("c"), ErrUnknownElement, "deleted elements cannot be selected")
	assert.Equal(t, []string{"b"}, s.Selection())
}

func TestMoveDivider(t *testing.T) {
	s := loadSample(t)
	ctx := context.Background()

	require.NoError(t, MoveDivider(ctx, s, "t1", model.PartRowDivider, 1, 80))
	line, _ := s.Element("b")
	assert.Equal(t, 80.0, line.Y)
	assert.Equal(t, 0.0, line.X)

	err := MoveDivider(ctx, s, "t1", model.PartRowDivider, 7, 80)
	assert.ErrorIs(t, err, ErrUnknownElement)

	err = MoveDivider(ctx, s, "t1", model.PartCell, 0, 80)
	assert.Error(t, err)
}

func TestOpKindString(t *testing.T) {
	assert.Equal(t, "set-geometry", OpSetGeometry.String())
	assert.Equal(t, "unknown", OpKind(99).String())
}

func TestHostVersion(t *testing.T) {
	s := NewScene()
	var v Versioned = s
	assert.Equal(t, DefaultHostVersion, v.HostVersion())
	s.SetHostVersion("1.2.0")
	assert.Equal(t, "1.2.0", v.HostVersion())
}

func TestSceneSetText(t *testing.T) {
	s := NewScene()
	ctx := context.Background()

	b := NewBatch()
	b.Create(model.NewText("t", "", model.NewBBox(0, 0, 0, 25), model.Style{FontSize: 20}))
	b.SetText("t", "hello")
	require.NoError(t, s.Commit(ctx, b))

	el, _ := s.Element("t")
	assert.Equal(t, "hello", el.Text)

	b = NewBatch()
	b.Create(model.NewRectangle("r", model.BBox{}, model.Style{}))
	b.SetText("r", "nope")
	assert.Error(t, s.Commit(ctx, b))
	_, ok := s.Element("r")
	assert.False(t, ok, "failed batch creates nothing")
}
