// Package canvas defines the drawing document the table engine reads from
// and writes to, and provides an in-memory implementation backed by
// Excalidraw scene files.
//
// # Host
//
// [Host] is the only surface the engine needs: list the selection, list all
// elements, and commit a [Batch] of writes. A batch is applied completely or
// not at all, so a renderer never sees a half-updated table.
//
//	b := canvas.NewBatch()
//	b.SetGeometry(id, geometry)
//	b.Group(groupID, ids...)
//	err := host.Commit(ctx, b)
//
// # Scene
//
// [Scene] implements Host over a scene file:
//
//	scene, err := canvas.LoadScene("drawing.excalidraw")
//	// ... run the engine against scene ...
//	if scene.Dirty() {
//	    err = scene.Save("drawing.excalidraw")
//	}
//
// Fields the model does not know about are preserved on save. The selection
// is read from and written back to appState.selectedElementIds.
package canvas
