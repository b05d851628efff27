package canvas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/tsawler/gridtable/model"
)

// DefaultHostVersion is the plugin API version a Scene reports unless told
// otherwise
const DefaultHostVersion = "1.9.0"

// sceneType is the marker stored in the "type" field of scene files
const sceneType = "excalidraw"

// managedKeys are the element fields owned by model.Element. Any other keys
// in a scene file are carried through untouched.
var managedKeys = []string{
	"id", "type", "x", "y", "width", "height", "angle",
	"strokeColor", "backgroundColor", "fillStyle", "strokeWidth", "roughness",
	"groupIds", "isDeleted", "points", "text", "fontSize", "fontFamily", "customData",
}

// sceneFile is the on-disk layout of a scene
type sceneFile struct {
	Type     string                     `json:"type"`
	Version  int                        `json:"version"`
	Source   string                     `json:"source,omitempty"`
	Elements []json.RawMessage          `json:"elements"`
	AppState map[string]json.RawMessage `json:"appState,omitempty"`
	Files    json.RawMessage            `json:"files,omitempty"`
}

// Scene is an in-memory drawing document that implements Host. It reads and
// writes the Excalidraw JSON scene format, preserving element fields it does
// not model.
type Scene struct {
	mu sync.Mutex

	elements []*model.Element
	extra    map[string]map[string]json.RawMessage // element ID -> unmanaged fields
	selected []string

	version     int
	source      string
	appState    map[string]json.RawMessage
	files       json.RawMessage
	hostVersion string

	dirty bool
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{
		extra:       make(map[string]map[string]json.RawMessage),
		version:     2,
		source:      "gridtable",
		hostVersion: DefaultHostVersion,
	}
}

// LoadScene reads a scene file from disk
func LoadScene(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("canvas: open scene: %w", err)
	}
	defer f.Close()

	s, err := ReadScene(f)
	if err != nil {
		return nil, fmt.Errorf("canvas: read %s: %w", path, err)
	}
	return s, nil
}

// ReadScene decodes a scene from r
func ReadScene(r io.Reader) (*Scene, error) {
	var file sceneFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if file.Type != "" && file.Type != sceneType {
		return nil, fmt.Errorf("unsupported scene type %q", file.Type)
	}

	s := NewScene()
	if file.Version != 0 {
		s.version = file.Version
	}
	s.source = file.Source
	s.appState = file.AppState
	s.files = file.Files

	seen := make(map[string]bool, len(file.Elements))
	for i, raw := range file.Elements {
		var el model.Element
		if err := json.Unmarshal(raw, &el); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if el.ID == "" {
			return nil, fmt.Errorf("element %d: missing id", i)
		}
		if seen[el.ID] {
			return nil, fmt.Errorf("element %d (%q): %w", i, el.ID, ErrDuplicateElement)
		}
		seen[el.ID] = true

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		for _, k := range managedKeys {
			delete(fields, k)
		}
		if len(fields) > 0 {
			s.extra[el.ID] = fields
		}
		s.elements = append(s.elements, &el)
	}

	if raw, ok := file.AppState["selectedElementIds"]; ok {
		var ids map[string]bool
		if err := json.Unmarshal(raw, &ids); err != nil {
			return nil, fmt.Errorf("decode selection: %w", err)
		}
		// Selection follows document order
		for _, el := range s.elements {
			if ids[el.ID] && !el.IsDeleted {
				s.selected = append(s.selected, el.ID)
			}
		}
	}

	return s, nil
}

// WriteTo encodes the scene as indented JSON
func (s *Scene) WriteTo(w io.Writer) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := sceneFile{
		Type:     sceneType,
		Version:  s.version,
		Source:   s.source,
		Elements: make([]json.RawMessage, 0, len(s.elements)),
		AppState: make(map[string]json.RawMessage, len(s.appState)+1),
		Files:    s.files,
	}
	for k, v := range s.appState {
		file.AppState[k] = v
	}

	selection := make(map[string]bool, len(s.selected))
	for _, id := range s.selected {
		selection[id] = true
	}
	sel, err := json.Marshal(selection)
	if err != nil {
		return 0, err
	}
	file.AppState["selectedElementIds"] = sel

	for _, el := range s.elements {
		raw, err := s.encodeElement(el)
		if err != nil {
			return 0, fmt.Errorf("canvas: encode %q: %w", el.ID, err)
		}
		file.Elements = append(file.Elements, raw)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(file); err != nil {
		return 0, fmt.Errorf("canvas: encode scene: %w", err)
	}
	return buf.WriteTo(w)
}

// encodeElement merges the modelled fields over the preserved ones
func (s *Scene) encodeElement(el *model.Element) (json.RawMessage, error) {
	known, err := json.Marshal(el)
	if err != nil {
		return nil, err
	}
	extra := s.extra[el.ID]
	if len(extra) == 0 {
		return known, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := fields[k]; !ok {
			fields[k] = v
		}
	}
	return json.Marshal(fields)
}

// Save writes the scene to path, replacing the file atomically
func (s *Scene) Save(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".gridtable-*.tmp")
	if err != nil {
		return fmt.Errorf("canvas: save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := s.WriteTo(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("canvas: save: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("canvas: save: %w", err)
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
	return nil
}

// HostVersion implements Versioned
func (s *Scene) HostVersion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hostVersion
}

// SetHostVersion overrides the reported plugin API version
func (s *Scene) SetHostVersion(v string) {
	s.mu.Lock()
	s.hostVersion = v
	s.mu.Unlock()
}

// Dirty reports whether a commit changed the scene since it was loaded or
// last saved
func (s *Scene) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Select replaces the selection. Every ID must name a live element.
func (s *Scene) Select(ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if el := s.find(id); el == nil {
			return fmt.Errorf("select %q: %w", id, ErrUnknownElement)
		}
	}
	s.selected = append([]string(nil), ids...)
	return nil
}

// Selection returns the selected element IDs
func (s *Scene) Selection() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.selected...)
}

// Element returns a copy of the live element with the given ID
func (s *Scene) Element(id string) (*model.Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el := s.find(id)
	if el == nil {
		return nil, false
	}
	return el.Clone(), true
}

// Len returns the number of live elements
func (s *Scene) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, el := range s.elements {
		if !el.IsDeleted {
			n++
		}
	}
	return n
}

// SelectedElements implements Host
func (s *Scene) SelectedElements(ctx context.Context) ([]*model.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Element, 0, len(s.selected))
	for _, id := range s.selected {
		if el := s.find(id); el != nil {
			out = append(out, el.Clone())
		}
	}
	return out, nil
}

// Elements implements Host
func (s *Scene) Elements(ctx context.Context) ([]*model.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Element, 0, len(s.elements))
	for _, el := range s.elements {
		if !el.IsDeleted {
			out = append(out, el.Clone())
		}
	}
	return out, nil
}

// Commit implements Host. The batch is applied to a private copy which
// replaces the live elements only when every operation succeeded.
func (s *Scene) Commit(ctx context.Context, b *Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := make([]*model.Element, len(s.elements))
	index := make(map[string]int, len(s.elements))
	for i, el := range s.elements {
		work[i] = el.Clone()
		index[el.ID] = i
	}

	next, err := b.apply(work, index)
	if err != nil {
		return err
	}

	if !s.dirty && !sameElements(s.elements, next) {
		s.dirty = true
	}
	s.elements = next
	s.pruneSelection()
	return nil
}

// find returns the live element with the given ID. Callers hold s.mu.
func (s *Scene) find(id string) *model.Element {
	for _, el := range s.elements {
		if el.ID == id && !el.IsDeleted {
			return el
		}
	}
	return nil
}

// pruneSelection drops deleted elements from the selection. Callers hold s.mu.
func (s *Scene) pruneSelection() {
	kept := s.selected[:0]
	for _, id := range s.selected {
		if s.find(id) != nil {
			kept = append(kept, id)
		}
	}
	s.selected = kept
}

func sameElements(a, b []*model.Element) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
