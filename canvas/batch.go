package canvas

import (
	"fmt"

	"github.com/tsawler/gridtable/model"
)

// OpKind identifies a batch operation
type OpKind int

const (
	OpCreate OpKind = iota
	OpSetGeometry
	OpSetMetadata
	OpSetGroups
	OpDelete
	OpSetText
)

func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpSetGeometry:
		return "set-geometry"
	case OpSetMetadata:
		return "set-metadata"
	case OpSetGroups:
		return "set-groups"
	case OpDelete:
		return "delete"
	case OpSetText:
		return "set-text"
	default:
		return "unknown"
	}
}

// Op is a single recorded write
type Op struct {
	Kind     OpKind
	ID       string
	Element  *model.Element // OpCreate
	Geometry model.Geometry // OpSetGeometry
	Meta     model.TableMeta
	Groups   []string
	Text     string
}

// Batch collects writes to apply to a Host in one commit. Operations are
// applied in the order they were recorded.
type Batch struct {
	ops []Op
}

// NewBatch creates an empty batch
func NewBatch() *Batch {
	return &Batch{}
}

// Create records a new element. The element is copied.
func (b *Batch) Create(e *model.Element) {
	b.ops = append(b.ops, Op{Kind: OpCreate, ID: e.ID, Element: e.Clone()})
}

// SetGeometry records a position/extent change
func (b *Batch) SetGeometry(id string, g model.Geometry) {
	if g.Points != nil {
		g.Points = append([]model.Point(nil), g.Points...)
	}
	b.ops = append(b.ops, Op{Kind: OpSetGeometry, ID: id, Geometry: g})
}

// SetMetadata records a table metadata change
func (b *Batch) SetMetadata(id string, m model.TableMeta) {
	b.ops = append(b.ops, Op{Kind: OpSetMetadata, ID: id, Meta: m})
}

// SetGroups replaces the group membership of one element
func (b *Batch) SetGroups(id string, groups []string) {
	b.ops = append(b.ops, Op{Kind: OpSetGroups, ID: id, Groups: append([]string(nil), groups...)})
}

// Group makes the elements a single unit under groupID, replacing any
// previous membership
func (b *Batch) Group(groupID string, ids ...string) {
	for _, id := range ids {
		b.SetGroups(id, []string{groupID})
	}
}

// SetText records a change to a text element's content
func (b *Batch) SetText(id, text string) {
	b.ops = append(b.ops, Op{Kind: OpSetText, ID: id, Text: text})
}

// Delete records the removal of an element
func (b *Batch) Delete(id string) {
	b.ops = append(b.ops, Op{Kind: OpDelete, ID: id})
}

// Ops returns the recorded operations
func (b *Batch) Ops() []Op {
	return b.ops
}

// Len returns the number of recorded operations
func (b *Batch) Len() int {
	return len(b.ops)
}

// Empty reports whether nothing was recorded
func (b *Batch) Empty() bool {
	return len(b.ops) == 0
}

// apply runs the batch against an element index. The index must be a
// private copy: on error it is left partially modified and the caller
// discards it.
func (b *Batch) apply(elements []*model.Element, index map[string]int) ([]*model.Element, error) {
	for i, op := range b.ops {
		if op.Kind == OpCreate {
			if _, ok := index[op.ID]; ok || op.ID == "" {
				return nil, fmt.Errorf("op %d (%s %q): %w", i, op.Kind, op.ID, ErrDuplicateElement)
			}
			index[op.ID] = len(elements)
			elements = append(elements, op.Element.Clone())
			continue
		}

		pos, ok := index[op.ID]
		if !ok || elements[pos].IsDeleted {
			return nil, fmt.Errorf("op %d (%s %q): %w", i, op.Kind, op.ID, ErrUnknownElement)
		}
		el := elements[pos]

		switch op.Kind {
		case OpSetGeometry:
			el.SetGeometry(op.Geometry)
		case OpSetMetadata:
			el.SetMeta(op.Meta)
		case OpSetGroups:
			el.GroupIDs = append([]string(nil), op.Groups...)
		case OpDelete:
			el.IsDeleted = true
		case OpSetText:
			if el.Type != model.ElementTypeText {
				return nil, fmt.Errorf("op %d (%s %q): element is a %s, not text", i, op.Kind, op.ID, el.Type)
			}
			el.Text = op.Text
		}
	}
	return elements, nil
}
