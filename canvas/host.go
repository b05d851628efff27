package canvas

import (
	"context"
	"errors"

	"github.com/tsawler/gridtable/model"
)

var (
	// ErrUnknownElement is returned when a batch references an element the
	// host does not hold
	ErrUnknownElement = errors.New("canvas: unknown element")

	// ErrDuplicateElement is returned when a batch creates an element whose
	// ID is already taken
	ErrDuplicateElement = errors.New("canvas: duplicate element id")
)

// Host is the drawing document the table engine works against. Reads
// return copies; all writes go through a single Batch so the document is
// never observed half-updated.
type Host interface {
	// SelectedElements returns the currently selected elements in
	// selection order
	SelectedElements(ctx context.Context) ([]*model.Element, error)

	// Elements returns every live element in the document
	Elements(ctx context.Context) ([]*model.Element, error)

	// Commit applies every operation in the batch, or none of them
	Commit(ctx context.Context, b *Batch) error
}

// Versioned is implemented by hosts that report their plugin API version.
// Versions use semantic versioning, with or without a leading "v".
type Versioned interface {
	HostVersion() string
}
