package font

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// faceKey uniquely identifies a measure face by family and size
type faceKey struct {
	family int
	size   float64
}

// OpenTypeMeasurer measures text with real glyph advances from the Go font
// family. Proportional canvas families map to Go Regular and the monospace
// family to Go Mono. Faces are parsed once and cached per size.
//
// A font.Face is not safe for concurrent use, so Measure serializes every
// lookup and measurement on one mutex. The measurer may be shared between
// goroutines.
type OpenTypeMeasurer struct {
	mu      sync.Mutex
	regular *opentype.Font
	mono    *opentype.Font
	faces   map[faceKey]font.Face
}

// NewOpenTypeMeasurer parses the embedded Go fonts
func NewOpenTypeMeasurer() (*OpenTypeMeasurer, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("font: parse Go Regular: %w", err)
	}
	mono, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("font: parse Go Mono: %w", err)
	}
	return &OpenTypeMeasurer{
		regular: regular,
		mono:    mono,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

// Measure implements Measurer
func (m *OpenTypeMeasurer) Measure(text string, face Face) Size {
	lines := splitLines(normalize(text))

	m.mu.Lock()
	defer m.mu.Unlock()

	ff, err := m.face(face)
	if err != nil {
		// Fall back to table metrics rather than report a zero size
		return NewMetricsMeasurer().Measure(text, face)
	}

	width := 0.0
	for _, line := range lines {
		adv := font.MeasureString(ff, line)
		if w := float64(adv) / 64; w > width {
			width = w
		}
	}
	return Size{
		Width:  width,
		Height: float64(len(lines)) * face.LineHeight(),
	}
}

// face returns a cached unhinted face. Hinting snaps advances to whole
// pixels, which would make widths depend on size in steps. m.mu must be held.
func (m *OpenTypeMeasurer) face(f Face) (font.Face, error) {
	key := faceKey{family: f.Family, size: f.SizeOrDefault()}
	if ff, ok := m.faces[key]; ok {
		return ff, nil
	}

	src := m.regular
	if f.Family == FamilyMonospace {
		src = m.mono
	}
	ff, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("font: new face: %w", err)
	}

	m.faces[key] = ff
	return ff, nil
}
