package font

import "golang.org/x/text/unicode/norm"

// Canvas font families, numbered as in the Excalidraw scene format
const (
	FamilyHandDrawn = 1 // Virgil
	FamilyNormal    = 2 // Helvetica
	FamilyMonospace = 3 // Cascadia
)

// DefaultSize is the font size used when an element carries none
const DefaultSize = 20

// lineHeightFactor is the canvas line height as a multiple of font size
const lineHeightFactor = 1.25

// Face selects the font a string is rendered with
type Face struct {
	Family int
	Size   float64
}

// SizeOrDefault returns the face size, falling back to DefaultSize
func (f Face) SizeOrDefault() float64 {
	if f.Size <= 0 {
		return DefaultSize
	}
	return f.Size
}

// LineHeight returns the height of one rendered line
func (f Face) LineHeight() float64 {
	return f.SizeOrDefault() * lineHeightFactor
}

// Size is the rendered extent of a string
type Size struct {
	Width  float64
	Height float64
}

// Measurer returns the rendered size of text in a face. An empty string
// measures zero wide and one line tall.
type Measurer interface {
	Measure(text string, face Face) Size
}

// MeasurerFunc adapts a function to the Measurer interface
type MeasurerFunc func(text string, face Face) Size

// Measure implements Measurer
func (f MeasurerFunc) Measure(text string, face Face) Size {
	return f(text, face)
}

// normalize converts text to NFC so composed and decomposed input measure
// the same
func normalize(s string) string {
	return norm.NFC.String(s)
}
