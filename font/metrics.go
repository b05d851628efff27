package font

import (
	"strings"
	"unicode"
)

// MetricsMeasurer measures text from fixed per-glyph advance widths (in
// 1000ths of an em). It needs no font files, which makes its results
// reproducible across machines.
type MetricsMeasurer struct {
	// Width used for runes missing from the table
	DefaultWidth float64
}

// NewMetricsMeasurer creates a measurer backed by the standard width tables
func NewMetricsMeasurer() *MetricsMeasurer {
	return &MetricsMeasurer{DefaultWidth: 500}
}

// Measure implements Measurer
func (m *MetricsMeasurer) Measure(text string, face Face) Size {
	lines := splitLines(normalize(text))
	width := 0.0
	for _, line := range lines {
		if w := m.lineWidth(line, face); w > width {
			width = w
		}
	}
	return Size{
		Width:  width,
		Height: float64(len(lines)) * face.LineHeight(),
	}
}

// lineWidth calculates the advance of a single line
func (m *MetricsMeasurer) lineWidth(line string, face Face) float64 {
	widths := widthsFor(face.Family)
	total := 0.0
	for _, r := range line {
		total += m.runeWidth(widths, r)
	}
	return total * face.SizeOrDefault() / 1000
}

func (m *MetricsMeasurer) runeWidth(widths map[rune]float64, r rune) float64 {
	if w, ok := widths[r]; ok {
		return w
	}
	if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) {
		return 1000 // CJK glyphs are full-width
	}
	return m.DefaultWidth
}

// widthsFor picks the table for a canvas font family. The hand-drawn family
// has no published metrics; Helvetica is the closest proportional match.
func widthsFor(family int) map[rune]float64 {
	if family == FamilyMonospace {
		return courierWidths
	}
	return helveticaWidths
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

// Helvetica widths (in 1000ths of em) - simplified version
// Only includes common ASCII characters
var helveticaWidths = map[rune]float64{
	' ':  278,
	'!':  278,
	'"':  355,
	'#':  556,
	'$':  556,
	'%':  889,
	'&':  667,
	'\'': 191,
	'(':  333,
	')':  333,
	'*':  389,
	'+':  584,
	',':  278,
	'-':  333,
	'.':  278,
	'/':  278,
	'0':  556,
	'1':  556,
	'2':  556,
	'3':  556,
	'4':  556,
	'5':  556,
	'6':  556,
	'7':  556,
	'8':  556,
	'9':  556,
	':':  278,
	';':  278,
	'<':  584,
	'=':  584,
	'>':  584,
	'?':  556,
	'@':  1015,
	'A':  667,
	'B':  667,
	'C':  722,
	'D':  722,
	'E':  667,
	'F':  611,
	'G':  778,
	'H':  722,
	'I':  278,
	'J':  500,
	'K':  667,
	'L':  556,
	'M':  833,
	'N':  722,
	'O':  778,
	'P':  667,
	'Q':  778,
	'R':  722,
	'S':  667,
	'T':  611,
	'U':  722,
	'V':  667,
	'W':  944,
	'X':  667,
	'Y':  667,
	'Z':  611,
	'[':  278,
	'\\': 278,
	']':  278,
	'^':  469,
	'_':  556,
	'`':  333,
	'a':  556,
	'b':  556,
	'c':  500,
	'd':  556,
	'e':  556,
	'f':  278,
	'g':  556,
	'h':  556,
	'i':  222,
	'j':  222,
	'k':  500,
	'l':  222,
	'm':  833,
	'n':  556,
	'o':  556,
	'p':  556,
	'q':  556,
	'r':  333,
	's':  500,
	't':  278,
	'u':  556,
	'v':  500,
	'w':  722,
	'x':  500,
	'y':  500,
	'z':  500,
	'{':  334,
	'|':  260,
	'}':  334,
	'~':  584,
}

// Courier widths (monospaced)
var courierWidths = map[rune]float64{}

func init() {
	// Courier is monospaced - all characters have same width
	for r := rune(32); r <= 126; r++ {
		courierWidths[r] = 600
	}
}
