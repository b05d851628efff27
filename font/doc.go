// Package font measures the rendered size of canvas text.
//
// Text labels are centered inside their cells from their measured size, so
// every layout operation goes through a [Measurer]. Two implementations are
// provided:
//
//   - [OpenTypeMeasurer] - glyph advances from the Go fonts via
//     golang.org/x/image, cached per family and size
//   - [MetricsMeasurer] - standard-font width tables, deterministic and
//     free of font files
//
// Sizes are in canvas units. Height is the number of lines times the canvas
// line height (1.25 em):
//
//	m := font.NewMetricsMeasurer()
//	size := m.Measure("Hi", font.Face{Family: font.FamilyNormal, Size: 20})
//	// size.Width == (722+222)*20/1000, size.Height == 25
//
// Any function can serve as a measurer through [MeasurerFunc].
package font
