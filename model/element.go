package model

// ElementType represents the kind of canvas primitive
type ElementType string

const (
	ElementTypeLine      ElementType = "line"
	ElementTypeRectangle ElementType = "rectangle"
	ElementTypeText      ElementType = "text"
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeLine:
		return "Line"
	case ElementTypeRectangle:
		return "Rectangle"
	case ElementTypeText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Well-known color values
const (
	ColorTransparent = "transparent"
	ColorBlack       = "#000000"
	ColorWhite       = "#ffffff"
)

// FillSolid is the fill style of generated cells
const FillSolid = "solid"

// Element is a single drawable primitive on the canvas. Field names and JSON
// keys follow the Excalidraw scene format; line elements are positioned by
// X/Y plus Points relative to that origin.
type Element struct {
	ID              string      `json:"id"`
	Type            ElementType `json:"type"`
	X               float64     `json:"x"`
	Y               float64     `json:"y"`
	Width           float64     `json:"width"`
	Height          float64     `json:"height"`
	Angle           float64     `json:"angle"`
	StrokeColor     string      `json:"strokeColor"`
	BackgroundColor string      `json:"backgroundColor"`
	FillStyle       string      `json:"fillStyle"`
	StrokeWidth     float64     `json:"strokeWidth"`
	Roughness       int         `json:"roughness"`
	GroupIDs        []string    `json:"groupIds"`
	IsDeleted       bool        `json:"isDeleted,omitempty"`

	// Line elements
	Points []Point `json:"points,omitempty"`

	// Text elements
	Text       string  `json:"text,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FontFamily int     `json:"fontFamily,omitempty"`

	// Opaque per-element record owned by plugins
	CustomData map[string]any `json:"customData,omitempty"`
}

// Geometry is the positional part of an element
type Geometry struct {
	X, Y          float64
	Width, Height float64
	Points        []Point // nil for non-line elements
}

// Style describes how newly created elements are drawn
type Style struct {
	StrokeColor     string
	BackgroundColor string
	FillStyle       string
	StrokeWidth     float64
	Roughness       int
	FontSize        float64
	FontFamily      int
}

// BoundingBox returns the element's axis-aligned bounds
func (e *Element) BoundingBox() BBox {
	if e.Type == ElementTypeLine && len(e.Points) > 0 {
		box := NewBBoxFromPoints(e.Points[0], e.Points[0])
		for _, p := range e.Points[1:] {
			box = box.Union(NewBBoxFromPoints(p, p))
		}
		box.X += e.X
		box.Y += e.Y
		return box
	}
	return BBox{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// Geometry returns a copy of the element's position and extent
func (e *Element) Geometry() Geometry {
	g := Geometry{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
	if e.Points != nil {
		g.Points = append([]Point(nil), e.Points...)
	}
	return g
}

// SetGeometry overwrites position and extent. Points are replaced only when
// g carries them.
func (e *Element) SetGeometry(g Geometry) {
	e.X, e.Y = g.X, g.Y
	e.Width, e.Height = g.Width, g.Height
	if g.Points != nil {
		e.Points = append([]Point(nil), g.Points...)
	}
}

// ApplyStyle copies drawing attributes onto the element
func (e *Element) ApplyStyle(s Style) {
	e.StrokeColor = s.StrokeColor
	e.BackgroundColor = s.BackgroundColor
	e.FillStyle = s.FillStyle
	e.StrokeWidth = s.StrokeWidth
	e.Roughness = s.Roughness
	if e.Type == ElementTypeText {
		e.FontSize = s.FontSize
		e.FontFamily = s.FontFamily
	}
}

// Meta decodes the table metadata carried in CustomData
func (e *Element) Meta() (TableMeta, bool) {
	return ParseMeta(e.CustomData)
}

// SetMeta merges the table metadata into CustomData, keeping unrelated keys
func (e *Element) SetMeta(m TableMeta) {
	if e.CustomData == nil {
		e.CustomData = make(map[string]any)
	}
	for _, k := range metaKeys {
		delete(e.CustomData, k)
	}
	for k, v := range m.ToMap() {
		e.CustomData[k] = v
	}
}

// Clone returns a deep copy of the element
func (e *Element) Clone() *Element {
	c := *e
	if e.GroupIDs != nil {
		c.GroupIDs = append([]string(nil), e.GroupIDs...)
	}
	if e.Points != nil {
		c.Points = append([]Point(nil), e.Points...)
	}
	if e.CustomData != nil {
		c.CustomData = make(map[string]any, len(e.CustomData))
		for k, v := range e.CustomData {
			c.CustomData[k] = v
		}
	}
	return &c
}

// NewRectangle creates a rectangle element
func NewRectangle(id string, box BBox, style Style) *Element {
	e := &Element{
		ID:     id,
		Type:   ElementTypeRectangle,
		X:      box.X,
		Y:      box.Y,
		Width:  box.Width,
		Height: box.Height,
	}
	e.ApplyStyle(style)
	return e
}

// NewLine creates a line element from absolute endpoints. The element origin
// is the first point and Points are stored relative to it.
func NewLine(id string, from, to Point, style Style) *Element {
	e := &Element{
		ID:     id,
		Type:   ElementTypeLine,
		X:      from.X,
		Y:      from.Y,
		Width:  abs(to.X - from.X),
		Height: abs(to.Y - from.Y),
		Points: []Point{{0, 0}, {to.X - from.X, to.Y - from.Y}},
	}
	e.ApplyStyle(style)
	return e
}

// NewText creates a text element occupying box
func NewText(id, text string, box BBox, style Style) *Element {
	e := &Element{
		ID:     id,
		Type:   ElementTypeText,
		X:      box.X,
		Y:      box.Y,
		Width:  box.Width,
		Height: box.Height,
		Text:   text,
	}
	e.ApplyStyle(style)
	return e
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
