package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tsawler/gridtable/model"
)

// Palette maps the named header colors offered to users to their values
var Palette = map[string]string{
	"Light Red":    "#ffc9c9",
	"Light Pink":   "#fcc2d7",
	"Light Grape":  "#eebefa",
	"Light Violet": "#d0bfff",
	"Light Indigo": "#bac8ff",
	"Light Blue":   "#a5d8ff",
	"Light Cyan":   "#99e9f2",
	"Light Teal":   "#96f2d7",
	"Light Green":  "#b2f2bb",
	"Light Lime":   "#d8f5a2",
	"Light Yellow": "#ffec99",
	"Light Orange": "#ffd8a8",
	"Gray":         "#ced4da",
	"Transparent":  model.ColorTransparent,
}

// PaletteNames returns the palette names in sorted order
func PaletteNames() []string {
	names := make([]string, 0, len(Palette))
	for name := range Palette {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveColor maps a palette name (case-insensitive) or a hex color to a
// canonical lowercase "#rrggbb" value. "transparent" passes through.
func ResolveColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, model.ColorTransparent) {
		return model.ColorTransparent, nil
	}
	for name, value := range Palette {
		if strings.EqualFold(name, s) {
			return value, nil
		}
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("%q is neither a palette name nor a hex color", s)
	}
	return c.Hex(), nil
}
