package gridtable

import (
	"fmt"
	"strings"

	"github.com/tsawler/gridtable/tables"
)

// Warning is a non-fatal issue found while processing a table
type Warning = tables.Warning

// FormatWarnings renders warnings one per line, grouped by kind in order of
// first appearance. An empty slice yields an empty string.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}

	var order []tables.WarningKind
	byKind := make(map[tables.WarningKind][]Warning)
	for _, w := range warnings {
		if _, ok := byKind[w.Kind]; !ok {
			order = append(order, w.Kind)
		}
		byKind[w.Kind] = append(byKind[w.Kind], w)
	}

	var sb strings.Builder
	for _, kind := range order {
		group := byKind[kind]
		fmt.Fprintf(&sb, "%s (%d):\n", kind, len(group))
		for _, w := range group {
			sb.WriteString("  - ")
			sb.WriteString(w.Message)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
