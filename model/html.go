package model

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// WriteHTML renders the table as an HTML <table>. Row 0 becomes the <thead>
// and every other row goes into <tbody>. Cell text is escaped by the
// renderer and line breaks become <br> elements.
func (t *Table) WriteHTML(w io.Writer) error {
	table := newElement(atom.Table)
	if t.ID != "" {
		table.Attr = append(table.Attr, html.Attribute{Key: "data-table-id", Val: t.ID})
	}

	if len(t.Rows) > 0 {
		head := newElement(atom.Thead)
		head.AppendChild(htmlRow(t.Rows[0], atom.Th))
		table.AppendChild(head)
	}
	if len(t.Rows) > 1 {
		body := newElement(atom.Tbody)
		for _, row := range t.Rows[1:] {
			body.AppendChild(htmlRow(row, atom.Td))
		}
		table.AppendChild(body)
	}

	return html.Render(w, table)
}

func htmlRow(row []Cell, cellAtom atom.Atom) *html.Node {
	tr := newElement(atom.Tr)
	for _, cell := range row {
		n := newElement(cellAtom)
		if bg := cell.BackgroundColor; bg != "" && bg != ColorTransparent {
			n.Attr = append(n.Attr, html.Attribute{Key: "style", Val: "background-color: " + bg})
		}
		text := strings.ReplaceAll(cell.Text, "\r\n", "\n")
		for i, line := range strings.Split(text, "\n") {
			if i > 0 {
				n.AppendChild(newElement(atom.Br))
			}
			if line != "" {
				n.AppendChild(&html.Node{Type: html.TextNode, Data: line})
			}
		}
		tr.AppendChild(n)
	}
	return tr
}

func newElement(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}
