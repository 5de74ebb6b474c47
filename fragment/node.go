// Package fragment turns loosely structured HTML produced by the OCR layer
// into a closed set of block nodes the serializers know how to handle.
package fragment

import (
	"vbhc/css"
)

// Node is one of *Paragraph, *Division, *Table, *LineBreak or *Unknown.
// Consumers are expected to switch over all five.
type Node interface {
	node()
}

// Paragraph is a paragraph-like element (p, h1-h6). Text has whitespace
// collapsed, line breaks coming from <br> are kept as '\n'.
type Paragraph struct {
	Tag   string
	Style css.StyleMap
	Text  string
}

// Division is a generic container. When it has no block-level children it is
// a leaf and its flattened content is in Text, otherwise Children hold
// classified element children in source order. Division holding nothing but
// line breaks is not a leaf.
type Division struct {
	Style    css.StyleMap
	Children []Node
	Text     string
	leaf     bool
}

// Leaf reports whether division carries text of its own instead of children.
func (d *Division) Leaf() bool {
	return d.leaf
}

// Table is a flattened table: rows of cells with plain text.
type Table struct {
	Style css.StyleMap
	Rows  []Row
}

// Columns returns number of cells in the widest row.
func (t *Table) Columns() int {
	var n int
	for _, r := range t.Rows {
		n = max(n, len(r.Cells))
	}
	return n
}

type Row struct {
	Cells []Cell
}

type Cell struct {
	Header bool
	Style  css.StyleMap
	Text   string
}

type LineBreak struct{}

// Unknown is any element we do not convert. It is kept so skipping it is an
// explicit decision of the consumer.
type Unknown struct {
	Tag string
}

func (*Paragraph) node() {}
func (*Division) node()  {}
func (*Table) node()     {}
func (*LineBreak) node() {}
func (*Unknown) node()   {}
