package fragment

import (
	"vbhc/utils/debug"
)

// Dump renders classified nodes as indented tree for debug reports.
func Dump(nodes []Node) string {
	tw := debug.NewTreeWriter()
	dumpNodes(tw, 0, nodes)
	return tw.String()
}

func dumpNodes(tw *debug.TreeWriter, depth int, nodes []Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Paragraph:
			tw.Line(depth, "paragraph <%s>", n.Tag)
			tw.Map(depth+1, "style", n.Style)
			tw.Text(depth+1, "text", n.Text)
		case *Division:
			if n.Leaf() {
				tw.Line(depth, "division (leaf)")
			} else {
				tw.Line(depth, "division (%d children)", len(n.Children))
			}
			tw.Map(depth+1, "style", n.Style)
			tw.Text(depth+1, "text", n.Text)
			dumpNodes(tw, depth+1, n.Children)
		case *Table:
			tw.Line(depth, "table %dx%d", len(n.Rows), n.Columns())
			tw.Map(depth+1, "style", n.Style)
			for i, r := range n.Rows {
				tw.Line(depth+1, "row %d", i+1)
				for j, c := range r.Cells {
					if c.Header {
						tw.Line(depth+2, "header cell %d", j+1)
					} else {
						tw.Line(depth+2, "cell %d", j+1)
					}
					tw.Map(depth+3, "style", c.Style)
					tw.Text(depth+3, "text", c.Text)
				}
			}
		case *LineBreak:
			tw.Line(depth, "line break")
		case *Unknown:
			tw.Line(depth, "unknown <%s>", n.Tag)
		}
	}
}
