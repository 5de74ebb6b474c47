package docx

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"

	"vbhc/content"
	"vbhc/fragment"
)

// walker converts nodes of a single page into body level elements.
type walker struct {
	geometry content.Geometry
	log      *zap.Logger
}

func newWalker(page *content.Page, log *zap.Logger) *walker {
	return &walker{
		geometry: page.Geometry,
		log:      log.With(zap.Int("page", page.Index)),
	}
}

// walk visits nodes depth first in source order.
func (w *walker) walk(nodes []fragment.Node) []*etree.Element {
	var out []*etree.Element
	for _, n := range nodes {
		switch n := n.(type) {
		case *fragment.Table:
			if tbl := w.table(n); tbl != nil {
				out = append(out, tbl)
			}
		case *fragment.Paragraph:
			if r, ok := NewRun(n.Text, n.Style); ok {
				out = append(out, r.paragraph())
			}
		case *fragment.Division:
			if !n.Leaf() {
				out = append(out, w.walk(n.Children)...)
				continue
			}
			if r, ok := NewRun(n.Text, n.Style); ok {
				out = append(out, r.paragraph())
			}
		case *fragment.LineBreak:
			out = append(out, etree.NewElement("w:p"))
		case *fragment.Unknown:
			w.log.Debug("Skipping unsupported element", zap.String("tag", n.Tag))
		default:
			// this should never happen
			panic("unexpected fragment node")
		}
	}
	return out
}
