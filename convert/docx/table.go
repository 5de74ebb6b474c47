package docx

import (
	"strconv"

	"github.com/beevik/etree"

	"vbhc/css"
	"vbhc/fragment"
)

const (
	// table spans whole text width, in fiftieths of a percent
	tableWidthPct = 5000
	// 0.75pt, in eighths of a point
	borderSize = 6
)

var (
	tableEdges = []string{"top", "left", "bottom", "right", "insideH", "insideV"}
	cellEdges  = []string{"top", "left", "bottom", "right"}
)

// cellRun returns formatting for cell text. Cells never produce spacing
// around paragraphs and header cells are bold unless style says otherwise.
func cellRun(c fragment.Cell) Run {
	bold := c.Style.Bold()
	if c.Header {
		if _, ok := c.Style["font-weight"]; !ok {
			bold = true
		}
	}
	return Run{
		Text:       c.Text,
		Bold:       bold,
		Italic:     c.Style.Italic(),
		Underline:  c.Style.Underline(),
		Font:       FontFamily,
		HalfPoints: clamp(c.Style.FontSize().HalfPoints(), minHalfPoints, maxHalfPoints),
		Align:      c.Style.TextAlign(),
	}
}

// table converts flattened table. Rows are padded to the widest row so
// the grid stays rectangular. Nil is returned for tables without cells.
func (w *walker) table(t *fragment.Table) *etree.Element {
	columns := t.Columns()
	if columns == 0 {
		w.log.Debug("Skipping empty table")
		return nil
	}
	width := w.geometry.ContentWidth() / columns

	tbl := etree.NewElement("w:tbl")

	tpr := tbl.CreateElement("w:tblPr")
	tw := tpr.CreateElement("w:tblW")
	tw.CreateAttr("w:w", strconv.Itoa(tableWidthPct))
	tw.CreateAttr("w:type", "pct")
	borders(tpr.CreateElement("w:tblBorders"), tableEdges)
	tpr.CreateElement("w:tblLayout").CreateAttr("w:type", "fixed")

	grid := tbl.CreateElement("w:tblGrid")
	for range columns {
		grid.CreateElement("w:gridCol").CreateAttr("w:w", strconv.Itoa(width))
	}

	for _, row := range t.Rows {
		if len(row.Cells) == 0 {
			continue
		}
		tr := tbl.CreateElement("w:tr")
		for i := range columns {
			cell := fragment.Cell{Style: css.ParseStyle("")}
			if i < len(row.Cells) {
				cell = row.Cells[i]
			}
			tableCell(tr, cell, width)
		}
	}
	return tbl
}

func tableCell(tr *etree.Element, c fragment.Cell, width int) {
	tc := tr.CreateElement("w:tc")

	tcpr := tc.CreateElement("w:tcPr")
	tcw := tcpr.CreateElement("w:tcW")
	tcw.CreateAttr("w:w", strconv.Itoa(width))
	tcw.CreateAttr("w:type", "dxa")
	borders(tcpr.CreateElement("w:tcBorders"), cellEdges)

	// every cell has to end with paragraph, even an empty one
	r := cellRun(c)
	p := tc.CreateElement("w:p")
	r.paragraphProperties(p)
	if r.Text != "" {
		r.element(p)
	}
}

func borders(parent *etree.Element, edges []string) {
	for _, edge := range edges {
		b := parent.CreateElement("w:" + edge)
		b.CreateAttr("w:val", "single")
		b.CreateAttr("w:sz", strconv.Itoa(borderSize))
		b.CreateAttr("w:space", "0")
		b.CreateAttr("w:color", "auto")
	}
}
