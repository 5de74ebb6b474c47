package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"vbhc/css"
)

// FontFamily is used for every run, administrative documents require it.
const FontFamily = "Times New Roman"

const (
	// 1.5 lines, in 240ths of a line
	lineSpacing = 360

	// allowed ranges of ST_HpsMeasure and ST_TwipsMeasure used for spacing
	minHalfPoints = 2
	maxHalfPoints = 3276
	maxSpacing    = 31680
)

// Run is uniformly formatted text together with properties of the
// paragraph carrying it. Text may contain '\n' for line breaks.
type Run struct {
	Text       string
	Bold       bool
	Italic     bool
	Underline  bool
	Font       string
	HalfPoints int
	Align      css.Alignment
	// spacing in twips
	Before int
	After  int
}

// NewRun derives run from element text and its style. False is returned
// when text has nothing but whitespace, such elements produce no output.
func NewRun(text string, styles css.StyleMap) (Run, bool) {
	if strings.TrimSpace(text) == "" {
		return Run{}, false
	}
	return Run{
		Text:       text,
		Bold:       styles.Bold(),
		Italic:     styles.Italic(),
		Underline:  styles.Underline(),
		Font:       FontFamily,
		HalfPoints: clamp(styles.FontSize().HalfPoints(), minHalfPoints, maxHalfPoints),
		Align:      styles.TextAlign(),
		Before:     clamp(styles.MarginTop().Twips(), 0, maxSpacing),
		After:      clamp(styles.MarginBottom().Twips(), 0, maxSpacing),
	}, true
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// paragraph returns <w:p> with single run.
func (r Run) paragraph() *etree.Element {
	p := etree.NewElement("w:p")
	r.paragraphProperties(p)
	r.element(p)
	return p
}

func (r Run) paragraphProperties(p *etree.Element) {
	ppr := p.CreateElement("w:pPr")
	spacing := ppr.CreateElement("w:spacing")
	spacing.CreateAttr("w:before", strconv.Itoa(r.Before))
	spacing.CreateAttr("w:after", strconv.Itoa(r.After))
	spacing.CreateAttr("w:line", strconv.Itoa(lineSpacing))
	spacing.CreateAttr("w:lineRule", "auto")
	ppr.CreateElement("w:jc").CreateAttr("w:val", r.Align.OOXML())
}

func (r Run) element(p *etree.Element) {
	wr := p.CreateElement("w:r")
	r.runProperties(wr)
	for i, line := range strings.Split(r.Text, "\n") {
		if i > 0 {
			wr.CreateElement("w:br")
		}
		if line == "" {
			continue
		}
		t := wr.CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(line)
	}
}

func (r Run) runProperties(wr *etree.Element) {
	rpr := wr.CreateElement("w:rPr")
	fonts := rpr.CreateElement("w:rFonts")
	for _, attr := range []string{"w:ascii", "w:hAnsi", "w:cs"} {
		fonts.CreateAttr(attr, r.Font)
	}
	if r.Bold {
		rpr.CreateElement("w:b")
	}
	if r.Italic {
		rpr.CreateElement("w:i")
	}
	size := strconv.Itoa(r.HalfPoints)
	rpr.CreateElement("w:sz").CreateAttr("w:val", size)
	rpr.CreateElement("w:szCs").CreateAttr("w:val", size)
	if r.Underline {
		rpr.CreateElement("w:u").CreateAttr("w:val", "single")
	}
}
