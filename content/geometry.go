package content

import (
	"vbhc/common"
)

// Margins in twips.
type Margins struct {
	Top, Right, Bottom, Left int
}

// Geometry describes physical page in twips.
type Geometry struct {
	Orientation common.Orientation
	Width       int
	Height      int
	Margins     Margins
}

// ContentWidth returns width available for text between left and right
// margins.
func (g Geometry) ContentWidth() int {
	return g.Width - g.Margins.Left - g.Margins.Right
}

// ContentHeight returns height available for text between top and bottom
// margins.
func (g Geometry) ContentHeight() int {
	return g.Height - g.Margins.Top - g.Margins.Bottom
}

// Administrative documents are bound on the left, so portrait pages have wider
// left margin. Landscape pages are rotated for binding and keep equal margins.
var (
	portraitMargins  = Margins{Top: 1440, Right: 864, Bottom: 1440, Left: 1728}
	landscapeMargins = Margins{Top: 1440, Right: 1440, Bottom: 1440, Left: 1440}
)

// paper sizes in twips, portrait
var paperSizes = map[common.Paper][2]int{
	common.PaperLetter: {12240, 15840},
	common.PaperA4:     {11906, 16838},
}

// GeometryFor returns page geometry for orientation on paper. Each page gets
// its own geometry regardless of its neighbours.
func GeometryFor(o common.Orientation, paper common.Paper) Geometry {
	size, ok := paperSizes[paper]
	if !ok {
		size = paperSizes[common.PaperLetter]
	}
	if o.IsLandscape() {
		return Geometry{
			Orientation: o,
			Width:       size[1],
			Height:      size[0],
			Margins:     landscapeMargins,
		}
	}
	return Geometry{
		Orientation: common.OrientationPortrait,
		Width:       size[0],
		Height:      size[1],
		Margins:     portraitMargins,
	}
}
