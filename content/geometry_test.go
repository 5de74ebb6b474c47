package content

import (
	"testing"

	"vbhc/common"
)

func TestGeometryFor(t *testing.T) {
	tests := []struct {
		name        string
		orientation common.Orientation
		paper       common.Paper
		want        Geometry
	}{
		{
			name:        "letter portrait",
			orientation: common.OrientationPortrait,
			paper:       common.PaperLetter,
			want:        Geometry{common.OrientationPortrait, 12240, 15840, Margins{Top: 1440, Right: 864, Bottom: 1440, Left: 1728}},
		},
		{
			name:        "letter landscape",
			orientation: common.OrientationLandscape,
			paper:       common.PaperLetter,
			want:        Geometry{common.OrientationLandscape, 15840, 12240, Margins{Top: 1440, Right: 1440, Bottom: 1440, Left: 1440}},
		},
		{
			name:        "a4 portrait",
			orientation: common.OrientationPortrait,
			paper:       common.PaperA4,
			want:        Geometry{common.OrientationPortrait, 11906, 16838, Margins{Top: 1440, Right: 864, Bottom: 1440, Left: 1728}},
		},
		{
			name:        "a4 landscape",
			orientation: common.OrientationLandscape,
			paper:       common.PaperA4,
			want:        Geometry{common.OrientationLandscape, 16838, 11906, Margins{Top: 1440, Right: 1440, Bottom: 1440, Left: 1440}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GeometryFor(tt.orientation, tt.paper); got != tt.want {
				t.Errorf("GeometryFor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGeometry_ContentArea(t *testing.T) {
	g := GeometryFor(common.OrientationPortrait, common.PaperLetter)
	if got := g.ContentWidth(); got != 12240-1728-864 {
		t.Errorf("ContentWidth() = %d", got)
	}
	if got := g.ContentHeight(); got != 15840-2*1440 {
		t.Errorf("ContentHeight() = %d", got)
	}
}
