package css

import "strings"

// Alignment is paragraph alignment.
type Alignment int

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
	AlignJustified
)

// ParseAlignment maps CSS "text-align" keyword. Every input maps to exactly
// one alignment, unknown keywords fall back to AlignStart.
func ParseAlignment(value string) Alignment {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "center":
		return AlignCenter
	case "right":
		return AlignEnd
	case "justify":
		return AlignJustified
	default:
		return AlignStart
	}
}

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "CENTER"
	case AlignEnd:
		return "END"
	case AlignJustified:
		return "JUSTIFIED"
	default:
		return "START"
	}
}

// OOXML returns value for w:jc.
func (a Alignment) OOXML() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "right"
	case AlignJustified:
		return "both"
	default:
		return "left"
	}
}
