// Package common keeps enumerations shared by configuration, content
// preparation and output generators, so none of them has to import the other.
package common

import (
	"fmt"
	"strings"
)

// Orientation of a single source page.
// ENUM(portrait, landscape)
type Orientation int

const (
	OrientationPortrait Orientation = iota
	OrientationLandscape
)

var orientationNames = []string{"portrait", "landscape"}

func (o Orientation) String() string {
	if o < 0 || int(o) >= len(orientationNames) {
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
	return orientationNames[o]
}

func (o Orientation) IsLandscape() bool {
	return o == OrientationLandscape
}

// ParseOrientation converts name to Orientation, case insensitive.
func ParseOrientation(name string) (Orientation, error) {
	for i, n := range orientationNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Orientation(i), nil
		}
	}
	return OrientationPortrait, fmt.Errorf("%q is not a valid orientation, try [%s]", name, strings.Join(orientationNames, ", "))
}

func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Orientation) UnmarshalText(text []byte) error {
	v, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// OutputMode selects produced artifact: OOXML package or single file
// HTML/Word hybrid.
// ENUM(docx, doc)
type OutputMode int

const (
	OutputModeDocx OutputMode = iota
	OutputModeDoc
)

var outputModeNames = []string{"docx", "doc"}

func (m OutputMode) String() string {
	if m < 0 || int(m) >= len(outputModeNames) {
		return fmt.Sprintf("OutputMode(%d)", int(m))
	}
	return outputModeNames[m]
}

// OutputModeNames returns list of possible names, used in command line help.
func OutputModeNames() []string {
	return append([]string(nil), outputModeNames...)
}

// ParseOutputMode converts name to OutputMode, case insensitive.
func ParseOutputMode(name string) (OutputMode, error) {
	for i, n := range outputModeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return OutputMode(i), nil
		}
	}
	return OutputModeDocx, fmt.Errorf("%q is not a valid output mode, try [%s]", name, strings.Join(outputModeNames, ", "))
}

func (m OutputMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *OutputMode) UnmarshalText(text []byte) error {
	v, err := ParseOutputMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m OutputMode) Ext() string {
	switch m {
	case OutputModeDocx:
		return ".docx"
	case OutputModeDoc:
		return ".doc"
	default:
		// this should never happen
		panic("unsupported output mode requested")
	}
}

func (m OutputMode) MIME() string {
	switch m {
	case OutputModeDocx:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case OutputModeDoc:
		return "application/msword"
	default:
		// this should never happen
		panic("unsupported output mode requested")
	}
}

// SectionMode controls how page geometry is written into OOXML body.
// PerPage writes section properties for every page, Trailing writes only
// geometry of the last page and separates pages with page breaks.
// ENUM(per_page, trailing)
type SectionMode int

const (
	SectionModePerPage SectionMode = iota
	SectionModeTrailing
)

var sectionModeNames = []string{"per_page", "trailing"}

func (s SectionMode) String() string {
	if s < 0 || int(s) >= len(sectionModeNames) {
		return fmt.Sprintf("SectionMode(%d)", int(s))
	}
	return sectionModeNames[s]
}

// SectionModeNames returns list of possible names, used in command line help.
func SectionModeNames() []string {
	return append([]string(nil), sectionModeNames...)
}

// ParseSectionMode converts name to SectionMode, case insensitive. Dash is
// accepted in place of underscore.
func ParseSectionMode(name string) (SectionMode, error) {
	name = strings.ReplaceAll(strings.TrimSpace(name), "-", "_")
	for i, n := range sectionModeNames {
		if strings.EqualFold(n, name) {
			return SectionMode(i), nil
		}
	}
	return SectionModePerPage, fmt.Errorf("%q is not a valid section mode, try [%s]", name, strings.Join(sectionModeNames, ", "))
}

func (s SectionMode) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SectionMode) UnmarshalText(text []byte) error {
	v, err := ParseSectionMode(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Paper selects physical paper size.
// ENUM(letter, a4)
type Paper int

const (
	PaperLetter Paper = iota
	PaperA4
)

var paperNames = []string{"letter", "a4"}

func (p Paper) String() string {
	if p < 0 || int(p) >= len(paperNames) {
		return fmt.Sprintf("Paper(%d)", int(p))
	}
	return paperNames[p]
}

// ParsePaper converts name to Paper, case insensitive.
func ParsePaper(name string) (Paper, error) {
	for i, n := range paperNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Paper(i), nil
		}
	}
	return PaperLetter, fmt.Errorf("%q is not a valid paper size, try [%s]", name, strings.Join(paperNames, ", "))
}

func (p Paper) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Paper) UnmarshalText(text []byte) error {
	v, err := ParsePaper(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
