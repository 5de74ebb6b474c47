package common

import (
	"strings"
	"testing"
)

func TestParseSectionMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SectionMode
		wantErr bool
	}{
		{"per_page", SectionModePerPage, false},
		{"per-page", SectionModePerPage, false},
		{" Trailing ", SectionModeTrailing, false},
		{"single", SectionModePerPage, true},
	}
	for _, tt := range tests {
		got, err := ParseSectionMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSectionMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSectionMode(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestOutputMode(t *testing.T) {
	tests := []struct {
		name string
		mode OutputMode
		ext  string
		mime string
	}{
		{"docx", OutputModeDocx, ".docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"DOC", OutputModeDoc, ".doc", "application/msword"},
	}
	for _, tt := range tests {
		got, err := ParseOutputMode(tt.name)
		if err != nil {
			t.Fatalf("ParseOutputMode(%q) error = %v", tt.name, err)
		}
		if got != tt.mode || got.Ext() != tt.ext || got.MIME() != tt.mime {
			t.Errorf("ParseOutputMode(%q) = %s (%s, %s)", tt.name, got, got.Ext(), got.MIME())
		}
	}

	_, err := ParseOutputMode("pdf")
	if err == nil || !strings.Contains(err.Error(), "docx, doc") {
		t.Errorf("ParseOutputMode(pdf) error = %v, want list of modes", err)
	}
}

func TestTextRoundTrip(t *testing.T) {
	var o Orientation
	if err := o.UnmarshalText([]byte("Landscape")); err != nil || !o.IsLandscape() {
		t.Errorf("UnmarshalText(Landscape) = %s, %v", o, err)
	}
	if err := o.UnmarshalText([]byte("upside-down")); err == nil {
		t.Error("UnmarshalText() expected error for unknown orientation")
	}

	var p Paper
	if err := p.UnmarshalText([]byte("A4")); err != nil || p != PaperA4 {
		t.Errorf("UnmarshalText(A4) = %s, %v", p, err)
	}
	if b, _ := p.MarshalText(); string(b) != "a4" {
		t.Errorf("MarshalText() = %q, want a4", b)
	}

	if s := Orientation(7).String(); s != "Orientation(7)" {
		t.Errorf("String() for out of range value = %q", s)
	}
}

func TestNamesAreCopies(t *testing.T) {
	names := OutputModeNames()
	names[0] = "changed"
	if OutputModeNames()[0] != "docx" {
		t.Error("OutputModeNames() exposes internal slice")
	}
}
