package css

import "testing"

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		input string
		want  Alignment
		name  string
		jc    string
	}{
		{"center", AlignCenter, "CENTER", "center"},
		{"right", AlignEnd, "END", "right"},
		{"justify", AlignJustified, "JUSTIFIED", "both"},
		{"left", AlignStart, "START", "left"},
		{"", AlignStart, "START", "left"},
		{"unknown-value", AlignStart, "START", "left"},
		{" Center ", AlignCenter, "CENTER", "center"},
		{"end", AlignStart, "START", "left"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseAlignment(tt.input)
			if got != tt.want {
				t.Errorf("ParseAlignment(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.String() != tt.name {
				t.Errorf("String() = %q, want %q", got.String(), tt.name)
			}
			if got.OOXML() != tt.jc {
				t.Errorf("OOXML() = %q, want %q", got.OOXML(), tt.jc)
			}
		})
	}
}
