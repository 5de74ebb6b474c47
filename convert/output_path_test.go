package convert

import (
	"path/filepath"
	"testing"

	"github.com/gosimple/slug"
	"go.uber.org/zap/zaptest"

	"vbhc/common"
	"vbhc/config"
	"vbhc/content"
)

func testContent(srcName string) *content.Content {
	return &content.Content{
		SrcName: srcName,
		Title:   "Quyết định",
		Paper:   common.PaperA4,
		Pages: []*content.Page{
			{Index: 1},
			{Index: 2, Orientation: common.OrientationLandscape},
			{Index: 3},
		},
	}
}

func TestBuildOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		setup    func(*config.DocumentConfig)
		expected string
	}{
		{
			name:     "default",
			src:      "scan.pdf",
			expected: "scan_formatted.docx",
		},
		{
			name:     "source with directories",
			src:      filepath.Join("in", "box", "scan.pdf"),
			expected: "scan_formatted.docx",
		},
		{
			name:     "legacy mode",
			src:      "scan.pdf",
			setup:    func(c *config.DocumentConfig) { c.OutputMode = common.OutputModeDoc },
			expected: "scan_formatted.doc",
		},
		{
			name:     "no suffix",
			src:      "scan.pdf",
			setup:    func(c *config.DocumentConfig) { c.OutputSuffix = "" },
			expected: "scan.docx",
		},
		{
			name:     "empty source name",
			src:      "",
			expected: "document_formatted.docx",
		},
		{
			name:     "vietnamese name kept",
			src:      "Công văn số 12.pdf",
			expected: "Công văn số 12_formatted.docx",
		},
		{
			name:     "transliterated",
			src:      "Công văn số 12.pdf",
			setup:    func(c *config.DocumentConfig) { c.FileNameTransliterate = true },
			expected: slug.Make("Công văn số 12_formatted") + ".docx",
		},
		{
			name:     "template",
			src:      "scan.pdf",
			setup:    func(c *config.DocumentConfig) { c.OutputNameTemplate = "{{ .Name }}-{{ .Pages }}p-{{ .Landscape }}l" },
			expected: "scan-3p-1l.docx",
		},
		{
			name:     "template with sprig and subdirectory",
			src:      "scan.pdf",
			setup:    func(c *config.DocumentConfig) { c.OutputNameTemplate = "{{ .Paper }}/{{ .Name | upper }}{{ .Suffix }}" },
			expected: filepath.Join("a4", "SCAN_formatted.docx"),
		},
		{
			name:     "template with parent references",
			src:      "scan.pdf",
			setup:    func(c *config.DocumentConfig) { c.OutputNameTemplate = "../{{ .Mode }}/./{{ .Name }}" },
			expected: filepath.Join("docx", "scan.docx"),
		},
		{
			name:     "template parse error falls back",
			src:      "scan.pdf",
			setup:    func(c *config.DocumentConfig) { c.OutputNameTemplate = "{{ .Name" },
			expected: "scan_formatted.docx",
		},
		{
			name:     "template execution error falls back",
			src:      "scan.pdf",
			setup:    func(c *config.DocumentConfig) { c.OutputNameTemplate = "{{ .Author }}" },
			expected: "scan_formatted.docx",
		},
		{
			name:     "empty expansion falls back",
			src:      "scan.pdf",
			setup:    func(c *config.DocumentConfig) { c.OutputNameTemplate = "{{ if false }}x{{ end }}" },
			expected: "scan_formatted.docx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testDocumentConfig(t)
			if tt.setup != nil {
				tt.setup(cfg)
			}
			got := buildOutputPath(testContent(tt.src), cfg, zaptest.NewLogger(t))
			if got != tt.expected {
				t.Errorf("buildOutputPath() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{filepath.Join("a", "b", "c"), []string{"a", "b", "c"}},
		{filepath.Join("a", "b") + string(filepath.Separator), []string{"a", "b"}},
	}
	for _, tt := range tests {
		got := splitPath(tt.in)
		if len(got) != len(tt.want) {
			t.Fatalf("splitPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitPath(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
