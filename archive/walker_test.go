package archive

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

type entry struct {
	name    string
	content string
	nonUTF8 bool
}

func createZip(t *testing.T, entries []entry) string {
	t.Helper()

	zipPath := filepath.Join(t.TempDir(), "pages.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	for _, e := range entries {
		fw, err := w.CreateHeader(&zip.FileHeader{Name: e.name, Method: zip.Deflate, NonUTF8: e.nonUTF8})
		if err != nil {
			t.Fatalf("Failed to create %s in zip: %v", e.name, err)
		}
		if _, err := fw.Write([]byte(e.content)); err != nil {
			t.Fatalf("Failed to write %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return zipPath
}

func TestWalk(t *testing.T) {
	zipPath := createZip(t, []entry{
		{name: "scan/page-1.html", content: "<p>1</p>"},
		{name: "scan/page-2.landscape.html", content: "<p>2</p>"},
		{name: "scan/"},
		{name: "other/readme.txt", content: "readme"},
	})

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"with prefix", "scan/", []string{"scan/page-1.html", "scan/page-2.landscape.html"}},
		{"no match", "missing/", nil},
		{"empty prefix", "", []string{"scan/page-1.html", "scan/page-2.landscape.html", "other/readme.txt"}},
		{"case sensitive", "Scan/", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited []string
			err := Walk(zipPath, tt.pattern, nil, func(archive, name string, file *zip.File) error {
				if archive != zipPath {
					t.Errorf("archive = %s, want %s", archive, zipPath)
				}
				if name != file.Name {
					t.Errorf("name = %q, want %q", name, file.Name)
				}
				visited = append(visited, name)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if len(visited) != len(tt.want) {
				t.Fatalf("visited = %v, want %v", visited, tt.want)
			}
			for i := range visited {
				if visited[i] != tt.want[i] {
					t.Errorf("visited[%d] = %q, want %q", i, visited[i], tt.want[i])
				}
			}
		})
	}
}

func TestWalk_FileContent(t *testing.T) {
	zipPath := createZip(t, []entry{{name: "page.html", content: "<p>Quyết định</p>"}})

	err := Walk(zipPath, "", nil, func(_, _ string, file *zip.File) error {
		rc, err := file.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return err
		}
		if string(data) != "<p>Quyết định</p>" {
			t.Errorf("content = %q", data)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
}

func TestWalk_CodePage(t *testing.T) {
	// cyrillic name stored in DOS code page without UTF-8 flag
	raw, err := charmap.CodePage866.NewEncoder().String("Тест/стр.html")
	if err != nil {
		t.Fatalf("unable to encode name: %v", err)
	}
	zipPath := createZip(t, []entry{{name: raw, content: "<p>x</p>", nonUTF8: true}})

	var names []string
	if err := Walk(zipPath, "Тест/", charmap.CodePage866, func(_, name string, _ *zip.File) error {
		names = append(names, name)
		return nil
	}); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(names) != 1 || names[0] != "Тест/стр.html" {
		t.Errorf("decoded names = %q", names)
	}
}

func TestWalk_StopsOnError(t *testing.T) {
	zipPath := createZip(t, []entry{{name: "a.html"}, {name: "b.html"}, {name: "c.html"}})

	stop := errors.New("stop")
	count := 0
	err := Walk(zipPath, "", nil, func(_, _ string, _ *zip.File) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Errorf("Walk() error = %v, want %v", err, stop)
	}
	if count != 2 {
		t.Errorf("walkFn called %d times, want 2", count)
	}
}

func TestWalk_InvalidArchive(t *testing.T) {
	if err := Walk("/nonexistent/file.zip", "", nil, func(string, string, *zip.File) error { return nil }); err == nil {
		t.Error("expected error for nonexistent file")
	}

	path := filepath.Join(t.TempDir(), "invalid.zip")
	if err := os.WriteFile(path, []byte("not a zip file"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Walk(path, "", nil, func(string, string, *zip.File) error { return nil }); err == nil {
		t.Error("expected error for invalid zip")
	}
}

func TestWalk_UnsafePaths(t *testing.T) {
	for _, name := range []string{"../evil.html", "/abs/page.html", `..\evil.html`, "a/../../b.html"} {
		t.Run(name, func(t *testing.T) {
			zipPath := createZip(t, []entry{{name: "ok.html"}, {name: name}})
			err := Walk(zipPath, "", nil, func(string, string, *zip.File) error { return nil })
			if err == nil {
				t.Errorf("expected error for unsafe entry %q", name)
			}
		})
	}
}

func TestIsSafePath(t *testing.T) {
	tests := map[string]bool{
		"page.html":        true,
		"scan/page.html":   true,
		"a..b/page.html":   true,
		"../page.html":     false,
		"/page.html":       false,
		`\page.html`:       false,
		"scan/../page.htm": false,
	}
	for name, want := range tests {
		if got := isSafePath(name); got != want {
			t.Errorf("isSafePath(%q) = %v, want %v", name, got, want)
		}
	}
}
