package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"gopkg.in/yaml.v3"

	"vbhc/archive"
	"vbhc/common"
	"vbhc/content"
)

// maxPageSize limits single page fragment.
const maxPageSize = 16 << 20

// manifest describes document pages explicitly. JSON is accepted as well
// since it is valid YAML.
type manifest struct {
	Name  string         `yaml:"name"`
	Pages []manifestPage `yaml:"pages"`
}

type manifestPage struct {
	Index       int                `yaml:"index"`
	Orientation common.Orientation `yaml:"orientation"`
	// either inline fragment or path to fragment file, relative to manifest
	Content string `yaml:"content"`
	File    string `yaml:"file"`
}

// pageFile is a page fragment found in directory or archive.
type pageFile struct {
	name string
	open func() (io.ReadCloser, error)
}

// loadSources resolves src into ordered page sources. src could be page
// manifest, single fragment file, directory of fragments or zip archive with
// optional path inside it. Second value is the name of the source to derive
// output name from.
func loadSources(ctx context.Context, src string, cp encoding.Encoding, log *zap.Logger) ([]content.PageSource, string, error) {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return nil, "", fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			srcs, err := loadDir(ctx, head, log)
			return srcs, filepath.Base(head), err
		}

		if !fi.Mode().IsRegular() {
			return nil, "", fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return nil, "", fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// path inside archive always uses forward slashes
			tail = filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			srcs, err := loadArchive(ctx, head, tail, cp, log)
			return srcs, filepath.Base(head), err
		}

		if len(tail) != 0 {
			return nil, "", fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		switch {
		case isManifestFile(head):
			return loadManifest(ctx, head, log)
		case isPageFile(head):
			srcs, err := loadPages(ctx, []pageFile{osPageFile(head)}, log)
			return srcs, filepath.Base(head), err
		}
		return nil, "", fmt.Errorf("input was not recognized as page manifest, fragment or archive (%s)", head)
	}
	return nil, "", fmt.Errorf("input source was not found (%s)", src)
}

func isManifestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

func isPageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

// isArchiveFile checks both extension and file signature.
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return filetype.IsArchive(head[:n]) && filetype.Is(head[:n], "zip"), nil
}

// pageOrientation derives orientation from file name: "p2.landscape.html" and
// "p2-landscape.html" are landscape pages.
func pageOrientation(name string) common.Orientation {
	name = strings.ToLower(filepath.Base(name))
	if strings.Contains(name, ".landscape.") || strings.Contains(name, "-landscape") {
		return common.OrientationLandscape
	}
	return common.OrientationPortrait
}

// decodePage reads fragment converting it to UTF-8. Inputs which look like
// known binary formats (PDF pages, scans) are rejected.
func decodePage(r io.Reader, name string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxPageSize+1))
	if err != nil {
		return "", fmt.Errorf("unable to read page %s: %w", name, err)
	}
	if len(data) > maxPageSize {
		return "", fmt.Errorf("page %s is too large", name)
	}
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return "", fmt.Errorf("page %s is %s, not HTML fragment", name, kind.MIME.Value)
	}
	dr, err := charset.NewReader(bytes.NewReader(data), "text/html")
	if err != nil {
		return "", fmt.Errorf("unable to detect page %s encoding: %w", name, err)
	}
	text, err := io.ReadAll(dr)
	if err != nil {
		return "", fmt.Errorf("unable to decode page %s: %w", name, err)
	}
	return strings.TrimPrefix(string(text), "\ufeff"), nil
}

func osPageFile(path string) pageFile {
	return pageFile{
		name: path,
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// loadPages numbers files in the given order starting with 1.
func loadPages(ctx context.Context, files []pageFile, log *zap.Logger) ([]content.PageSource, error) {
	srcs := make([]content.PageSource, 0, len(files))
	for i, pf := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := pf.open()
		if err != nil {
			return nil, fmt.Errorf("unable to open page %s: %w", pf.name, err)
		}
		text, err := decodePage(r, pf.name)
		r.Close()
		if err != nil {
			return nil, err
		}
		src := content.PageSource{
			Index:       i + 1,
			Orientation: pageOrientation(pf.name),
			Fragment:    text,
		}
		log.Debug("Page loaded", zap.Int("index", src.Index), zap.Stringer("orientation", src.Orientation), zap.String("file", pf.name))
		srcs = append(srcs, src)
	}
	return srcs, nil
}

func sortNatural(files []pageFile) {
	sort.SliceStable(files, func(i, j int) bool {
		return natural.Less(files[i].name, files[j].name)
	})
}

// loadDir takes fragment files directly in dir (no recursion) in natural name
// order.
func loadDir(ctx context.Context, dir string, log *zap.Logger) ([]content.PageSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]pageFile, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || !isPageFile(e.Name()) {
			log.Debug("Skipping, not a page fragment", zap.String("path", e.Name()))
			continue
		}
		files = append(files, osPageFile(filepath.Join(dir, e.Name())))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no page fragments found in %s: %w", dir, content.ErrNoPages)
	}
	sortNatural(files)
	return loadPages(ctx, files, log)
}

// loadArchive takes fragment files under pathIn in natural name order.
// Archive is closed when Walk returns so entries are read in place.
func loadArchive(ctx context.Context, path, pathIn string, cp encoding.Encoding, log *zap.Logger) ([]content.PageSource, error) {
	files := make([]pageFile, 0, 16)
	err := archive.Walk(path, pathIn, cp, func(_, name string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !isPageFile(name) {
			log.Debug("Skipping file in archive, not a page fragment", zap.String("archive", path), zap.String("file", name))
			return nil
		}
		if f.UncompressedSize64 > maxPageSize {
			return fmt.Errorf("page %s is too large", name)
		}
		r, err := f.Open()
		if err != nil {
			return fmt.Errorf("unable to open page %s: %w", name, err)
		}
		defer r.Close()

		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("unable to read page %s: %w", name, err)
		}
		files = append(files, pageFile{
			name: name,
			open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no page fragments found in %s: %w", filepath.Join(path, pathIn), content.ErrNoPages)
	}
	sortNatural(files)
	return loadPages(ctx, files, log)
}

// loadManifest reads pages listed in manifest. Fragment files are relative to
// manifest location.
func loadManifest(ctx context.Context, path string, log *zap.Logger) ([]content.PageSource, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	var m manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, "", fmt.Errorf("unable to parse page manifest %s: %w", path, err)
	}

	name := m.Name
	if name == "" {
		name = filepath.Base(path)
	}

	dir := filepath.Dir(path)
	srcs := make([]content.PageSource, 0, len(m.Pages))
	for i, p := range m.Pages {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		if p.Content != "" && p.File != "" {
			return nil, "", fmt.Errorf("manifest page %d: both content and file are specified", i+1)
		}
		src := content.PageSource{
			Index:       p.Index,
			Orientation: p.Orientation,
			Fragment:    p.Content,
		}
		if p.File != "" {
			file := p.File
			if !filepath.IsAbs(file) {
				file = filepath.Join(dir, filepath.FromSlash(file))
			}
			f, err := os.Open(file)
			if err != nil {
				return nil, "", fmt.Errorf("manifest page %d: %w", p.Index, err)
			}
			src.Fragment, err = decodePage(f, file)
			f.Close()
			if err != nil {
				return nil, "", fmt.Errorf("manifest page %d: %w", p.Index, err)
			}
		}
		log.Debug("Page loaded", zap.Int("index", src.Index), zap.Stringer("orientation", src.Orientation), zap.String("manifest", path))
		srcs = append(srcs, src)
	}
	return srcs, name, nil
}
