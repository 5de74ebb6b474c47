// Package docx writes pages as OOXML WordprocessingML package.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	fixzip "github.com/hidez8891/zip"
	"go.uber.org/zap"

	"vbhc/common"
	"vbhc/config"
	"vbhc/content"
)

const (
	headerDistance = 720
	footerDistance = 720
)

// Generate assembles complete package in memory. Nothing is returned unless
// every part has been written successfully.
func Generate(ctx context.Context, c *content.Content, cfg *config.DocumentConfig, log *zap.Logger) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(c.Pages) == 0 {
		return nil, content.ErrNoPages
	}
	log = log.Named("docx")

	log.Debug("Generating package", zap.Int("pages", len(c.Pages)), zap.Stringer("sections", cfg.Sections))

	parts := []struct {
		name string
		doc  *etree.Document
	}{
		{partContentTypes, contentTypes()},
		{partRels, packageRels()},
		{partDocument, document(c, cfg.Sections, log)},
		{partDocumentRels, documentRels()},
		{partStyles, styles()},
		{partCore, coreProperties(c)},
		{partApp, appProperties(c)},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		if err := writeXMLToZip(zw, part.name, part.doc); err != nil {
			zw.Close()
			return nil, fmt.Errorf("unable to write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("unable to finalize package: %w", err)
	}

	if !cfg.FixZip {
		return buf.Bytes(), nil
	}
	data, err := withoutDataDescriptors(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("unable to rewrite package: %w", err)
	}
	return data, nil
}

// document builds main part. In per page mode every page but the last ends
// with paragraph carrying its own section properties. In trailing mode pages
// are separated by page breaks. Either way body ends with section properties
// of the last page.
func document(c *content.Content, mode common.SectionMode, log *zap.Logger) *etree.Document {
	doc := newDocument()
	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsMain)
	root.CreateAttr("xmlns:r", nsRelationships)
	body := root.CreateElement("w:body")

	last := len(c.Pages) - 1
	for i, page := range c.Pages {
		if mode == common.SectionModeTrailing && i > 0 {
			body.AddChild(pageBreak())
		}
		for _, el := range newWalker(page, log).walk(page.Nodes) {
			body.AddChild(el)
		}
		if mode == common.SectionModePerPage && i < last {
			p := body.CreateElement("w:p")
			p.CreateElement("w:pPr").AddChild(sectionProperties(page.Geometry))
		}
	}
	body.AddChild(sectionProperties(c.Pages[last].Geometry))
	return doc
}

func pageBreak() *etree.Element {
	p := etree.NewElement("w:p")
	p.CreateElement("w:pPr").CreateElement("w:pageBreakBefore")
	return p
}

func sectionProperties(g content.Geometry) *etree.Element {
	sect := etree.NewElement("w:sectPr")
	sect.CreateElement("w:type").CreateAttr("w:val", "nextPage")

	size := sect.CreateElement("w:pgSz")
	size.CreateAttr("w:w", strconv.Itoa(g.Width))
	size.CreateAttr("w:h", strconv.Itoa(g.Height))
	size.CreateAttr("w:orient", g.Orientation.String())

	mar := sect.CreateElement("w:pgMar")
	mar.CreateAttr("w:top", strconv.Itoa(g.Margins.Top))
	mar.CreateAttr("w:right", strconv.Itoa(g.Margins.Right))
	mar.CreateAttr("w:bottom", strconv.Itoa(g.Margins.Bottom))
	mar.CreateAttr("w:left", strconv.Itoa(g.Margins.Left))
	mar.CreateAttr("w:header", strconv.Itoa(headerDistance))
	mar.CreateAttr("w:footer", strconv.Itoa(footerDistance))
	mar.CreateAttr("w:gutter", "0")
	return sect
}

func writeXMLToZip(zw *zip.Writer, name string, doc *etree.Document) error {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	return writeDataToZip(zw, name, buf.Bytes())
}

func writeDataToZip(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// withoutDataDescriptors copies archive entries clearing data descriptor
// flag, sizes and checksums end up in local headers.
func withoutDataDescriptors(data []byte) ([]byte, error) {
	r, err := fixzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	w := fixzip.NewWriter(&out)
	for _, file := range r.File {
		file.Flags &= ^fixzip.FlagDataDescriptor
		if err := w.CopyFile(file); err != nil {
			w.Close()
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
