package docx

import (
	"strconv"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"vbhc/content"
	"vbhc/misc"
)

const (
	nsMain          = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsCoreProps     = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsExtendedProps = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"

	relOfficeDocument = nsRelationships + "/officeDocument"
	relStyles         = nsRelationships + "/styles"
	relExtendedProps  = nsRelationships + "/extended-properties"
	relCoreProps      = nsPackageRels + "/metadata/core-properties"

	language = "vi-VN"
)

// Package part names, in order of appearance in the archive.
const (
	partContentTypes = "[Content_Types].xml"
	partRels         = "_rels/.rels"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partStyles       = "word/styles.xml"
	partCore         = "docProps/core.xml"
	partApp          = "docProps/app.xml"
)

// idNamespace scopes identifiers derived from document content.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:"+misc.GetAppName()+":document"))

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}

func contentTypes() *etree.Document {
	doc := newDocument()
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", nsContentTypes)

	def := func(ext, ct string) {
		d := types.CreateElement("Default")
		d.CreateAttr("Extension", ext)
		d.CreateAttr("ContentType", ct)
	}
	override := func(part, ct string) {
		o := types.CreateElement("Override")
		o.CreateAttr("PartName", "/"+part)
		o.CreateAttr("ContentType", ct)
	}

	def("rels", "application/vnd.openxmlformats-package.relationships+xml")
	def("xml", "application/xml")
	override(partDocument, "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml")
	override(partStyles, "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml")
	override(partCore, "application/vnd.openxmlformats-package.core-properties+xml")
	override(partApp, "application/vnd.openxmlformats-officedocument.extended-properties+xml")
	return doc
}

func relationships(targets ...[2]string) *etree.Document {
	doc := newDocument()
	rels := doc.CreateElement("Relationships")
	rels.CreateAttr("xmlns", nsPackageRels)
	for i, t := range targets {
		rel := rels.CreateElement("Relationship")
		rel.CreateAttr("Id", "rId"+strconv.Itoa(i+1))
		rel.CreateAttr("Type", t[0])
		rel.CreateAttr("Target", t[1])
	}
	return doc
}

func packageRels() *etree.Document {
	return relationships(
		[2]string{relOfficeDocument, partDocument},
		[2]string{relCoreProps, partCore},
		[2]string{relExtendedProps, partApp},
	)
}

func documentRels() *etree.Document {
	return relationships([2]string{relStyles, "styles.xml"})
}

// styles defines document defaults: Times New Roman 14pt, 1.5 line spacing.
func styles() *etree.Document {
	doc := newDocument()
	root := doc.CreateElement("w:styles")
	root.CreateAttr("xmlns:w", nsMain)

	defaults := root.CreateElement("w:docDefaults")
	rpr := defaults.CreateElement("w:rPrDefault").CreateElement("w:rPr")
	fonts := rpr.CreateElement("w:rFonts")
	for _, attr := range []string{"w:ascii", "w:eastAsia", "w:hAnsi", "w:cs"} {
		fonts.CreateAttr(attr, FontFamily)
	}
	rpr.CreateElement("w:sz").CreateAttr("w:val", "28")
	rpr.CreateElement("w:szCs").CreateAttr("w:val", "28")
	lang := rpr.CreateElement("w:lang")
	lang.CreateAttr("w:val", language)
	lang.CreateAttr("w:eastAsia", "en-US")
	lang.CreateAttr("w:bidi", "ar-SA")

	ppr := defaults.CreateElement("w:pPrDefault").CreateElement("w:pPr")
	spacing := ppr.CreateElement("w:spacing")
	spacing.CreateAttr("w:after", "0")
	spacing.CreateAttr("w:line", strconv.Itoa(lineSpacing))
	spacing.CreateAttr("w:lineRule", "auto")

	normal := root.CreateElement("w:style")
	normal.CreateAttr("w:type", "paragraph")
	normal.CreateAttr("w:default", "1")
	normal.CreateAttr("w:styleId", "Normal")
	normal.CreateElement("w:name").CreateAttr("w:val", "Normal")
	normal.CreateElement("w:qFormat")
	spacing = normal.CreateElement("w:pPr").CreateElement("w:spacing")
	spacing.CreateAttr("w:line", strconv.Itoa(lineSpacing))
	spacing.CreateAttr("w:lineRule", "auto")

	table := root.CreateElement("w:style")
	table.CreateAttr("w:type", "table")
	table.CreateAttr("w:default", "1")
	table.CreateAttr("w:styleId", "TableNormal")
	table.CreateElement("w:name").CreateAttr("w:val", "Normal Table")
	table.CreateElement("w:uiPriority").CreateAttr("w:val", "99")
	table.CreateElement("w:semiHidden")
	table.CreateElement("w:unhideWhenUsed")
	mar := table.CreateElement("w:tblPr").CreateElement("w:tblCellMar")
	for _, side := range []struct {
		name  string
		width int
	}{{"top", 0}, {"left", 108}, {"bottom", 0}, {"right", 108}} {
		m := mar.CreateElement("w:" + side.name)
		m.CreateAttr("w:w", strconv.Itoa(side.width))
		m.CreateAttr("w:type", "dxa")
	}
	return doc
}

// documentID is stable for the same page content, so repeated conversions
// produce identical packages.
func documentID(c *content.Content) uuid.UUID {
	var data []byte
	for _, p := range c.Pages {
		data = strconv.AppendInt(data, int64(p.Index), 10)
		data = append(data, 0)
		data = append(data, p.Orientation.String()...)
		data = append(data, 0)
		data = append(data, p.Fragment...)
		data = append(data, 0)
	}
	return uuid.NewSHA1(idNamespace, data)
}

func coreProperties(c *content.Content) *etree.Document {
	doc := newDocument()
	root := doc.CreateElement("cp:coreProperties")
	root.CreateAttr("xmlns:cp", nsCoreProps)
	root.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	root.CreateAttr("xmlns:dcterms", "http://purl.org/dc/terms/")
	root.CreateAttr("xmlns:dcmitype", "http://purl.org/dc/dcmitype/")
	root.CreateAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")

	if c.Title != "" {
		root.CreateElement("dc:title").SetText(c.Title)
	}
	root.CreateElement("dc:identifier").SetText(documentID(c).URN())
	root.CreateElement("dc:language").SetText(language)
	root.CreateElement("cp:lastModifiedBy").SetText(misc.GetAppName())
	return doc
}

func appProperties(c *content.Content) *etree.Document {
	doc := newDocument()
	root := doc.CreateElement("Properties")
	root.CreateAttr("xmlns", nsExtendedProps)
	root.CreateElement("Application").SetText(misc.GetAppName())
	root.CreateElement("Pages").SetText(strconv.Itoa(len(c.Pages)))
	return doc
}
