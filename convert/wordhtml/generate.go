// Package wordhtml writes pages as single HTML document with Word specific
// markup. Word opens such files in compatibility mode and keeps page setup
// of every section.
package wordhtml

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"

	"vbhc/content"
	"vbhc/fragment"
	"vbhc/misc"
)

const (
	nsOffice = "urn:schemas-microsoft-com:office:office"
	nsWord   = "urn:schemas-microsoft-com:office:word"
	nsHTML   = "http://www.w3.org/TR/REC-html40"

	// asks Word to open document in print layout
	wordDocumentSettings = `[if gte mso 9]><xml><w:WordDocument><w:View>Print</w:View><w:Zoom>100</w:Zoom><w:DoNotOptimizeForBrowser/></w:WordDocument></xml><![endif]`

	pageSeparatorStyle = "mso-special-character:line-break;page-break-before:always"

	baseStyles = `body { font-family: "Times New Roman", serif; font-size: 14pt; line-height: 150%; }
p, div, h1, h2, h3, h4, h5, h6 { margin-top: 6pt; margin-bottom: 6pt; }
table { border-collapse: collapse; width: 100%; }
td, th { border: 0.75pt solid windowtext; padding: 0 5.4pt; vertical-align: top; }
th { font-weight: bold; }
`
)

// Generate renders document. Every page becomes its own named section with
// page size and margins of that page.
func Generate(ctx context.Context, c *content.Content, log *zap.Logger) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(c.Pages) == 0 {
		return nil, content.ErrNoPages
	}
	log = log.Named("wordhtml")

	root := element(atom.Html,
		attr("xmlns:o", nsOffice),
		attr("xmlns:w", nsWord),
		attr("xmlns", nsHTML))
	root.AppendChild(head(c))

	body := element(atom.Body, attr("lang", "VI"))
	root.AppendChild(body)

	for i, page := range c.Pages {
		if i > 0 {
			body.AppendChild(element(atom.Br, attr("clear", "all"), attr("style", pageSeparatorStyle)))
		}
		section := element(atom.Div, attr("class", sectionName(page.Index)))
		nodes, err := fragment.ParseHTML(page.Fragment)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page.Index, err)
		}
		for _, n := range nodes {
			if sanitize(n) {
				section.AppendChild(n)
			}
		}
		body.AppendChild(section)
		log.Debug("Page rendered", zap.Int("page", page.Index), zap.Stringer("orientation", page.Orientation))
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, fmt.Errorf("unable to render document: %w", err)
	}
	return buf.Bytes(), nil
}

func head(c *content.Content) *html.Node {
	h := element(atom.Head)
	h.AppendChild(element(atom.Meta, attr("http-equiv", "Content-Type"), attr("content", "text/html; charset=utf-8")))
	h.AppendChild(element(atom.Meta, attr("name", "ProgId"), attr("content", "Word.Document")))
	h.AppendChild(element(atom.Meta, attr("name", "Generator"), attr("content", misc.GetAppName())))
	if c.Title != "" {
		title := element(atom.Title)
		title.AppendChild(&html.Node{Type: html.TextNode, Data: c.Title})
		h.AppendChild(title)
	}
	h.AppendChild(&html.Node{Type: html.CommentNode, Data: wordDocumentSettings})

	style := element(atom.Style)
	style.AppendChild(&html.Node{Type: html.TextNode, Data: stylesheet(c)})
	h.AppendChild(style)
	return h
}

func sectionName(index int) string {
	return "Section" + strconv.Itoa(index)
}

// stylesheet declares named page for every source page.
func stylesheet(c *content.Content) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, page := range c.Pages {
		g := page.Geometry
		name := sectionName(page.Index)
		fmt.Fprintf(&b, "@page %s { size: %spt %spt; mso-page-orientation: %s; margin: %spt %spt %spt %spt; mso-header-margin: 36pt; mso-footer-margin: 36pt; }\n",
			name, points(g.Width), points(g.Height), g.Orientation,
			points(g.Margins.Top), points(g.Margins.Right), points(g.Margins.Bottom), points(g.Margins.Left))
		fmt.Fprintf(&b, "div.%s { page: %s; }\n", name, name)
	}
	b.WriteString(baseStyles)
	return b.String()
}

// points formats twips as points.
func points(twips int) string {
	return strconv.FormatFloat(float64(twips)/20, 'f', -1, 64)
}

// sanitize prepares parsed fragment node for embedding: scripts, styles
// and comments are dropped and text is NFC normalized. It returns false when
// node itself has to be dropped.
func sanitize(n *html.Node) bool {
	switch n.Type {
	case html.CommentNode, html.DoctypeNode:
		return false
	case html.TextNode:
		n.Data = norm.NFC.String(n.Data)
		return true
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Template, atom.Link, atom.Meta, atom.Iframe, atom.Object:
			return false
		}
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if !sanitize(c) {
			n.RemoveChild(c)
		}
		c = next
	}
	return true
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}
