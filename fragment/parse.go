package fragment

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"

	"vbhc/css"
)

// ParseHTML parses fragment as content of <body>. The HTML5 parser repairs
// malformed markup the same way browsers do, so result is always a tree.
func ParseHTML(fragment string) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to parse HTML fragment: %w", err)
	}
	return nodes, nil
}

// Parse parses fragment and classifies top level elements. Text and comments
// outside of elements are dropped.
func Parse(fragment string) ([]Node, error) {
	roots, err := ParseHTML(fragment)
	if err != nil {
		return nil, err
	}
	return classifyAll(roots), nil
}

func classifyAll(nodes []*html.Node) []Node {
	var out []Node
	for _, n := range nodes {
		if n.Type != html.ElementNode {
			continue
		}
		out = append(out, classify(n))
	}
	return out
}

func classifyChildren(n *html.Node) []Node {
	var out []Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		out = append(out, classify(c))
	}
	return out
}

func classify(n *html.Node) Node {
	switch n.DataAtom {
	case atom.Table:
		return &Table{Style: styleOf(n), Rows: tableRows(n, nil)}
	case atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return &Paragraph{Tag: n.Data, Style: styleOf(n), Text: TextContent(n)}
	case atom.Div:
		d := &Division{Style: styleOf(n)}
		if hasBlockChildren(n) {
			d.Children = classifyChildren(n)
			return d
		}
		text := TextContent(n)
		if text == "" && hasChild(n, atom.Br) {
			// spacer made of line breaks, every <br> is an empty paragraph
			d.Children = classifyChildren(n)
			return d
		}
		d.leaf, d.Text = true, text
		return d
	case atom.Br:
		return &LineBreak{}
	default:
		return &Unknown{Tag: n.Data}
	}
}

func styleOf(n *html.Node) css.StyleMap {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "style" {
			return css.ParseStyle(a.Val)
		}
	}
	return css.ParseStyle("")
}

// tableRows collects rows belonging to the table itself: row groups are
// entered, nested tables are not.
func tableRows(n *html.Node, rows []Row) []Row {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Thead, atom.Tbody, atom.Tfoot:
			rows = tableRows(c, rows)
		case atom.Tr:
			var row Row
			for cell := c.FirstChild; cell != nil; cell = cell.NextSibling {
				if cell.Type != html.ElementNode || (cell.DataAtom != atom.Td && cell.DataAtom != atom.Th) {
					continue
				}
				row.Cells = append(row.Cells, Cell{
					Header: cell.DataAtom == atom.Th,
					Style:  styleOf(cell),
					Text:   TextContent(cell),
				})
			}
			rows = append(rows, row)
		}
	}
	return rows
}

var blockAtoms = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Table: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Dl: true, atom.Blockquote: true, atom.Pre: true,
	atom.Hr: true, atom.Center: true, atom.Section: true, atom.Article: true,
	atom.Header: true, atom.Footer: true, atom.Main: true, atom.Aside: true,
	atom.Nav: true, atom.Address: true, atom.Figure: true, atom.Form: true,
	atom.Fieldset: true,
}

func hasChild(n *html.Node, a atom.Atom) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return true
		}
	}
	return false
}

func hasBlockChildren(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && blockAtoms[c.DataAtom] {
			return true
		}
	}
	return false
}

// TextContent flattens element text. Runs of HTML whitespace collapse into
// single space, <br> starts a new line, leading and trailing blank lines are
// removed and result is NFC normalized (OCR output often carries decomposed
// Vietnamese diacritics).
func TextContent(n *html.Node) string {
	var (
		lines []string
		cur   strings.Builder
	)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			cur.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Template:
				return
			case atom.Br:
				lines = append(lines, cur.String())
				cur.Reset()
				return
			}
		case html.CommentNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	lines = append(lines, cur.String())

	for i := range lines {
		lines[i] = collapseSpace(lines[i])
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return norm.NFC.String(strings.Join(lines, "\n"))
}

// collapseSpace follows HTML rules: only ASCII whitespace collapses, so
// non-breaking spaces survive.
func collapseSpace(s string) string {
	var (
		b       strings.Builder
		pending bool
	)
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte(' ')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
