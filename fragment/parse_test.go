package fragment

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestParse_NodeKinds(t *testing.T) {
	nodes, err := Parse(`<p style="text-align:center">A</p><div><p>B</p></div><table><tr><td>C</td></tr></table><br><ul><li>D</li></ul>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(nodes) != 5 {
		t.Fatalf("got %d nodes, want 5:\n%s", len(nodes), Dump(nodes))
	}

	p, ok := nodes[0].(*Paragraph)
	if !ok {
		t.Fatalf("node 0 is %T, want *Paragraph", nodes[0])
	}
	if p.Text != "A" || p.Style["text-align"] != "center" {
		t.Errorf("paragraph = %+v", p)
	}

	d, ok := nodes[1].(*Division)
	if !ok {
		t.Fatalf("node 1 is %T, want *Division", nodes[1])
	}
	if d.Leaf() || len(d.Children) != 1 {
		t.Errorf("division leaf=%v children=%d, want container with 1 child", d.Leaf(), len(d.Children))
	}

	if _, ok := nodes[2].(*Table); !ok {
		t.Errorf("node 2 is %T, want *Table", nodes[2])
	}
	if _, ok := nodes[3].(*LineBreak); !ok {
		t.Errorf("node 3 is %T, want *LineBreak", nodes[3])
	}
	u, ok := nodes[4].(*Unknown)
	if !ok || u.Tag != "ul" {
		t.Errorf("node 4 = %#v, want Unknown ul", nodes[4])
	}
}

func TestParse_EmptyAndTextOnly(t *testing.T) {
	for _, input := range []string{"", "   ", "```html", "<!-- comment -->"} {
		nodes, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", input, err)
		}
		if len(nodes) != 0 {
			t.Errorf("Parse(%q) = %d nodes, want 0", input, len(nodes))
		}
	}
}

func TestParse_Headings(t *testing.T) {
	nodes, err := Parse(`<h1>QUYẾT ĐỊNH</h1><h3>Điều 1</h3>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	for i, tag := range []string{"h1", "h3"} {
		p, ok := nodes[i].(*Paragraph)
		if !ok || p.Tag != tag {
			t.Errorf("node %d = %#v, want paragraph %s", i, nodes[i], tag)
		}
	}
}

func TestParse_LeafDivision(t *testing.T) {
	nodes, err := Parse(`<div style="font-size:13px;text-align:center">- 2 -</div><div>Hà Nội, <i>ngày 5</i><br>tháng 6</div>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	first := nodes[0].(*Division)
	if !first.Leaf() || first.Text != "- 2 -" {
		t.Errorf("first division leaf=%v text=%q", first.Leaf(), first.Text)
	}
	second := nodes[1].(*Division)
	if !second.Leaf() || second.Text != "Hà Nội, ngày 5\ntháng 6" {
		t.Errorf("second division leaf=%v text=%q", second.Leaf(), second.Text)
	}
}

func TestParse_LineBreakDivision(t *testing.T) {
	nodes, err := Parse(`<div><br><br></div><div> <br> </div><div><br>text</div>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}

	tests := []struct {
		leaf     bool
		children int
		text     string
	}{
		{false, 2, ""},
		{false, 1, ""},
		{true, 0, "text"},
	}
	for i, tt := range tests {
		d := nodes[i].(*Division)
		if d.Leaf() != tt.leaf || len(d.Children) != tt.children || d.Text != tt.text {
			t.Errorf("division %d: leaf=%v children=%d text=%q", i, d.Leaf(), len(d.Children), d.Text)
		}
		for _, c := range d.Children {
			if _, ok := c.(*LineBreak); !ok {
				t.Errorf("division %d child is %T, want *LineBreak", i, c)
			}
		}
	}
}

func TestParse_MalformedMarkup(t *testing.T) {
	nodes, err := Parse(`<p>unclosed <b>bold<p>second</div></span>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2:\n%s", len(nodes), Dump(nodes))
	}
	if p := nodes[0].(*Paragraph); p.Text != "unclosed bold" {
		t.Errorf("first paragraph text = %q", p.Text)
	}
	if p := nodes[1].(*Paragraph); p.Text != "second" {
		t.Errorf("second paragraph text = %q", p.Text)
	}
}

func TestParse_Table(t *testing.T) {
	nodes, err := Parse(`<table style="border:none">
  <thead><tr><th>STT</th><th style="font-size:12pt">Nội dung</th></tr></thead>
  <tbody>
    <tr><td>1</td><td>A <table><tr><td>nested</td></tr></table></td></tr>
    <tr><td>2</td></tr>
  </tbody>
</table>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	tbl, ok := nodes[0].(*Table)
	if !ok {
		t.Fatalf("node 0 is %T, want *Table", nodes[0])
	}
	if len(tbl.Rows) != 3 {
		t.Fatalf("rows = %d, want 3 (nested table rows must not leak):\n%s", len(tbl.Rows), Dump(nodes))
	}
	if tbl.Columns() != 2 {
		t.Errorf("Columns() = %d, want 2", tbl.Columns())
	}
	head := tbl.Rows[0].Cells
	if !head[0].Header || head[1].Style["font-size"] != "12pt" || head[1].Text != "Nội dung" {
		t.Errorf("header row = %+v", head)
	}
	if got := tbl.Rows[1].Cells[1].Text; got != "A nested" {
		t.Errorf("nested cell text = %q, want flattened %q", got, "A nested")
	}
	if tbl.Style["border"] != "none" {
		t.Errorf("table style = %v", tbl.Style)
	}
}

func TestTextContent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapse", "<p>  a \n\t b  </p>", "a b"},
		{"inline elements", "<p>Căn cứ <b>Luật</b> <i>số</i>  1</p>", "Căn cứ Luật số 1"},
		{"line break", "<p>CỘNG HÒA<br/>Độc lập</p>", "CỘNG HÒA\nĐộc lập"},
		{"trailing break", "<p>a<br></p>", "a"},
		{"double break kept", "<p>a<br><br>b</p>", "a\n\nb"},
		{"nbsp kept", "<p>a&nbsp;&nbsp;b</p>", "a\u00a0\u00a0b"},
		{"script skipped", "<p>a<script>alert(1)</script>b</p>", "ab"},
		{"entities", "<p>&lt;x&gt; &amp; &quot;y&quot;</p>", "<x> & \"y\""},
		{"nfc", "<p>Vie\u0323\u0302t</p>", "Việt"},
		{"whitespace only", "<p> \n </p>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, err := ParseHTML(tt.input)
			if err != nil {
				t.Fatalf("ParseHTML() error = %v", err)
			}
			var p *html.Node
			for _, r := range roots {
				if r.Type == html.ElementNode {
					p = r
					break
				}
			}
			if p == nil {
				t.Fatal("no element parsed")
			}
			if got := TextContent(p); got != tt.want {
				t.Errorf("TextContent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDump(t *testing.T) {
	nodes, err := Parse(`<p style="font-weight:bold">Tiêu đề</p><span>x</span><table><tr><th>a</th><td>b</td></tr></table>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	out := Dump(nodes)
	for _, want := range []string{
		"paragraph <p>",
		`style: font-weight="bold"`,
		`text: "Tiêu đề"`,
		"unknown <span>",
		"table 1x2",
		"header cell 1",
		"cell 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump() missing %q:\n%s", want, out)
		}
	}
}
