// Package css interprets inline style attributes produced by the OCR layer.
//
// Parsing never fails: malformed declarations are dropped. Numeric
// interpretation is deferred to typed accessors on StyleMap which are the
// single place where per-property defaults live.
package css

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Defaults applied when property is missing or cannot be interpreted.
const (
	DefaultFontSize       = "14pt"
	DefaultMargin         = "6pt"
	DefaultTextAlign      = "left"
	DefaultFontWeight     = "normal"
	DefaultFontStyle      = "normal"
	DefaultTextDecoration = "none"
)

var (
	defaultFontSize = mustLength(DefaultFontSize)
	defaultMargin   = mustLength(DefaultMargin)
)

// StyleMap maps property name to its raw value.
type StyleMap map[string]string

// ParseStyle splits style attribute into declarations. Segments are separated
// by ';', name and value by the first ':'. Segments missing name or value are
// silently dropped, later duplicates win.
func ParseStyle(attr string) StyleMap {
	styles := make(StyleMap)
	for decl := range strings.SplitSeq(attr, ";") {
		key, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		key, value = strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		styles[key] = value
	}
	return styles
}

// Value returns raw value of the property or def when it is absent.
func (m StyleMap) Value(key, def string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return def
}

// FontSize returns "font-size" in points.
func (m StyleMap) FontSize() Length {
	if l, err := ParseLength(m["font-size"]); err == nil {
		return l
	}
	return defaultFontSize
}

// MarginTop returns top margin in points, looking at "margin-top" first and
// then at "margin" shorthand.
func (m StyleMap) MarginTop() Length {
	return m.margin("margin-top", 0)
}

// MarginBottom returns bottom margin in points, looking at "margin-bottom"
// first and then at "margin" shorthand.
func (m StyleMap) MarginBottom() Length {
	return m.margin("margin-bottom", 2)
}

// margin resolves one vertical margin. pos is index of the side in 4 value
// shorthand (top, right, bottom, left).
func (m StyleMap) margin(key string, pos int) Length {
	if l, err := ParseLength(m[key]); err == nil {
		return l
	}
	if v := shorthandSide(splitValues(m["margin"]), pos); v != "" {
		if l, err := ParseLength(v); err == nil {
			return l
		}
	}
	return defaultMargin
}

// TextAlign returns mapped "text-align".
func (m StyleMap) TextAlign() Alignment {
	return ParseAlignment(m.Value("text-align", DefaultTextAlign))
}

// Bold is true only for "font-weight: bold".
func (m StyleMap) Bold() bool {
	return strings.EqualFold(m.Value("font-weight", DefaultFontWeight), "bold")
}

// Italic is true only for "font-style: italic".
func (m StyleMap) Italic() bool {
	return strings.EqualFold(m.Value("font-style", DefaultFontStyle), "italic")
}

// Underline is true when "text-decoration" mentions underline anywhere, so
// "underline dotted" and "underline overline" both count.
func (m StyleMap) Underline() bool {
	return strings.Contains(strings.ToLower(m.Value("text-decoration", DefaultTextDecoration)), "underline")
}

// splitValues tokenizes space separated property value, ignoring comments.
func splitValues(value string) []string {
	if value == "" {
		return nil
	}
	l := css.NewLexer(parse.NewInputString(value))
	var out []string
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return out
		case css.WhitespaceToken, css.CommentToken:
		default:
			out = append(out, string(data))
		}
	}
}

// shorthandSide picks side value following CSS box shorthand rules.
func shorthandSide(values []string, pos int) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	case 2:
		return values[pos%2]
	case 3:
		if pos == 3 {
			return values[1]
		}
		return values[pos]
	default:
		return values[pos]
	}
}
