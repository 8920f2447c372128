package core

import (
	"html"
	"strings"
	"unicode/utf8"

	xhtml "golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

// CleanText scrubs encoding artifacts and HTML noise from a free-text cell.
// The pipeline order is fixed: mojibake repair, entity decoding, markup
// stripping with a space separator, then whitespace collapsing and trimming.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = repairMojibake(s)
	s = html.UnescapeString(s)
	s = stripMarkup(s)
	return strings.Join(strings.Fields(s), " ")
}

// ApplyCleanup runs CleanText over every cell of the named source columns,
// resolved case-insensitively. Unknown columns are ignored. Cleanup mutates
// the table in place so the image and product-value indexes built afterwards
// see already-cleaned text.
func (t *Table) ApplyCleanup(columns []string) {
	for _, name := range columns {
		col := t.Resolve(name)
		if col == nil {
			continue
		}
		for i, v := range col.Cells {
			col.Cells[i] = CleanText(v)
		}
	}
}

// mojibakeMarkers are characters that show up as literal text when UTF-8
// bytes are mistakenly decoded as Windows-1252 ("Café" becomes "CafÃ©").
var mojibakeMarkers = []string{"Ã", "Â", "â€", "â„", "Å“", "Å’"}

// repairMojibake reverses UTF-8-read-as-Windows-1252 mangling by re-encoding
// the text as Windows-1252 and keeping the result only when the round trip
// yields valid UTF-8. Text that cannot round-trip is left untouched. Runs at
// most twice, for doubly mangled input.
func repairMojibake(s string) string {
	enc := charmap.Windows1252.NewEncoder()
	for range 2 {
		if !looksMangled(s) {
			return s
		}
		fixed, err := enc.String(s)
		if err != nil || !utf8.ValidString(fixed) {
			return s
		}
		s = fixed
	}
	return s
}

func looksMangled(s string) bool {
	for _, m := range mojibakeMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// stripMarkup drops HTML tags, separating text nodes with a single space.
// Plain text without angle brackets is returned as-is.
func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}

	doc, err := xhtml.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var b strings.Builder
	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.TextNode {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return b.String()
}
