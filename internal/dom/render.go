package dom

import (
	"html"
	"io"
	"sort"
	"strings"
)

var voidElements = map[string]bool{
	"img":   true,
	"input": true,
	"br":    true,
	"hr":    true,
}

// Render writes el and its subtree as HTML.
func Render(w io.Writer, el *Element) error {
	var b strings.Builder
	writeElement(&b, el)
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderChildren writes only the subtree below el, i.e. its innerHTML.
func RenderChildren(w io.Writer, el *Element) error {
	var b strings.Builder
	for _, c := range el.children {
		writeElement(&b, c)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// InnerHTML is RenderChildren into a string.
func InnerHTML(el *Element) string {
	var b strings.Builder
	for _, c := range el.children {
		writeElement(&b, c)
	}
	return b.String()
}

func writeElement(b *strings.Builder, el *Element) {
	b.WriteByte('<')
	b.WriteString(el.Tag)
	if el.ID != "" {
		writeAttr(b, "id", el.ID)
	}
	if len(el.classes) > 0 {
		writeAttr(b, "class", strings.Join(el.classes, " "))
	}
	if len(el.style) > 0 {
		writeAttr(b, "style", styleString(el.style))
	}
	names := make([]string, 0, len(el.attrs))
	for name := range el.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		writeAttr(b, name, el.attrs[name])
	}
	b.WriteByte('>')

	if voidElements[el.Tag] {
		return
	}

	b.WriteString(html.EscapeString(el.Text))
	for _, c := range el.children {
		writeElement(b, c)
	}
	b.WriteString("</")
	b.WriteString(el.Tag)
	b.WriteByte('>')
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteByte('"')
}

func styleString(style map[string]string) string {
	props := make([]string, 0, len(style))
	for p := range style {
		props = append(props, p)
	}
	sort.Strings(props)
	parts := make([]string, 0, len(props))
	for _, p := range props {
		parts = append(parts, p+": "+style[p])
	}
	return strings.Join(parts, "; ")
}
