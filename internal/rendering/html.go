package rendering

import (
	"fmt"
	"html"
	"strings"
)

// HTML writes block nodes as an HTML fragment. Every text and attribute value is
// escaped before it is written, so "<", ">", "&" and quotes in user content can
// never open or close an element.
func HTML(nodes []Node) string {
	var sb strings.Builder
	for i, n := range nodes {
		if i > 0 {
			sb.WriteByte('\n')
		}
		writeHTML(&sb, n)
	}
	return sb.String()
}

// InlineHTML writes inline nodes without any block wrapper
func InlineHTML(nodes []Node) string {
	var sb strings.Builder
	writeHTMLChildren(&sb, nodes)
	return sb.String()
}

func writeHTML(sb *strings.Builder, n Node) {
	switch n.Kind {
	case NodeText:
		sb.WriteString(html.EscapeString(n.Text))
	case NodeBold:
		sb.WriteString("<strong>")
		writeHTMLChildren(sb, n.Children)
		sb.WriteString("</strong>")
	case NodeItalic:
		sb.WriteString("<em>")
		writeHTMLChildren(sb, n.Children)
		sb.WriteString("</em>")
	case NodeCode:
		sb.WriteString(`<code class="resume-code">`)
		sb.WriteString(html.EscapeString(n.Text))
		sb.WriteString("</code>")
	case NodeLink:
		fmt.Fprintf(sb, `<a class="resume-link" href="%s">`, html.EscapeString(SafeURL(n.URL, false)))
		writeHTMLChildren(sb, n.Children)
		sb.WriteString("</a>")
	case NodeImage:
		fmt.Fprintf(sb, `<img class="resume-inline-image" src="%s" alt="%s" />`,
			html.EscapeString(SafeURL(n.URL, true)), html.EscapeString(n.Alt))
	case NodeLineBreak:
		sb.WriteString("<br />")

	case NodeHeading:
		fmt.Fprintf(sb, `<h%d class="resume-h%d">`, n.Level, n.Level)
		writeHTMLChildren(sb, n.Children)
		fmt.Fprintf(sb, "</h%d>", n.Level)
	case NodeTextBlock:
		for i, p := range n.Children {
			if i > 0 {
				sb.WriteByte('\n')
			}
			writeHTML(sb, p)
		}
	case NodeParagraph:
		sb.WriteString(`<p class="resume-p">`)
		writeHTMLChildren(sb, n.Children)
		sb.WriteString("</p>")
	case NodeList:
		sb.WriteString(`<ul class="resume-list">`)
		for _, item := range n.Children {
			writeHTML(sb, item)
		}
		sb.WriteString("</ul>")
	case NodeListItem:
		sb.WriteString("<li>")
		writeHTMLChildren(sb, n.Children)
		sb.WriteString("</li>")
	case NodeFigure:
		sb.WriteString(`<div class="resume-figure">`)
		for _, img := range n.Children {
			fmt.Fprintf(sb, `<img class="resume-photo" src="%s" alt="%s" />`,
				html.EscapeString(SafeURL(img.URL, true)), html.EscapeString(img.Alt))
		}
		sb.WriteString("</div>")
	case NodeRule:
		sb.WriteString(`<hr class="resume-rule" />`)
	}
}

func writeHTMLChildren(sb *strings.Builder, children []Node) {
	for _, c := range children {
		writeHTML(sb, c)
	}
}

// SafeURL returns raw unless its scheme could execute script. Links accept
// http, https, mailto, tel and scheme-less references; images additionally accept
// data:image URIs. Anything else becomes "#".
func SafeURL(raw string, image bool) string {
	u := strings.TrimSpace(raw)
	probe := strings.ToLower(strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}
		return r
	}, u))

	colon := strings.IndexByte(probe, ':')
	if colon <= 0 || strings.ContainsAny(probe[:colon], "/?#") {
		return u
	}
	switch probe[:colon] {
	case "http", "https", "mailto", "tel":
		return u
	case "data":
		if image && strings.HasPrefix(probe, "data:image/") {
			return u
		}
	}
	return "#"
}
