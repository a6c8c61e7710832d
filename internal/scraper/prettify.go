package scraper

import (
	"strings"

	"golang.org/x/net/html"
)

// voidElements never have children or a closing tag
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// preservedElements keep their contents byte for byte
var preservedElements = map[string]bool{
	"pre":      true,
	"textarea": true,
}

// rawTextElements hold text that is written without escaping
var rawTextElements = map[string]bool{
	"script": true,
	"style":  true,
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// Prettify renders n with one tag or text run per line, indented one space
// per nesting level. Text is trimmed and whitespace-only text is dropped,
// except inside pre and textarea elements. The result ends with a newline.
func Prettify(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	prettify(&b, n, 0)
	return b.String()
}

func prettify(b *strings.Builder, n *html.Node, depth int) {
	indent := strings.Repeat(" ", depth)

	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			prettify(b, c, depth)
		}

	case html.DoctypeNode:
		b.WriteString(indent + "<!DOCTYPE " + n.Data + ">\n")

	case html.CommentNode:
		b.WriteString(indent + "<!--" + n.Data + "-->\n")

	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return
		}
		if n.Parent != nil && n.Parent.Type == html.ElementNode && rawTextElements[n.Parent.Data] {
			b.WriteString(indent + text + "\n")
			return
		}
		b.WriteString(indent + textEscaper.Replace(text) + "\n")

	case html.ElementNode:
		if voidElements[n.Data] {
			b.WriteString(indent + "<" + n.Data + attributes(n) + "/>\n")
			return
		}
		if preservedElements[n.Data] {
			b.WriteString(indent)
			renderRaw(b, n)
			b.WriteString("\n")
			return
		}

		b.WriteString(indent + "<" + n.Data + attributes(n) + ">\n")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			prettify(b, c, depth+1)
		}
		b.WriteString(indent + "</" + n.Data + ">\n")
	}
}

// renderRaw writes n and its subtree without any whitespace changes
func renderRaw(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if n.Parent != nil && n.Parent.Type == html.ElementNode && rawTextElements[n.Parent.Data] {
			b.WriteString(n.Data)
			return
		}
		b.WriteString(textEscaper.Replace(n.Data))

	case html.CommentNode:
		b.WriteString("<!--" + n.Data + "-->")

	case html.ElementNode:
		if voidElements[n.Data] {
			b.WriteString("<" + n.Data + attributes(n) + "/>")
			return
		}
		b.WriteString("<" + n.Data + attributes(n) + ">")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderRaw(b, c)
		}
		b.WriteString("</" + n.Data + ">")
	}
}

func attributes(n *html.Node) string {
	if len(n.Attr) == 0 {
		return ""
	}
	var b strings.Builder
	for _, a := range n.Attr {
		b.WriteString(" ")
		if a.Namespace != "" {
			b.WriteString(a.Namespace + ":")
		}
		b.WriteString(a.Key + `="` + attrEscaper.Replace(a.Val) + `"`)
	}
	return b.String()
}
