package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	htmlSpace  = regexp.MustCompile(`\s+`)
	urlEscaper = strings.NewReplacer(" ", "%20", "(", "%28", ")", "%29")
	altEscaper = strings.NewReplacer("[", "", "]", "", "\n", " ")
)

// HTMLToMarkdown converts an HTML document into editor markup. Headings, paragraphs,
// lists, emphasis, code, links, images and rules are kept; everything else
// contributes its text.
func HTMLToMarkdown(src string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("head, script, style, noscript, template, iframe, svg").Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	return convertSelection(root), nil
}

// convertSelection converts the children of sel into cleaned markup
func convertSelection(sel *goquery.Selection) string {
	c := &converter{}
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		c.block(s)
	})
	c.flush()
	return CleanText(strings.Join(c.blocks, "\n\n"))
}

type converter struct {
	blocks []string
	inline strings.Builder
}

func (c *converter) flush() {
	if text := normalizeInline(c.inline.String()); text != "" {
		c.blocks = append(c.blocks, text)
	}
	c.inline.Reset()
}

func (c *converter) add(block string) {
	c.flush()
	if block != "" {
		c.blocks = append(c.blocks, block)
	}
}

func (c *converter) block(s *goquery.Selection) {
	name := goquery.NodeName(s)
	switch name {
	case "#text":
		c.inline.WriteString(htmlSpace.ReplaceAllString(s.Text(), " "))
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if title := oneLine(inlineMarkup(s)); title != "" {
			c.add(strings.Repeat("#", int(name[1]-'0')) + " " + title)
		}
	case "p":
		c.add(normalizeInline(inlineMarkup(s)))
	case "ul", "ol":
		c.add(listMarkup(s))
	case "hr":
		c.add("---")
	case "img":
		c.add(imageMarkup(s))
	case "br":
		c.inline.WriteString("\n")
	case "pre":
		c.add(normalizeInline(s.Text()))
	case "div", "section", "article", "main", "header", "footer", "aside", "nav",
		"blockquote", "figure", "address", "table", "thead", "tbody", "tr", "form", "body":
		c.flush()
		s.Contents().Each(func(_ int, child *goquery.Selection) {
			c.block(child)
		})
		c.flush()
	default:
		if strings.HasPrefix(name, "#") {
			return
		}
		writeInline(&c.inline, s)
	}
}

func listMarkup(s *goquery.Selection) string {
	var items []string
	s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		nested := li.ChildrenFiltered("ul, ol").Remove()
		if text := oneLine(inlineMarkup(li)); text != "" {
			items = append(items, "• "+text)
		}
		nested.Each(func(_ int, sub *goquery.Selection) {
			if inner := listMarkup(sub); inner != "" {
				items = append(items, inner)
			}
		})
	})
	return strings.Join(items, "\n")
}

func inlineMarkup(s *goquery.Selection) string {
	var sb strings.Builder
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		writeInline(&sb, child)
	})
	return sb.String()
}

func writeInline(sb *strings.Builder, s *goquery.Selection) {
	switch goquery.NodeName(s) {
	case "#text":
		sb.WriteString(htmlSpace.ReplaceAllString(s.Text(), " "))
	case "strong", "b":
		wrapInline(sb, inlineMarkup(s), "**")
	case "em", "i":
		wrapInline(sb, inlineMarkup(s), "*")
	case "code", "kbd", "samp":
		if code := oneLine(s.Text()); code != "" {
			sb.WriteString("`" + strings.ReplaceAll(code, "`", "'") + "`")
		}
	case "a":
		text := oneLine(inlineMarkup(s))
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		switch {
		case href == "" || strings.HasPrefix(href, "#"):
			sb.WriteString(text)
		case text == "":
			sb.WriteString(urlEscaper.Replace(href))
		default:
			sb.WriteString("[" + strings.ReplaceAll(text, "]", "") + "](" + urlEscaper.Replace(href) + ")")
		}
	case "img":
		sb.WriteString(imageMarkup(s))
	case "br":
		sb.WriteString("\n")
	default:
		if strings.HasPrefix(goquery.NodeName(s), "#") {
			return
		}
		sb.WriteString(inlineMarkup(s))
	}
}

// wrapInline wraps text in marker, keeping surrounding spaces outside so the
// markers stay flanking
func wrapInline(sb *strings.Builder, text, marker string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		sb.WriteString(text)
		return
	}
	if strings.HasPrefix(text, " ") {
		sb.WriteByte(' ')
	}
	sb.WriteString(marker + trimmed + marker)
	if strings.HasSuffix(text, " ") {
		sb.WriteByte(' ')
	}
}

func imageMarkup(s *goquery.Selection) string {
	src, _ := s.Attr("src")
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	alt, _ := s.Attr("alt")
	return "![" + strings.TrimSpace(altEscaper.Replace(alt)) + "](" + urlEscaper.Replace(src) + ")"
}

func oneLine(s string) string {
	return strings.TrimSpace(htmlSpace.ReplaceAllString(s, " "))
}

// normalizeInline trims each line of an inline run and drops empty lines
func normalizeInline(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " ")); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
