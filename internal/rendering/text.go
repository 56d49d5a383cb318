package rendering

import (
	"strings"

	"github.com/jonathan/resumeace/internal/parsing"
)

// PlainText writes block nodes as unstyled text for the .txt export.
// Markers are dropped, list items keep a bullet, blocks are separated by a blank line.
func PlainText(nodes []Node) string {
	blocks := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if text := plainBlock(n); text != "" {
			blocks = append(blocks, text)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func plainBlock(n Node) string {
	switch n.Kind {
	case NodeHeading:
		return strings.TrimSpace(n.PlainText())
	case NodeList:
		items := make([]string, 0, len(n.Children))
		for _, item := range n.Children {
			items = append(items, parsing.DefaultBullet+" "+item.PlainText())
		}
		return strings.Join(items, "\n")
	case NodeTextBlock:
		runs := make([]string, 0, len(n.Children))
		for _, p := range n.Children {
			runs = append(runs, p.PlainText())
		}
		return strings.Join(runs, "\n\n")
	case NodeFigure:
		if len(n.Children) > 0 && n.Children[0].Alt != "" {
			return "[" + n.Children[0].Alt + "]"
		}
		return ""
	case NodeRule:
		return "---"
	}
	return n.PlainText()
}
