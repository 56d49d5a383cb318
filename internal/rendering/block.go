package rendering

import (
	"strings"

	"github.com/jonathan/resumeace/internal/parsing"
	"github.com/jonathan/resumeace/internal/types"
)

// Renderer converts Sections into block nodes, memoizing per section text
type Renderer struct {
	cache *Cache
}

// NewRenderer creates a Renderer. A nil cache disables memoization.
func NewRenderer(cache *Cache) *Renderer {
	return &Renderer{cache: cache}
}

// Render converts an ordered list of sections into one block node per section
func (r *Renderer) Render(sections []types.Section) []Node {
	nodes := make([]Node, 0, len(sections))
	for _, sec := range sections {
		nodes = append(nodes, r.RenderSection(sec))
	}
	return nodes
}

// RenderSection converts one section. The result depends only on the section's
// kind and RawText, so unchanged sections are served from the cache.
func (r *Renderer) RenderSection(sec types.Section) Node {
	var node Node
	key := cacheKey(sec)
	if cached, ok := r.cache.get(key); ok {
		node = cached
	} else {
		node = renderSection(sec)
		r.cache.put(key, node)
	}
	node.SectionID = sec.ID
	return node
}

func renderSection(sec types.Section) Node {
	switch sec.Kind {
	case types.KindHeading:
		return renderHeading(sec)
	case types.KindList:
		return renderList(sec)
	case types.KindImage:
		return renderFigure(sec)
	case types.KindRule:
		return Node{Kind: NodeRule}
	default:
		return renderTextBlock(sec)
	}
}

func renderHeading(sec types.Section) Node {
	level, title, ok := parsing.ParseHeading(sec.RawText)
	if !ok {
		level, title = sec.Level, sec.Title
		if title == "" {
			title = strings.TrimSpace(sec.RawText)
		}
	}
	level = max(1, min(level, parsing.MaxHeadingLevel))
	return Node{Kind: NodeHeading, Level: level, Children: Inline(title)}
}

func renderList(sec types.Section) Node {
	list := Node{Kind: NodeList}
	for _, line := range sec.Lines() {
		if strings.TrimSpace(line) == "" {
			continue
		}
		list.Children = append(list.Children, Node{
			Kind:     NodeListItem,
			Children: Inline(parsing.StripBullet(line)),
		})
	}
	return list
}

func renderFigure(sec types.Section) Node {
	alt, src, ok := parsing.ParseImage(sec.RawText)
	if !ok {
		alt, src = sec.Alt, sec.Src
	}
	return Node{
		Kind:     NodeFigure,
		Children: []Node{{Kind: NodeImage, Alt: alt, URL: src}},
	}
}

// renderTextBlock splits a paragraph section into blank-line separated runs.
// Lines inside a run are joined with line breaks.
func renderTextBlock(sec types.Section) Node {
	block := Node{Kind: NodeTextBlock}
	var para *Node

	for _, line := range sec.Lines() {
		line = strings.TrimSpace(line)
		if line == "" {
			para = nil
			continue
		}
		if para == nil {
			block.Children = append(block.Children, Node{Kind: NodeParagraph})
			para = &block.Children[len(block.Children)-1]
		} else {
			para.Children = append(para.Children, Node{Kind: NodeLineBreak})
		}
		para.Children = append(para.Children, Inline(line)...)
	}

	return block
}

func cacheKey(sec types.Section) string {
	return sec.Kind.String() + "\x00" + sec.RawText
}
