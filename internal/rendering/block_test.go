package rendering

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resumeace/internal/parsing"
	"github.com/jonathan/resumeace/internal/types"
)

const sampleResume = `# Jane Doe

jane@example.com | [LinkedIn](https://linkedin.com/in/jane)

## Experience

### Senior Engineer

- Built **billing** pipeline
- Cut latency by *40%*

---

![Profile Photo](https://example.com/jane.png)`

func sequentialSegmenter() *parsing.Segmenter {
	n := 0
	return parsing.NewSegmenter(func() string {
		n++
		return fmt.Sprintf("section-%d", n)
	})
}

func TestRender_OneBlockPerSection(t *testing.T) {
	sections := sequentialSegmenter().Segment(sampleResume)
	nodes := NewRenderer(nil).Render(sections)

	require.Len(t, nodes, len(sections))
	kinds := make([]NodeKind, len(nodes))
	for i, n := range nodes {
		assert.True(t, n.IsBlock())
		assert.Equal(t, sections[i].ID, n.SectionID)
		kinds[i] = n.Kind
	}
	assert.Equal(t, []NodeKind{
		NodeHeading, NodeTextBlock, NodeHeading, NodeHeading, NodeList, NodeRule, NodeFigure,
	}, kinds)
}

func TestRender_Heading(t *testing.T) {
	node := NewRenderer(nil).RenderSection(types.Section{
		ID:      "h",
		Kind:    types.KindHeading,
		RawText: "### **Lead** Engineer",
	})
	assert.Equal(t, NodeHeading, node.Kind)
	assert.Equal(t, 3, node.Level)
	assert.Equal(t, "Lead Engineer", node.PlainText())
}

func TestRender_HeadingFallsBackToFields(t *testing.T) {
	node := NewRenderer(nil).RenderSection(types.Section{
		Kind:    types.KindHeading,
		Level:   9,
		Title:   "Skills",
		RawText: "Skills",
	})
	assert.Equal(t, parsing.MaxHeadingLevel, node.Level)
	assert.Equal(t, "Skills", node.PlainText())
}

func TestRender_ListStripsMarkers(t *testing.T) {
	node := NewRenderer(nil).RenderSection(types.Section{
		Kind:    types.KindList,
		RawText: "• Go\n- Rust\n* **SQL**\n+ Kafka",
	})
	require.Equal(t, NodeList, node.Kind)
	require.Len(t, node.Children, 4)
	items := make([]string, len(node.Children))
	for i, item := range node.Children {
		assert.Equal(t, NodeListItem, item.Kind)
		items[i] = item.PlainText()
	}
	assert.Equal(t, []string{"Go", "Rust", "SQL", "Kafka"}, items)
}

func TestRender_Figure(t *testing.T) {
	node := NewRenderer(nil).RenderSection(types.Section{
		Kind:    types.KindImage,
		RawText: "![Me](me.jpg)",
	})
	require.Equal(t, NodeFigure, node.Kind)
	require.Len(t, node.Children, 1)
	assert.Equal(t, Node{Kind: NodeImage, Alt: "Me", URL: "me.jpg"}, node.Children[0])
}

func TestRender_ParagraphRuns(t *testing.T) {
	node := NewRenderer(nil).RenderSection(types.Section{
		Kind:    types.KindParagraph,
		RawText: "Dear Hiring Manager,\nI am writing\n\nSincerely",
	})
	require.Equal(t, NodeTextBlock, node.Kind)
	require.Len(t, node.Children, 2)

	first := node.Children[0]
	assert.Equal(t, NodeParagraph, first.Kind)
	assert.Equal(t, []Node{text("Dear Hiring Manager,"), {Kind: NodeLineBreak}, text("I am writing")}, first.Children)
	assert.Equal(t, "Sincerely", node.Children[1].PlainText())
}

func TestRender_Rule(t *testing.T) {
	node := NewRenderer(nil).RenderSection(types.Section{Kind: types.KindRule, RawText: "---"})
	assert.Equal(t, Node{Kind: NodeRule}, node)
}

func TestRender_Deterministic(t *testing.T) {
	sections := parsing.Segment(sampleResume)
	a := NewRenderer(nil).Render(sections)
	b := NewRenderer(NewCache(0)).Render(sections)
	assert.Equal(t, a, b)
}

func TestRender_CacheHits(t *testing.T) {
	cache := NewCache(0)
	r := NewRenderer(cache)
	sections := parsing.Segment(sampleResume)

	first := r.Render(sections)
	hits, misses := cache.Stats()
	assert.Equal(t, 0, hits)
	assert.Equal(t, len(sections), misses)

	second := r.Render(sections)
	hits, _ = cache.Stats()
	assert.Equal(t, len(sections), hits)
	assert.Equal(t, first, second)
}

func TestRender_CacheKeepsSectionIDs(t *testing.T) {
	r := NewRenderer(NewCache(0))
	a := r.RenderSection(types.Section{ID: "a", Kind: types.KindParagraph, RawText: "same"})
	b := r.RenderSection(types.Section{ID: "b", Kind: types.KindParagraph, RawText: "same"})
	assert.Equal(t, "a", a.SectionID)
	assert.Equal(t, "b", b.SectionID)
}

func TestCache_Bounded(t *testing.T) {
	cache := NewCache(2)
	r := NewRenderer(cache)
	for i := 0; i < 5; i++ {
		r.RenderSection(types.Section{Kind: types.KindParagraph, RawText: fmt.Sprintf("p%d", i)})
		assert.LessOrEqual(t, cache.Len(), 2)
	}
}

func TestCache_NilSafe(t *testing.T) {
	var cache *Cache
	hits, misses := cache.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
	assert.Zero(t, cache.Len())
}

func TestRender_NeverPanics(t *testing.T) {
	inputs := []string{
		"", "#", "# ", "####### deep", "![", "![a](", "-", "- ", "---", "* * *",
		"\r\n\r\n", "**\n**", "text\n\n\n\n- item\n\n# h", "\xff\xfe",
	}
	m := NewMarkup(nil, NewCache(0))
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			_ = m.Preview(in)
			_ = PlainText(m.Nodes(in))
			_ = LaTeX(m.Nodes(in))
		})
	}
}
