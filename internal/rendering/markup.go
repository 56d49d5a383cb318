package rendering

import (
	"fmt"
	"html"

	"github.com/jonathan/resumeace/internal/parsing"
	"github.com/jonathan/resumeace/internal/types"
)

// Markup bundles a segmenter and a renderer so preview, editor and export all go
// through the same grammar.
type Markup struct {
	segmenter *parsing.Segmenter
	renderer  *Renderer
}

// NewMarkup creates a Markup. Either argument may be nil for the defaults
// (random UUIDs, uncached rendering).
func NewMarkup(segmenter *parsing.Segmenter, cache *Cache) *Markup {
	if segmenter == nil {
		segmenter = parsing.NewSegmenter(nil)
	}
	return &Markup{segmenter: segmenter, renderer: NewRenderer(cache)}
}

// Segment splits text into sections
func (m *Markup) Segment(text string) []types.Section {
	return m.segmenter.Segment(text)
}

// Render converts sections into block nodes
func (m *Markup) Render(sections []types.Section) []Node {
	return m.renderer.Render(sections)
}

// RenderSection converts one section into its block node
func (m *Markup) RenderSection(sec types.Section) Node {
	return m.renderer.RenderSection(sec)
}

// Serialize joins sections back into grammar text
func (m *Markup) Serialize(sections []types.Section) string {
	return parsing.Serialize(sections)
}

// Nodes segments and renders text in one step
func (m *Markup) Nodes(text string) []Node {
	return m.Render(m.Segment(text))
}

// Preview renders text to an HTML fragment
func (m *Markup) Preview(text string) string {
	return HTML(m.Nodes(text))
}

// HTMLPage wraps an HTML fragment in a standalone page carrying Stylesheet
func HTMLPage(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>%s</title>
<style>%s</style>
</head>
<body>
<main class="resume-content">
%s
</main>
</body>
</html>
`, html.EscapeString(title), Stylesheet, body)
}
