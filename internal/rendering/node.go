// Package rendering turns Sections into a styled node tree and writes that tree
// as HTML, plain text, ANSI terminal output or LaTeX.
package rendering

// NodeKind identifies a block or inline node
type NodeKind int

// Inline node kinds
const (
	NodeText NodeKind = iota
	NodeBold
	NodeItalic
	NodeCode
	NodeLink
	NodeImage
	NodeLineBreak
)

// Block node kinds; every Section renders to exactly one of these
const (
	NodeHeading NodeKind = iota + 100
	NodeTextBlock
	NodeParagraph
	NodeList
	NodeListItem
	NodeFigure
	NodeRule
)

// Node is one element of the rendered tree.
// Text holds literal content for NodeText and NodeCode; URL and Alt are set on
// links and images; Level on headings; SectionID on the block node of a section.
type Node struct {
	Kind      NodeKind `json:"kind"`
	SectionID string   `json:"section_id,omitempty"`
	Level     int      `json:"level,omitempty"`
	Text      string   `json:"text,omitempty"`
	URL       string   `json:"url,omitempty"`
	Alt       string   `json:"alt,omitempty"`
	Children  []Node   `json:"children,omitempty"`
}

// IsBlock reports whether the node is a block-level node
func (n Node) IsBlock() bool {
	return n.Kind >= NodeHeading
}

// PlainText flattens the node to its visible text without any styling
func (n Node) PlainText() string {
	switch n.Kind {
	case NodeText, NodeCode:
		return n.Text
	case NodeImage:
		return n.Alt
	case NodeLineBreak:
		return "\n"
	}
	var out []byte
	for _, c := range n.Children {
		out = append(out, c.PlainText()...)
	}
	return string(out)
}
