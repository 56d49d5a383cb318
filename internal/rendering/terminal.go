package rendering

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/resumeace/internal/parsing"
)

// DefaultTerminalWidth is used when Terminal is given a non-positive width
const DefaultTerminalWidth = 80

// TerminalStyles holds the lipgloss styles used by Terminal
type TerminalStyles struct {
	Heading1 lipgloss.Style
	Heading  lipgloss.Style
	Text     lipgloss.Style
	Bold     lipgloss.Style
	Italic   lipgloss.Style
	Code     lipgloss.Style
	Link     lipgloss.Style
	Figure   lipgloss.Style
	Rule     lipgloss.Style
}

// NewTerminalStyles builds the default styles against r. A renderer writing to
// io.Discard produces uncoloured output.
func NewTerminalStyles(r *lipgloss.Renderer) TerminalStyles {
	accent := lipgloss.Color("33")
	muted := lipgloss.Color("245")
	return TerminalStyles{
		Heading1: r.NewStyle().Bold(true).Foreground(accent).Align(lipgloss.Center),
		Heading:  r.NewStyle().Bold(true).Foreground(accent).Underline(true),
		Text:     r.NewStyle(),
		Bold:     r.NewStyle().Bold(true),
		Italic:   r.NewStyle().Italic(true),
		Code:     r.NewStyle().Foreground(lipgloss.Color("39")),
		Link:     r.NewStyle().Foreground(accent).Underline(true),
		Figure:   r.NewStyle().Foreground(muted).Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Rule:     r.NewStyle().Foreground(muted),
	}
}

// Terminal writes block nodes for a terminal of the given width
func Terminal(nodes []Node, width int, styles TerminalStyles) string {
	if width <= 0 {
		width = DefaultTerminalWidth
	}
	blocks := make([]string, 0, len(nodes))
	for _, n := range nodes {
		blocks = append(blocks, terminalBlock(n, width, styles))
	}
	return strings.Join(blocks, "\n\n")
}

func terminalBlock(n Node, width int, st TerminalStyles) string {
	switch n.Kind {
	case NodeHeading:
		text := terminalInline(n.Children, st)
		if n.Level == 1 {
			return st.Heading1.Width(width).Render(text)
		}
		return st.Heading.Render(text)
	case NodeList:
		items := make([]string, 0, len(n.Children))
		body := st.Text.Width(max(width-2, 1))
		for _, item := range n.Children {
			line := lipgloss.JoinHorizontal(lipgloss.Top,
				parsing.DefaultBullet+" ", body.Render(terminalInline(item.Children, st)))
			items = append(items, line)
		}
		return strings.Join(items, "\n")
	case NodeTextBlock:
		runs := make([]string, 0, len(n.Children))
		for _, p := range n.Children {
			runs = append(runs, terminalBlock(p, width, st))
		}
		return strings.Join(runs, "\n\n")
	case NodeParagraph:
		return st.Text.Width(width).Render(terminalInline(n.Children, st))
	case NodeFigure:
		label := "image"
		if len(n.Children) > 0 && n.Children[0].Alt != "" {
			label = n.Children[0].Alt
		}
		box := st.Figure.Render(label)
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
	case NodeRule:
		return st.Rule.Render(strings.Repeat("─", width))
	}
	return terminalInline([]Node{n}, st)
}

func terminalInline(nodes []Node, st TerminalStyles) string {
	var sb strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case NodeText:
			sb.WriteString(n.Text)
		case NodeBold:
			sb.WriteString(st.Bold.Render(n.PlainText()))
		case NodeItalic:
			sb.WriteString(st.Italic.Render(n.PlainText()))
		case NodeCode:
			sb.WriteString(st.Code.Render(n.Text))
		case NodeLink:
			sb.WriteString(st.Link.Render(n.PlainText()))
		case NodeImage:
			sb.WriteString("[" + n.Alt + "]")
		case NodeLineBreak:
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
