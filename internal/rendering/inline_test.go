package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) Node { return Node{Kind: NodeText, Text: s} }

func TestInline_Empty(t *testing.T) {
	assert.Nil(t, Inline(""))
}

func TestInline_IdentityWithoutMarkers(t *testing.T) {
	inputs := []string{
		"Senior Software Engineer",
		"5 * 3 * 2",
		"a & <b> \"quoted\"",
		"email me at jane@example.com",
		"**",
		"****",
		"[not a link]",
		"[label](",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			nodes := Inline(in)
			require.Len(t, nodes, 1)
			assert.Equal(t, text(in), nodes[0])
		})
	}
}

func TestInline_Constructs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Node
	}{
		{
			name:     "bold",
			input:    "**Go**",
			expected: []Node{{Kind: NodeBold, Children: []Node{text("Go")}}},
		},
		{
			name:     "italic",
			input:    "*remote*",
			expected: []Node{{Kind: NodeItalic, Children: []Node{text("remote")}}},
		},
		{
			name:     "code stays literal",
			input:    "`a*b*`",
			expected: []Node{{Kind: NodeCode, Text: "a*b*"}},
		},
		{
			name:  "link",
			input: "see [site](https://example.com) now",
			expected: []Node{
				text("see "),
				{Kind: NodeLink, URL: "https://example.com", Children: []Node{text("site")}},
				text(" now"),
			},
		},
		{
			name:     "inline image",
			input:    "![logo](logo.png)",
			expected: []Node{{Kind: NodeImage, Alt: "logo", URL: "logo.png"}},
		},
		{
			name:  "bold around italic",
			input: "**bold *and italic* text**",
			expected: []Node{{
				Kind: NodeBold,
				Children: []Node{
					text("bold "),
					{Kind: NodeItalic, Children: []Node{text("and italic")}},
					text(" text"),
				},
			}},
		},
		{
			name:  "triple asterisks",
			input: "***x***",
			expected: []Node{{
				Kind:     NodeBold,
				Children: []Node{{Kind: NodeItalic, Children: []Node{text("x")}}},
			}},
		},
		{
			name:  "unclosed bold is literal",
			input: "**open and *closed*",
			expected: []Node{
				text("**open and "),
				{Kind: NodeItalic, Children: []Node{text("closed")}},
			},
		},
		{
			name:  "bold inside link",
			input: "[**Portfolio**](https://x.dev)",
			expected: []Node{{
				Kind:     NodeLink,
				URL:      "https://x.dev",
				Children: []Node{{Kind: NodeBold, Children: []Node{text("Portfolio")}}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Inline(tt.input))
		})
	}
}

func TestInline_NeverPanics(t *testing.T) {
	inputs := []string{
		"*", "**", "***", "`", "[", "](", "![", "![](", "![]()", "[]()",
		"**a*", "*a**", "`unterminated", "[a](b", "![a](b",
		"*\x00*", "**\xff**", "• * - +", "((([[[***]]])))",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			nodes := Inline(in)
			assert.NotEmpty(t, nodes, in)
		})
	}
}

func TestInline_PlainTextKeepsWords(t *testing.T) {
	nodes := Inline("Led **12 engineers** across *three* teams using `Go`")
	var got string
	for _, n := range nodes {
		got += n.PlainText()
	}
	assert.Equal(t, "Led 12 engineers across three teams using Go", got)
}
