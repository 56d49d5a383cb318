package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resumeace/internal/types"
)

func TestCanonicalText(t *testing.T) {
	tests := []struct {
		name     string
		kind     types.SectionKind
		text     string
		expected string
	}{
		{"heading default", types.KindHeading, "", "## New Section"},
		{"heading plain", types.KindHeading, "Skills", "## Skills"},
		{"heading keeps marker", types.KindHeading, "# Name", "# Name"},
		{"heading with body", types.KindHeading, "Skills\nGo and SQL", "## Skills\n\nGo and SQL"},
		{"list default", types.KindList, "", "• New item"},
		{"list lines", types.KindList, "Go\n\n- SQL", "• Go\n- SQL"},
		{"paragraph default", types.KindParagraph, "  ", "New content"},
		{"paragraph text", types.KindParagraph, "Hello", "Hello"},
		{"image source", types.KindImage, "me.png", "![Profile Photo](me.png)"},
		{"image default", types.KindImage, "", "![Profile Photo](profile-photo.jpg)"},
		{"image keeps markup", types.KindImage, "![Me](a.png)", "![Me](a.png)"},
		{"rule", types.KindRule, "ignored", "---"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalText(tt.kind, tt.text))
		})
	}
}
