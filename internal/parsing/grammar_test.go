package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want LineKind
	}{
		{"empty", "", LineBlank},
		{"whitespace only", "   \t", LineBlank},
		{"h1", "# Alex Morgan", LineHeading},
		{"h6", "###### Title", LineHeading},
		{"indented heading", "   ## Experience", LineHeading},
		{"hash without space", "#hashtag", LineParagraph},
		{"bare hash", "#", LineParagraph},
		{"image alone", "![Profile Photo](data:image/png;base64,AAAA)", LineImage},
		{"image with text", "See ![x](a.png) here", LineParagraph},
		{"image with spaces in src", "![x](a b.png)", LineParagraph},
		{"bullet dot", "• Led development", LineList},
		{"bullet dash", "- Built APIs", LineList},
		{"bullet star", "* Mentored team", LineList},
		{"bullet plus", "+ Shipped", LineList},
		{"bullet tab", "-\tTabbed", LineList},
		{"bold line is not a bullet", "**Frontend:** React", LineParagraph},
		{"lone dash", "-", LineParagraph},
		{"rule", "---", LineRule},
		{"long rule", "----------", LineRule},
		{"two dashes", "--", LineParagraph},
		{"stars are not a rule", "***", LineParagraph},
		{"plain text", "Innovative engineer with 7+ years", LineParagraph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.line))
		})
	}
}

func TestParseHeading_Levels(t *testing.T) {
	tests := []struct {
		line      string
		wantLevel int
		wantTitle string
	}{
		{"# Name", 1, "Name"},
		{"## 💼 Professional Summary", 2, "💼 Professional Summary"},
		{"###### Title", 6, "Title"},
		{"####### Seven", 6, "Seven"},
		{"############ Twelve", 6, "Twelve"},
		{"###   Padded   ", 3, "Padded"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			level, title, ok := ParseHeading(tt.line)
			assert.True(t, ok)
			assert.Equal(t, tt.wantLevel, level)
			assert.Equal(t, tt.wantTitle, title)
		})
	}
}

func TestParseHeading_NotAHeading(t *testing.T) {
	for _, line := range []string{"", "#", "#nospace", "text # not heading"} {
		_, _, ok := ParseHeading(line)
		assert.False(t, ok, line)
	}
}

func TestParseImage(t *testing.T) {
	alt, src, ok := ParseImage("  ![Profile Photo](https://example.com/me.jpg)  ")
	assert.True(t, ok)
	assert.Equal(t, "Profile Photo", alt)
	assert.Equal(t, "https://example.com/me.jpg", src)

	alt, src, ok = ParseImage("![](photo.png)")
	assert.True(t, ok)
	assert.Empty(t, alt)
	assert.Equal(t, "photo.png", src)

	_, _, ok = ParseImage("![broken](photo.png")
	assert.False(t, ok)
}

func TestStripBullet(t *testing.T) {
	assert.Equal(t, "Led development", StripBullet("• Led development"))
	assert.Equal(t, "Built APIs", StripBullet("  -   Built APIs"))
	assert.Equal(t, "**Bold** item", StripBullet("* **Bold** item"))
	assert.Equal(t, "not a bullet", StripBullet("  not a bullet "))
}
