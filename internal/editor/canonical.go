package editor

import (
	"strings"

	"github.com/jonathan/resumeace/internal/parsing"
	"github.com/jonathan/resumeace/internal/types"
)

// Placeholders used by the "add heading / text / list / photo" actions
const (
	DefaultHeadingTitle  = "New Section"
	DefaultHeadingLevel  = 2
	DefaultListItem      = "New item"
	DefaultParagraphText = "New content"
	DefaultImageAlt      = "Profile Photo"
	DefaultImageSource   = "profile-photo.jpg"
)

// CanonicalText builds grammar text for a new section of kind from user text.
// Text that already carries the kind's marker is kept as is.
func CanonicalText(kind types.SectionKind, text string) string {
	text = strings.TrimSpace(text)
	switch kind {
	case types.KindHeading:
		if text == "" {
			text = DefaultHeadingTitle
		}
		if parsing.Classify(text) == parsing.LineHeading {
			return text
		}
		title, rest, _ := strings.Cut(text, "\n")
		heading := strings.Repeat("#", DefaultHeadingLevel) + " " + strings.TrimSpace(title)
		if strings.TrimSpace(rest) != "" {
			heading += parsing.BlockSeparator + rest
		}
		return heading

	case types.KindList:
		if text == "" {
			text = DefaultListItem
		}
		var items []string
		for _, line := range parsing.SplitLines(text) {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !parsing.IsBullet(line) {
				line = parsing.DefaultBullet + " " + line
			}
			items = append(items, line)
		}
		return strings.Join(items, "\n")

	case types.KindImage:
		if parsing.Classify(text) == parsing.LineImage {
			return text
		}
		if text == "" {
			text = DefaultImageSource
		}
		return "![" + DefaultImageAlt + "](" + strings.Join(strings.Fields(text), "%20") + ")"

	case types.KindRule:
		return "---"

	default:
		if text == "" {
			return DefaultParagraphText
		}
		return text
	}
}
