package parsing

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/jonathan/resumeace/internal/types"
)

// BlockSeparator joins serialized sections
const BlockSeparator = "\n\n"

// Segmenter splits raw text into Sections. The zero value is usable and
// assigns random UUIDs.
type Segmenter struct {
	newID func() string
}

// NewSegmenter creates a Segmenter. A nil newID falls back to uuid.NewString.
func NewSegmenter(newID func() string) *Segmenter {
	return &Segmenter{newID: newID}
}

// NewID returns a fresh section identifier
func (s *Segmenter) NewID() string {
	if s == nil || s.newID == nil {
		return uuid.NewString()
	}
	return s.newID()
}

// openBlock accumulates the lines of the section currently being built
type openBlock struct {
	kind  types.SectionKind
	lines []string
}

// Segment splits text into an ordered list of Sections.
//
// Headings, images and rules are always single-line sections. Consecutive bullet
// lines form one list and a blank line always ends it. Paragraph lines accumulate
// into one paragraph; a blank line ends the paragraph unless the next non-blank line
// is also a paragraph line, in which case one blank line is kept inside it.
//
// Empty or blank-only input returns an empty slice.
func (s *Segmenter) Segment(text string) []types.Section {
	sections := make([]types.Section, 0)

	var open *openBlock
	pendingBlank := false
	flush := func() {
		if open != nil && len(open.lines) > 0 {
			sections = append(sections, s.build(open.kind, open.lines))
		}
		open = nil
		pendingBlank = false
	}

	for _, line := range SplitLines(text) {
		switch Classify(line) {
		case LineBlank:
			if open == nil {
				continue
			}
			if open.kind == types.KindList {
				flush()
				continue
			}
			pendingBlank = true

		case LineHeading:
			flush()
			sections = append(sections, s.build(types.KindHeading, []string{line}))

		case LineImage:
			flush()
			sections = append(sections, s.build(types.KindImage, []string{line}))

		case LineRule:
			flush()
			sections = append(sections, s.build(types.KindRule, []string{line}))

		case LineList:
			if open == nil || open.kind != types.KindList {
				flush()
				open = &openBlock{kind: types.KindList}
			}
			open.lines = append(open.lines, line)

		case LineParagraph:
			if open != nil && open.kind == types.KindParagraph {
				if pendingBlank {
					open.lines = append(open.lines, "")
				}
			} else {
				flush()
				open = &openBlock{kind: types.KindParagraph}
			}
			pendingBlank = false
			open.lines = append(open.lines, line)
		}
	}
	flush()

	return sections
}

// Segment splits text using a default Segmenter
func Segment(text string) []types.Section {
	var s Segmenter
	return s.Segment(text)
}

// Serialize joins the sections' raw text with one blank line between sections.
// Sections with blank raw text contribute nothing.
func Serialize(sections []types.Section) string {
	parts := make([]string, 0, len(sections))
	for _, sec := range sections {
		if strings.TrimSpace(sec.RawText) == "" {
			continue
		}
		parts = append(parts, sec.RawText)
	}
	return strings.Join(parts, BlockSeparator)
}

// Normalize is Serialize(Segment(text)): the canonical form of a buffer
func Normalize(text string) string {
	return Serialize(Segment(text))
}

// SplitLines normalizes line endings and trims trailing whitespace from every line
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return lines
}

// build creates a section of the given kind from its source lines
func (s *Segmenter) build(kind types.SectionKind, lines []string) types.Section {
	sec := types.Section{
		ID:      s.NewID(),
		Kind:    kind,
		RawText: strings.Join(lines, "\n"),
	}
	switch kind {
	case types.KindHeading:
		sec.Level, sec.Title, _ = ParseHeading(lines[0])
	case types.KindImage:
		sec.Alt, sec.Src, _ = ParseImage(lines[0])
	}
	return sec
}
