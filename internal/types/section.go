// Package types provides type definitions for structured data used throughout the resumeace editor.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// SectionKind is the closed set of block types a Section can hold
type SectionKind int

const (
	// KindParagraph is free text; blank-line separated runs stay in one section
	KindParagraph SectionKind = iota
	// KindHeading is a single "#"-prefixed line
	KindHeading
	// KindList is a run of bullet lines
	KindList
	// KindImage is a single "![alt](src)" line
	KindImage
	// KindRule is a horizontal divider ("---")
	KindRule
)

var sectionKindNames = map[SectionKind]string{
	KindParagraph: "paragraph",
	KindHeading:   "heading",
	KindList:      "list",
	KindImage:     "image",
	KindRule:      "rule",
}

func (k SectionKind) String() string {
	if name, ok := sectionKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SectionKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler so kinds serialize by name
func (k SectionKind) MarshalText() ([]byte, error) {
	if _, ok := sectionKindNames[k]; !ok {
		return nil, fmt.Errorf("unknown section kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *SectionKind) UnmarshalText(text []byte) error {
	parsed, err := ParseSectionKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseSectionKind resolves a kind name. "text" is accepted as an alias for paragraph
// and "photo" for image, matching the editor's toolbar labels.
func ParseSectionKind(name string) (SectionKind, error) {
	switch name {
	case "paragraph", "text":
		return KindParagraph, nil
	case "heading":
		return KindHeading, nil
	case "list":
		return KindList, nil
	case "image", "photo":
		return KindImage, nil
	case "rule":
		return KindRule, nil
	}
	return 0, fmt.Errorf("unknown section kind %q", name)
}

// Section is a contiguous, typed unit of document content.
// RawText is the source slice it was built from; the other fields are derived from it.
type Section struct {
	ID      string      `json:"id"`
	Kind    SectionKind `json:"kind"`
	Level   int         `json:"level,omitempty"` // 1..6 for headings
	Title   string      `json:"title,omitempty"` // heading text after the marker
	Alt     string      `json:"alt,omitempty"`   // image alt text
	Src     string      `json:"src,omitempty"`   // image source
	RawText string      `json:"raw_text"`
}

// Lines returns the section's raw text split into lines
func (s Section) Lines() []string {
	if s.RawText == "" {
		return nil
	}
	return strings.Split(s.RawText, "\n")
}
