// Package parsing implements the editor's Markdown-subset grammar: line classification
// and segmentation of a raw text buffer into typed Sections.
package parsing

import (
	"regexp"
	"strings"
)

// LineKind is the block-level classification of a single line
type LineKind int

// Line kinds in recognition priority order
const (
	LineBlank LineKind = iota
	LineHeading
	LineImage
	LineList
	LineRule
	LineParagraph
)

// MaxHeadingLevel caps the number of significant "#" characters
const MaxHeadingLevel = 6

// BulletMarkers are the list item markers the grammar recognizes.
// A marker only counts when followed by a space or tab.
var BulletMarkers = []string{"•", "-", "*", "+"}

// DefaultBullet is the marker used when the editor creates list items
const DefaultBullet = "•"

// imageLinePattern matches an image that is alone on its (trimmed) line
var imageLinePattern = regexp.MustCompile(`^!\[([^\]]*)\]\(([^()\s]+)\)$`)

// Classify returns the block kind of a line. Leading and trailing whitespace is ignored.
func Classify(line string) LineKind {
	t := strings.TrimSpace(line)
	switch {
	case t == "":
		return LineBlank
	case isHeading(t):
		return LineHeading
	case imageLinePattern.MatchString(t):
		return LineImage
	case IsBullet(t):
		return LineList
	case isRule(t):
		return LineRule
	default:
		return LineParagraph
	}
}

// ParseHeading returns the level and title of a heading line.
// Levels beyond MaxHeadingLevel are capped.
func ParseHeading(line string) (level int, title string, ok bool) {
	t := strings.TrimSpace(line)
	n := countPrefix(t, '#')
	if n == 0 || n >= len(t) || !isMarkerGap(t[n]) {
		return 0, "", false
	}
	return min(n, MaxHeadingLevel), strings.TrimSpace(t[n+1:]), true
}

// ParseImage returns the alt text and source of an image-alone line
func ParseImage(line string) (alt, src string, ok bool) {
	m := imageLinePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// IsBullet reports whether the (trimmed) line starts with a bullet marker
func IsBullet(line string) bool {
	_, ok := bulletMarker(strings.TrimSpace(line))
	return ok
}

// StripBullet removes the leading bullet marker and the whitespace after it.
// Lines without a marker are returned trimmed.
func StripBullet(line string) string {
	t := strings.TrimSpace(line)
	if marker, ok := bulletMarker(t); ok {
		return strings.TrimSpace(t[len(marker):])
	}
	return t
}

func bulletMarker(t string) (string, bool) {
	for _, marker := range BulletMarkers {
		if len(t) > len(marker) && strings.HasPrefix(t, marker) && isMarkerGap(t[len(marker)]) {
			return marker, true
		}
	}
	return "", false
}

func isHeading(t string) bool {
	_, _, ok := ParseHeading(t)
	return ok
}

func isRule(t string) bool {
	return len(t) >= 3 && countPrefix(t, '-') == len(t)
}

func isMarkerGap(b byte) bool {
	return b == ' ' || b == '\t'
}

func countPrefix(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}
