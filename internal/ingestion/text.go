package ingestion

import (
	"regexp"
	"strings"

	"github.com/jonathan/resumeace/internal/parsing"
)

var (
	spaceRun       = regexp.MustCompile(`[ \t]+`)
	blankLineRun   = regexp.MustCompile(`\n{3,}`)
	whitespaceRune = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\u2009", " ", "\ufeff", "")
)

// CleanText normalizes imported text while preserving its structure: line endings
// become LF, non-breaking spaces become spaces, trailing whitespace is dropped and
// runs of blank lines collapse to one.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = whitespaceRune.Replace(content)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLineRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims a line and collapses inner whitespace. Code spans are left alone.
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	if strings.Contains(trimmed, "`") {
		return trimmed
	}
	if parsing.IsBullet(trimmed) {
		rest := parsing.StripBullet(trimmed)
		marker := strings.TrimSpace(trimmed[:len(trimmed)-len(rest)])
		return marker + " " + spaceRun.ReplaceAllString(rest, " ")
	}
	return spaceRun.ReplaceAllString(trimmed, " ")
}
