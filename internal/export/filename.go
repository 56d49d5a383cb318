package export

import (
	"strings"
	"unicode"
)

// DefaultTitle names exports whose title sanitizes to nothing
const DefaultTitle = "document"

const maxTitleLength = 100

// SanitizeTitle turns a document title into a safe file name stem: letters,
// digits, dots, dashes and underscores are kept and every other run becomes "-".
func SanitizeTitle(title string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.TrimSpace(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.' || r == '-' {
			sb.WriteRune(r)
			dash = r == '-'
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}

	stem := strings.Trim(sb.String(), "-.")
	if runes := []rune(stem); len(runes) > maxTitleLength {
		stem = strings.Trim(string(runes[:maxTitleLength]), "-.")
	}
	if stem == "" {
		return DefaultTitle
	}
	return stem
}

// Filename returns the download name for title in format f
func Filename(title string, f Format) string {
	return SanitizeTitle(title) + f.Extension()
}
