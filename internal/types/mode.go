package types

import "fmt"

// Mode names one of the two document streams the editor owns
type Mode string

const (
	// ModeResume is the resume document
	ModeResume Mode = "resume"
	// ModeCoverLetter is the cover letter document
	ModeCoverLetter Mode = "cover-letter"
)

// Modes lists every mode in display order
func Modes() []Mode {
	return []Mode{ModeResume, ModeCoverLetter}
}

// ParseMode validates a mode name
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeResume, ModeCoverLetter:
		return Mode(s), nil
	case "coverletter", "cover_letter":
		return ModeCoverLetter, nil
	}
	return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModeResume, ModeCoverLetter)
}

// Title returns a human-readable label, also used as the default export file name
func (m Mode) Title() string {
	if m == ModeCoverLetter {
		return "cover-letter"
	}
	return "resume"
}
