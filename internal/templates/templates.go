// Package templates provides the built-in starter documents for both modes.
package templates

import (
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resumeace/internal/types"
)

//go:embed library/*.md
var libraryFiles embed.FS

// DatePlaceholder is replaced with the current date when a template is loaded
const DatePlaceholder = "{{date}}"

// DateLayout formats DatePlaceholder, e.g. "January 2, 2006"
const DateLayout = "January 2, 2006"

// Template describes one starter document
type Template struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Mode        types.Mode `json:"mode"`
	Description string     `json:"description"`
}

var catalog = []Template{
	{
		ID:          "modern-resume",
		Name:        "Modern Tech Resume",
		Mode:        types.ModeResume,
		Description: "Bold headings, skill groups and rules between sections; suits tech roles",
	},
	{
		ID:          "classic-resume",
		Name:        "Classic Resume",
		Mode:        types.ModeResume,
		Description: "Plain single-column layout for traditional industries",
	},
	{
		ID:          "modern-cover-letter",
		Name:        "Modern Cover Letter",
		Mode:        types.ModeCoverLetter,
		Description: "Sectioned letter with highlighted achievements",
	},
	{
		ID:          "classic-cover-letter",
		Name:        "Classic Cover Letter",
		Mode:        types.ModeCoverLetter,
		Description: "Traditional business letter",
	},
}

// defaults maps each mode to the template loaded when nothing is stored
var defaults = map[types.Mode]string{
	types.ModeResume:      "modern-resume",
	types.ModeCoverLetter: "modern-cover-letter",
}

// Clock returns the time used for DatePlaceholder
var Clock = time.Now

// List returns the templates for mode, or all templates when mode is empty
func List(mode types.Mode) []Template {
	out := make([]Template, 0, len(catalog))
	for _, t := range catalog {
		if mode == "" || t.Mode == mode {
			out = append(out, t)
		}
	}
	return out
}

// Lookup returns the metadata of the template with id
func Lookup(id string) (Template, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Get returns the content of the template with id, with the date filled in
func Get(id string) (string, error) {
	if _, ok := Lookup(id); !ok {
		return "", fmt.Errorf("unknown template %q", id)
	}
	data, err := libraryFiles.ReadFile("library/" + id + ".md")
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", id, err)
	}
	content := strings.TrimSpace(string(data))
	return strings.ReplaceAll(content, DatePlaceholder, Clock().Format(DateLayout)), nil
}

// Default returns the content loaded for mode when no saved text exists
func Default(mode types.Mode) string {
	id, ok := defaults[mode]
	if !ok {
		id = defaults[types.ModeResume]
	}
	content, err := Get(id)
	if err != nil {
		// Every default is embedded; a failure here is a build defect.
		panic(fmt.Sprintf("failed to load default template: %v", err))
	}
	return content
}
