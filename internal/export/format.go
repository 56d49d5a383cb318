// Package export writes a document in the formats offered by the export dialog.
package export

import (
	"fmt"
	"strings"
)

// Format is an export target
type Format string

const (
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
	FormatLaTeX    Format = "tex"
)

// Formats lists every format in dialog order
var Formats = []Format{FormatPDF, FormatHTML, FormatMarkdown, FormatText, FormatLaTeX}

type formatInfo struct {
	name      string
	extension string
	mime      string
}

var formatInfos = map[Format]formatInfo{
	FormatMarkdown: {"Markdown", ".md", "text/markdown; charset=utf-8"},
	FormatText:     {"Plain Text", ".txt", "text/plain; charset=utf-8"},
	FormatHTML:     {"HTML Document", ".html", "text/html; charset=utf-8"},
	FormatPDF:      {"PDF Document", ".pdf", "application/pdf"},
	FormatLaTeX:    {"LaTeX Source", ".tex", "application/x-tex"},
}

// ParseFormat parses a format name; a leading dot and "markdown" are accepted
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	switch f {
	case "markdown":
		f = FormatMarkdown
	case "text":
		f = FormatText
	case "htm":
		f = FormatHTML
	case "latex":
		f = FormatLaTeX
	}
	if _, ok := formatInfos[f]; !ok {
		return "", fmt.Errorf("unknown export format %q", s)
	}
	return f, nil
}

// ParseFormats parses a comma separated list, dropping duplicates
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := map[Format]bool{}
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no export format given")
	}
	return out, nil
}

// Name is the label shown to users
func (f Format) Name() string { return formatInfos[f].name }

// Extension includes the leading dot
func (f Format) Extension() string { return formatInfos[f].extension }

// MIMEType is the Content-Type used for downloads
func (f Format) MIMEType() string { return formatInfos[f].mime }
