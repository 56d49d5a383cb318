package rendering

import "strings"

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
	`•`, `\textbullet{}`,
)

// EscapeLaTeX escapes special LaTeX characters in text
// Special characters: \ { } $ & % # ^ _ ~
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}
	return latexEscaper.Replace(text)
}

// hyperref reads the URL argument verbatim except for these
var latexURLEscaper = strings.NewReplacer(
	`\`, `%5C`,
	`{`, `%7B`,
	`}`, `%7D`,
	`%`, `\%`,
	`#`, `\#`,
	`&`, `\&`,
)

func escapeLaTeXURL(url string) string {
	return latexURLEscaper.Replace(url)
}
