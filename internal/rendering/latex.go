package rendering

import (
	"os"
	"strings"
	"text/template"
)

// defaultLaTeXTemplate is used by LaTeXDocument when no template path is given.
// Templates receive TemplateData; .Title is already escaped, .Body is LaTeX.
const defaultLaTeXTemplate = `\documentclass[11pt]{article}
\usepackage[margin=0.75in]{geometry}
\usepackage[hidelinks]{hyperref}
\usepackage{graphicx}
\setlength{\parindent}{0pt}
\title{ {{- .Title -}} }
\date{}
\begin{document}
{{ .Body }}
\end{document}
`

// TemplateData is the data passed to a LaTeX document template
type TemplateData struct {
	Title string
	Body  string
}

// LaTeX writes block nodes as a LaTeX body fragment. All text is escaped.
func LaTeX(nodes []Node) string {
	blocks := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if b := latexBlock(n); b != "" {
			blocks = append(blocks, b)
		}
	}
	return strings.Join(blocks, "\n\n")
}

// LaTeXDocument wraps LaTeX(nodes) in a full document. templatePath may be empty
// to use the built-in article template.
func LaTeXDocument(nodes []Node, title, templatePath string) (string, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	data := TemplateData{Title: EscapeLaTeX(title), Body: LaTeX(nodes)}
	if err := tmpl.Execute(&out, data); err != nil {
		return "", &TemplateError{Path: templatePath, Stage: "execute", Cause: err}
	}
	return out.String(), nil
}

// parseTemplate loads the template at templatePath, or the built-in one for ""
func parseTemplate(templatePath string) (*template.Template, error) {
	content := defaultLaTeXTemplate
	if templatePath != "" {
		raw, err := os.ReadFile(templatePath)
		if err != nil {
			return nil, &TemplateError{Path: templatePath, Stage: "read", Cause: err}
		}
		content = string(raw)
	}

	tmpl, err := template.New("document").
		Funcs(template.FuncMap{"escape": EscapeLaTeX}).
		Parse(content)
	if err != nil {
		return nil, &TemplateError{Path: templatePath, Stage: "parse", Cause: err}
	}
	return tmpl, nil
}

func latexBlock(n Node) string {
	switch n.Kind {
	case NodeHeading:
		return latexHeading(n.Level) + "{" + latexInline(n.Children) + "}"
	case NodeList:
		var sb strings.Builder
		sb.WriteString("\\begin{itemize}\n")
		for _, item := range n.Children {
			sb.WriteString("  \\item ")
			sb.WriteString(latexInline(item.Children))
			sb.WriteByte('\n')
		}
		sb.WriteString("\\end{itemize}")
		return sb.String()
	case NodeTextBlock:
		runs := make([]string, 0, len(n.Children))
		for _, p := range n.Children {
			runs = append(runs, latexInline(p.Children))
		}
		return strings.Join(runs, "\n\n")
	case NodeParagraph:
		return latexInline(n.Children)
	case NodeFigure:
		// Remote images cannot be embedded without fetching them; the alt text stands in.
		if len(n.Children) == 0 || n.Children[0].Alt == "" {
			return ""
		}
		return "\\begin{center}\n" + EscapeLaTeX(n.Children[0].Alt) + "\n\\end{center}"
	case NodeRule:
		return `\noindent\rule{\textwidth}{0.4pt}`
	}
	return latexInline([]Node{n})
}

func latexHeading(level int) string {
	switch level {
	case 1:
		return `\section*`
	case 2:
		return `\subsection*`
	case 3:
		return `\subsubsection*`
	case 4:
		return `\paragraph*`
	default:
		return `\subparagraph*`
	}
}

func latexInline(nodes []Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case NodeText:
			sb.WriteString(EscapeLaTeX(n.Text))
		case NodeBold:
			sb.WriteString(`\textbf{` + latexInline(n.Children) + "}")
		case NodeItalic:
			sb.WriteString(`\emph{` + latexInline(n.Children) + "}")
		case NodeCode:
			sb.WriteString(`\texttt{` + EscapeLaTeX(n.Text) + "}")
		case NodeLink:
			url := SafeURL(n.URL, false)
			sb.WriteString(`\href{` + escapeLaTeXURL(url) + "}{" + latexInline(n.Children) + "}")
		case NodeImage:
			sb.WriteString(EscapeLaTeX(n.Alt))
		case NodeLineBreak:
			sb.WriteString(`\\` + "\n")
		}
	}
	return sb.String()
}
