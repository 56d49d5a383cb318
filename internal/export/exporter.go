package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resumeace/internal/rendering"
)

// Artifact is one exported file
type Artifact struct {
	Format   Format
	Filename string
	MIMEType string
	Data     []byte
}

// Options configures an Exporter. Markup may be nil for the default markup;
// Printer may be nil, in which case PDF export fails.
type Options struct {
	Markup        *rendering.Markup
	Printer       Printer
	LaTeXTemplate string
	Verbose       bool
}

// Exporter renders documents through the same markup the preview uses
type Exporter struct {
	markup        *rendering.Markup
	printer       Printer
	latexTemplate string
	policy        *bluemonday.Policy
	verbose       bool
}

// New creates an Exporter
func New(opts Options) *Exporter {
	markup := opts.Markup
	if markup == nil {
		markup = rendering.NewMarkup(nil, nil)
	}
	return &Exporter{
		markup:        markup,
		printer:       opts.Printer,
		latexTemplate: opts.LaTeXTemplate,
		policy:        newPolicy(),
		verbose:       opts.Verbose,
	}
}

// Export produces content in format f. title names the file and the HTML/LaTeX document.
func (e *Exporter) Export(ctx context.Context, content, title string, f Format) (*Artifact, error) {
	return e.export(ctx, content, e.markup.Nodes(content), title, f)
}

// ExportAll produces several formats concurrently. Artifacts come back in the
// order formats were given; the first failure cancels the rest.
func (e *Exporter) ExportAll(ctx context.Context, content, title string, formats []Format) ([]*Artifact, error) {
	nodes := e.markup.Nodes(content)
	artifacts := make([]*Artifact, len(formats))

	g, gCtx := errgroup.WithContext(ctx)
	for i, f := range formats {
		g.Go(func() error {
			a, err := e.export(gCtx, content, nodes, title, f)
			if err != nil {
				return err
			}
			artifacts[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// Page returns the sanitized standalone HTML page for content
func (e *Exporter) Page(content, title string) string {
	return e.page(e.markup.Nodes(content), title)
}

func (e *Exporter) page(nodes []rendering.Node, title string) string {
	body := e.policy.Sanitize(rendering.HTML(nodes))
	return rendering.HTMLPage(title, body)
}

func (e *Exporter) export(ctx context.Context, content string, nodes []rendering.Node, title string, f Format) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ExportError{Format: f, Message: "canceled", Cause: err}
	}

	var data []byte
	switch f {
	case FormatMarkdown:
		data = []byte(content)
	case FormatText:
		data = []byte(rendering.PlainText(nodes))
	case FormatHTML:
		data = []byte(e.page(nodes, title))
	case FormatLaTeX:
		doc, err := rendering.LaTeXDocument(nodes, title, e.latexTemplate)
		if err != nil {
			return nil, &ExportError{Format: f, Message: "failed to build LaTeX document", Cause: err}
		}
		data = []byte(doc)
	case FormatPDF:
		if e.printer == nil {
			return nil, &ExportError{Format: f, Message: "no PDF printer configured"}
		}
		pdf, err := e.printer.PrintPDF(ctx, e.page(nodes, title))
		if err != nil {
			return nil, &ExportError{Format: f, Message: "failed to print PDF", Cause: err}
		}
		data = pdf
	default:
		return nil, &ExportError{Format: f, Message: "unknown format"}
	}

	if e.verbose {
		log.Printf("[export] %s: %d bytes", f, len(data))
	}
	return &Artifact{
		Format:   f,
		Filename: Filename(title, f),
		MIMEType: f.MIMEType(),
		Data:     data,
	}, nil
}

// WriteFiles writes artifacts into dir, creating it if needed, and returns the paths written
func WriteFiles(dir string, artifacts []*Artifact) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := filepath.Join(dir, a.Filename)
		if err := os.WriteFile(path, a.Data, 0644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
