package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/resumeace/internal/export"
	"github.com/jonathan/resumeace/internal/ingestion"
	"github.com/jonathan/resumeace/internal/observability"
	"github.com/jonathan/resumeace/internal/templates"
	"github.com/jonathan/resumeace/internal/types"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the active document with a Markdown, text or HTML file",
	Long: `Replaces the active document with the contents of FILE.

.md, .markdown and .txt files are cleaned up (line endings, spacing, bullets) and
kept as written. .html and .htm files are converted to the editor markup. Other
formats, such as PDF or Word documents, are rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active document",
	Long: `Writes the active document in one or more formats. PDF export prints the HTML
page with a local Chrome or Chromium installation.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List and apply starter templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the starter templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplatesList,
}

var templatesApplyCmd = &cobra.Command{
	Use:   "apply TEMPLATE",
	Short: "Replace a document with a starter template",
	Long:  `Replaces the document of the template's mode (resume or cover letter) with the template.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesApply,
}

var (
	exportFormats string
	exportOutDir  string
	exportTitle   string
	templatesAll  bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormats, "format", "f", "pdf", "Comma-separated formats: pdf, html, md, txt, tex")
	exportCmd.Flags().StringVarP(&exportOutDir, "out", "o", "", "Output directory (default export_dir from config, or the current directory)")
	exportCmd.Flags().StringVarP(&exportTitle, "title", "t", "", "File name and document title (default: resume or cover-letter)")

	templatesListCmd.Flags().BoolVarP(&templatesAll, "all", "a", false, "List templates of both modes")
	templatesCmd.AddCommand(templatesListCmd, templatesApplyCmd)

	rootCmd.AddCommand(importCmd, exportCmd, templatesCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	text, err := ingestion.ImportFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", args[0], err)
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.buffer.Replace(s.mode, text); err != nil {
		return err
	}
	if err := s.save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s into the %s (%d sections)\n", args[0], s.mode.Title(), s.doc().Len())
	if appConfig.Verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintSections(s.mode, s.doc().Sections())
	}
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	formats, err := export.ParseFormats(exportFormats)
	if err != nil {
		return err
	}
	dir := exportOutDir
	if dir == "" {
		dir = appConfig.ExportDir
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	title := exportTitle
	if title == "" {
		title = s.mode.Title()
	}
	artifacts, err := newExporter(s.markup).ExportAll(ctx, s.content(), title, formats)
	if err != nil {
		return err
	}
	paths, err := export.WriteFiles(dir, artifacts)
	if err != nil {
		return err
	}

	if appConfig.Verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintExport(artifacts, paths)
		return nil
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

func runTemplatesList(cmd *cobra.Command, _ []string) error {
	var mode types.Mode
	if !templatesAll {
		mode = appConfig.Mode()
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMODE\tNAME\tDESCRIPTION")
	for _, t := range templates.List(mode) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.Mode, t.Name, t.Description)
	}
	return tw.Flush()
}

func runTemplatesApply(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	tmpl, ok := templates.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown template %q (see \"templates list --all\")", args[0])
	}
	content, err := templates.Get(tmpl.ID)
	if err != nil {
		return err
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.buffer.Replace(tmpl.Mode, content); err != nil {
		return err
	}
	if err := s.buffer.SaveMode(ctx, tmpl.Mode); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Applied %s to the %s\n", tmpl.Name, tmpl.Mode.Title())
	return nil
}
