package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jonathan/resumeace/internal/rendering"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the active document",
	Long: `Renders the active document through the live preview renderer.

Formats: terminal (styled, default), html (fragment), page (standalone HTML page
with the print stylesheet), text (plain) and latex (body fragment).`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

var (
	renderFormat string
	renderWidth  int
)

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "terminal", "Output format: terminal, html, page, text or latex")
	renderCmd.Flags().IntVarP(&renderWidth, "width", "w", rendering.DefaultTerminalWidth, "Wrap width for terminal output")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	out := cmd.OutOrStdout()
	nodes := s.buffer.Nodes(s.mode)
	switch renderFormat {
	case "terminal":
		styles := rendering.NewTerminalStyles(lipgloss.NewRenderer(out))
		_, err = fmt.Fprintln(out, rendering.Terminal(nodes, renderWidth, styles))
	case "html":
		_, err = fmt.Fprintln(out, rendering.HTML(nodes))
	case "page":
		_, err = fmt.Fprint(out, newExporter(s.markup).Page(s.content(), s.mode.Title()))
	case "text":
		_, err = fmt.Fprintln(out, rendering.PlainText(nodes))
	case "latex":
		_, err = fmt.Fprintln(out, rendering.LaTeX(nodes))
	default:
		return fmt.Errorf("unknown render format %q (want terminal, html, page, text or latex)", renderFormat)
	}
	return err
}
