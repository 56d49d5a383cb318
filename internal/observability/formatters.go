// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resumeace/internal/export"
	"github.com/jonathan/resumeace/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// previewWidth bounds the text preview of each section
	previewWidth = 30
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

func pad(s string, n int) string {
	if gap := n - utf8.RuneCountInString(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// PrintSections outputs the section list of a document with ids and a text preview
func (p *Printer) PrintSections(mode types.Mode, sections []types.Section) {
	var sb strings.Builder
	if len(sections) == 0 {
		sb.WriteString("(empty document)")
	}
	for i, sec := range sections {
		preview := strings.Join(strings.Fields(sec.RawText), " ")
		fmt.Fprintf(&sb, "%2d  %-9s %s  %s", i+1, sec.Kind, shortID(sec.ID), truncate(preview, previewWidth))
		if i < len(sections)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("%s SECTIONS (%d)", strings.ToUpper(mode.Title()), len(sections)), sb.String())
}

// shortID keeps the first block of a UUID so the list stays readable
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return pad(id, 8)
}

// PrintJobMatch outputs a job match analysis
func (p *Printer) PrintJobMatch(match *types.JobMatch) {
	if match == nil {
		return
	}

	var sb strings.Builder
	filled := match.MatchScore * 20 / 100
	fmt.Fprintf(&sb, "Match score: %d%%  [%s%s]\n", match.MatchScore,
		strings.Repeat("█", filled), strings.Repeat("░", 20-filled))

	writeList(&sb, "Found skills", match.FoundSkills, "✓")
	writeList(&sb, "Missing skills", match.MissingSkills, "✗")
	writeList(&sb, "Strengths", match.Strengths, "•")
	writeList(&sb, "Improvements", match.Improvements, "→")

	p.printBox("JOB MATCH ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, items []string, marker string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s:\n", title)
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		fmt.Fprintf(sb, "  %s %s\n", marker, item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
}

// PrintExport outputs the files written by an export. paths[i] belongs to artifacts[i].
func (p *Printer) PrintExport(artifacts []*export.Artifact, paths []string) {
	if len(artifacts) == 0 {
		return
	}

	var sb strings.Builder
	for i, a := range artifacts {
		name := a.Filename
		if i < len(paths) {
			name = paths[i]
		}
		fmt.Fprintf(&sb, "%-14s %9s  %s", a.Format.Name(), formatSize(len(a.Data)), name)
		if i < len(artifacts)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("EXPORTED %d FILE(S)", len(artifacts)), sb.String())
}

func formatSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
