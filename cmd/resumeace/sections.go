package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/resumeace/internal/editor"
	"github.com/jonathan/resumeace/internal/ingestion"
	"github.com/jonathan/resumeace/internal/observability"
	"github.com/jonathan/resumeace/internal/types"
)

const listPreviewWidth = 60

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List and edit the sections of the active document",
	Long: `Sections are the blocks of a document: headings, paragraphs, bullet lists,
photos and rules. Commands take a SECTION argument that is either the position
shown by "sections list" (1-based) or a section id.`,
}

var sectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sections with their position, kind and a preview",
	Args:  cobra.NoArgs,
	RunE:  runSectionsList,
}

var sectionsShowCmd = &cobra.Command{
	Use:   "show SECTION",
	Short: "Print the source text of one section",
	Args:  cobra.ExactArgs(1),
	RunE:  runSectionsShow,
}

var sectionsEditCmd = &cobra.Command{
	Use:   "edit SECTION",
	Short: "Replace a section with new text",
	Long: `Replaces a section with new text. The text is parsed as a small document:
it may turn the section into another kind or split it into several sections.
Empty text removes the section.`,
	Args: cobra.ExactArgs(1),
	RunE: runSectionsEdit,
}

var sectionsDeleteCmd = &cobra.Command{
	Use:   "delete SECTION",
	Short: "Delete a section",
	Args:  cobra.ExactArgs(1),
	RunE:  runSectionsDelete,
}

var sectionsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a heading, text, list, photo or rule section",
	Args:  cobra.NoArgs,
	RunE:  runSectionsAdd,
}

var sectionsReorderCmd = &cobra.Command{
	Use:   "reorder SECTION...",
	Short: "Put every section in a new order",
	Long:  `Takes every section exactly once, in the new order. The document is left unchanged otherwise.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSectionsReorder,
}

var sectionsMoveCmd = &cobra.Command{
	Use:   "move SECTION POSITION",
	Short: "Move a section to a 1-based position",
	Args:  cobra.ExactArgs(2),
	RunE:  runSectionsMove,
}

var sectionsPhotoCmd = &cobra.Command{
	Use:   "photo FILE",
	Short: "Insert an image file as a photo at the top of the document",
	Args:  cobra.ExactArgs(1),
	RunE:  runSectionsPhoto,
}

var (
	sectionsJSON  bool
	editText      string
	editFile      string
	addKind       string
	addText       string
	addAfter      string
	addAtStart    bool
	photoReplaces bool
)

func init() {
	sectionsListCmd.Flags().BoolVar(&sectionsJSON, "json", false, "Print sections as JSON")

	sectionsEditCmd.Flags().StringVarP(&editText, "text", "t", "", "New section text")
	sectionsEditCmd.Flags().StringVarP(&editFile, "file", "f", "", `Read the new text from a file ("-" for stdin)`)
	sectionsEditCmd.MarkFlagsMutuallyExclusive("text", "file")
	sectionsEditCmd.MarkFlagsOneRequired("text", "file")

	sectionsAddCmd.Flags().StringVarP(&addKind, "kind", "k", "text", "Section kind: heading, text, list, photo or rule")
	sectionsAddCmd.Flags().StringVarP(&addText, "text", "t", "", "Section text (a placeholder is used when empty)")
	sectionsAddCmd.Flags().StringVar(&addAfter, "after", "", "Insert after this SECTION (default: at the end)")
	sectionsAddCmd.Flags().BoolVar(&addAtStart, "start", false, "Insert before the first section")
	sectionsAddCmd.MarkFlagsMutuallyExclusive("after", "start")

	sectionsPhotoCmd.Flags().BoolVar(&photoReplaces, "replace", false, "Replace the first photo instead of adding one")

	sectionsCmd.AddCommand(sectionsListCmd, sectionsShowCmd, sectionsEditCmd, sectionsDeleteCmd,
		sectionsAddCmd, sectionsReorderCmd, sectionsMoveCmd, sectionsPhotoCmd)
	rootCmd.AddCommand(sectionsCmd)
}

func runSectionsList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(context.Background())
	if err != nil {
		return err
	}
	defer s.close()

	sections := s.doc().Sections()
	out := cmd.OutOrStdout()
	if sectionsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(sections)
	}
	if appConfig.Verbose {
		observability.NewPrinter(out).PrintSections(s.mode, sections)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, sec := range sections {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, sec.Kind, preview(sec.RawText))
	}
	return tw.Flush()
}

func preview(raw string) string {
	text := strings.Join(strings.Fields(raw), " ")
	runes := []rune(text)
	if len(runes) > listPreviewWidth {
		return string(runes[:listPreviewWidth-3]) + "..."
	}
	return text
}

func runSectionsShow(cmd *cobra.Command, args []string) error {
	s, err := openSession(context.Background())
	if err != nil {
		return err
	}
	defer s.close()

	id, err := s.resolveSection(args[0])
	if err != nil {
		return err
	}
	sec, _ := s.doc().Section(id)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), sec.RawText)
	return err
}

func runSectionsEdit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	text := editText
	if editFile != "" {
		data, err := readInput(cmd, editFile)
		if err != nil {
			return err
		}
		text = data
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	id, err := s.resolveSection(args[0])
	if err != nil {
		return err
	}
	s.doc().Replace(id, text)
	if err := s.save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated section %s (%d sections)\n", args[0], s.doc().Len())
	return nil
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func runSectionsDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	id, err := s.resolveSection(args[0])
	if err != nil {
		return err
	}
	s.doc().Delete(id)
	if err := s.save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted section %s (%d sections left)\n", args[0], s.doc().Len())
	return nil
}

func runSectionsAdd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	kind, err := types.ParseSectionKind(addKind)
	if err != nil {
		return err
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	pos := editor.AtEnd
	switch {
	case addAtStart:
		pos = editor.AtStart
	case addAfter != "":
		after, err := s.resolveSection(addAfter)
		if err != nil {
			return err
		}
		pos = editor.After(after)
	}

	id, ok := s.doc().Insert(pos, kind, addText)
	if !ok {
		return fmt.Errorf("failed to insert %s section", kind)
	}
	if err := s.save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s section at position %d\n", kind, position(s.doc(), id))
	return nil
}

// position returns the 1-based position of id, or 0 when it is gone
func position(doc *editor.Document, id string) int {
	return slices.Index(doc.IDs(), id) + 1
}

func runSectionsReorder(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	ids := make([]string, 0, len(args))
	for _, ref := range args {
		id, err := s.resolveSection(ref)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	if err := s.doc().Reorder(ids); err != nil {
		return fmt.Errorf("failed to reorder: %w", err)
	}
	if err := s.save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Reordered %d sections\n", len(ids))
	return nil
}

func runSectionsMove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	to, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid position %q: %w", args[1], err)
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	id, err := s.resolveSection(args[0])
	if err != nil {
		return err
	}
	s.doc().Move(id, to-1)
	if err := s.save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Moved section %s to position %d\n", args[0], position(s.doc(), id))
	return nil
}

func runSectionsPhoto(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	src, err := ingestion.PhotoFile(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	if photoReplaces {
		for _, sec := range s.doc().Sections() {
			if sec.Kind == types.KindImage {
				s.doc().Replace(sec.ID, editor.CanonicalText(types.KindImage, src))
				if err := s.save(ctx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Replaced photo at position %d\n", position(s.doc(), sec.ID))
				return nil
			}
		}
	}
	s.doc().Insert(editor.AtStart, types.KindImage, src)
	if err := s.save(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Added photo at position 1")
	return nil
}
