// Package main provides the resumeace command line editor for resumes and cover letters.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumeace",
	Short: "Markdown resume and cover letter editor",
	Long: `resumeace edits a resume and a cover letter written in a small Markdown dialect
(headings, bullet lists, paragraphs, photos and rules), previews them, exports them
to PDF, HTML, Markdown, plain text or LaTeX and runs AI rewriting tools over them.

Configuration can be loaded from a JSON file using --config. Command-line flags
override config file values; GEMINI_API_KEY and RESUMEACE_STORE fill unset values.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Path to the document store (default ~/.resumeace/resumeace.db)")
	rootCmd.PersistentFlags().StringVarP(&modeFlag, "mode", "m", "", `Document to work on: "resume" or "cover-letter"`)
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
